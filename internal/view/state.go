// Package view holds the presentation state of the dashboard and the pure
// derivation functions that turn it into renderable data. Nothing here does
// I/O and no function fails: missing or empty input degrades to "no results".
package view

import (
	"time"

	"github.com/onearthlouis/stock-radar/internal/domain"
)

// State is the single presentation state record: the full item list plus the
// current user inputs. It is mutated only by its owner (the dashboard
// controller); derivations read it without modifying it.
type State struct {
	Items       []domain.NewsItem
	Query       string // free text, stored untrimmed; trimming happens at filter time
	SiteFilter  string // empty means no filter
	GeneratedAt *time.Time
}

func NewState() *State {
	return &State{}
}

// SetItems replaces the item list and its generation timestamp wholesale.
func (s *State) SetItems(items []domain.NewsItem, generatedAt *time.Time) {
	s.Items = items
	s.GeneratedAt = generatedAt
}

// SetQuery sets the free-text query.
func (s *State) SetQuery(text string) {
	s.Query = text
}

// SetSiteFilter sets or clears the site filter. A filter that matches no
// item simply yields an empty result set.
func (s *State) SetSiteFilter(siteID string) {
	s.SiteFilter = siteID
}

// Filtered returns the items matching the current query and site filter.
func (s *State) Filtered() []domain.NewsItem {
	return Filter(s.Items, s.Query, s.SiteFilter)
}
