package domain

import "time"

// NewsItem is a single deduplicated entry from the 24-hour feed document.
// Items are immutable once received; timestamps may be absent upstream.
type NewsItem struct {
	UID         string
	SiteID      string
	SiteName    string
	Source      string // sub-source label within a site, may be empty
	Title       string
	URL         string
	PublishedAt *time.Time
	FirstSeenAt *time.Time
	LastSeenAt  *time.Time
}

// DisplayTime returns the timestamp a row should show: publication time
// falling back to when the collector first saw the item.
func (n NewsItem) DisplayTime() *time.Time {
	if n.PublishedAt != nil {
		return n.PublishedAt
	}
	return n.FirstSeenAt
}

// HotTopic is one ranked keyword from the hot-topics document. The upstream
// collector already scores and orders these; this side never re-sorts.
type HotTopic struct {
	Keyword      string
	Category     string
	Count        int
	SampleTitles []string
}

// SiteStat is a per-site item count derived from the current item list.
type SiteStat struct {
	SiteID   string `json:"site_id"`
	SiteName string `json:"site_name"`
	Count    int    `json:"count"`
}

// FeedDocument is the decoded latest-24h document.
type FeedDocument struct {
	GeneratedAt  *time.Time
	WindowHours  int
	TotalItems   int
	SiteCount    int
	SourceCount  int
	ArchiveTotal int
	Items        []NewsItem
}

// HotTopicsDocument is the decoded hot-topics document.
type HotTopicsDocument struct {
	GeneratedAt *time.Time
	Topics      []HotTopic
}
