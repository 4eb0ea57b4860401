package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/onearthlouis/stock-radar/internal/domain"
	"github.com/onearthlouis/stock-radar/internal/view"
)

// Dashboard owns the presentation state and applies refresh results to it.
// It is the single writer; renderers read derived views through the
// accessors. The mutex exists for the HTTP surface, where handlers read
// while the refresher writes; the terminal surface is single-threaded and
// goes through the same API unchanged.
type Dashboard struct {
	fetcher   Fetcher
	logger    *slog.Logger
	maxTopics int

	mu             sync.RWMutex
	state          *view.State
	meta           feedMeta
	hotTopics      []domain.HotTopic
	hotGeneratedAt *time.Time
	loaded         bool
	feedFailed     bool
	hotFailed      bool
}

// feedMeta carries the upstream counters of the last good feed document.
type feedMeta struct {
	totalItems   int
	siteCount    int
	sourceCount  int
	archiveTotal int
}

// RefreshResult reports the outcome of one refresh. Both halves settle
// independently.
type RefreshResult struct {
	FeedErr  error
	HotErr   error
	Items    int
	Topics   int
	Duration time.Duration
}

// Overview is the stats-card payload.
type Overview struct {
	TotalItems   int
	SiteCount    int
	SourceCount  int
	ArchiveTotal int
	GeneratedAt  *time.Time
	Loaded       bool
	Failed       bool
}

// Results is the derived news-list payload.
type Results struct {
	Query      string
	SiteFilter string
	Total      int
	Groups     []view.SiteGroup
	Failed     bool
}

// HotView is the derived hot-topics payload.
type HotView struct {
	Chips       []view.TopicChip
	GeneratedAt *time.Time
	Failed      bool
}

func NewDashboard(fetcher Fetcher, maxTopics int, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		fetcher:   fetcher,
		logger:    logger.With("component", "dashboard"),
		maxTopics: maxTopics,
		state:     view.NewState(),
	}
}

// Refresh fetches both documents concurrently and applies each result
// independently: a failure on one side never blocks the other. There is no
// retry here beyond the client's own per-request backoff, and no
// cancellation of overlapping refreshes; the last write wins.
func (d *Dashboard) Refresh(ctx context.Context) *RefreshResult {
	start := time.Now()

	var (
		wg      sync.WaitGroup
		feedDoc *domain.FeedDocument
		feedErr error
		hotDoc  *domain.HotTopicsDocument
		hotErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		feedDoc, feedErr = d.fetcher.FetchLatest(ctx)
	}()
	go func() {
		defer wg.Done()
		hotDoc, hotErr = d.fetcher.FetchHotTopics(ctx)
	}()
	wg.Wait()

	result := &RefreshResult{FeedErr: feedErr, HotErr: hotErr}

	d.mu.Lock()
	if feedErr != nil {
		d.feedFailed = true
	} else {
		d.state.SetItems(feedDoc.Items, feedDoc.GeneratedAt)
		d.meta = feedMeta{
			totalItems:   feedDoc.TotalItems,
			siteCount:    feedDoc.SiteCount,
			sourceCount:  feedDoc.SourceCount,
			archiveTotal: feedDoc.ArchiveTotal,
		}
		d.loaded = true
		d.feedFailed = false
		result.Items = len(feedDoc.Items)
	}
	if hotErr != nil {
		d.hotFailed = true
	} else {
		d.hotTopics = hotDoc.Topics
		d.hotGeneratedAt = hotDoc.GeneratedAt
		d.hotFailed = false
		result.Topics = len(hotDoc.Topics)
	}
	d.mu.Unlock()

	result.Duration = time.Since(start)

	if feedErr != nil {
		d.logger.Error("feed refresh failed", "error", feedErr)
	}
	if hotErr != nil {
		d.logger.Error("hot topics refresh failed", "error", hotErr)
	}
	d.logger.Info("refresh completed",
		"items", result.Items,
		"topics", result.Topics,
		"feed_ok", feedErr == nil,
		"hot_ok", hotErr == nil,
		"duration", result.Duration,
	)

	return result
}

// SetQuery sets the free-text query. The caller re-renders afterwards.
func (d *Dashboard) SetQuery(text string) {
	d.mu.Lock()
	d.state.SetQuery(text)
	d.mu.Unlock()
}

// SetSiteFilter sets or clears the site filter.
func (d *Dashboard) SetSiteFilter(siteID string) {
	d.mu.Lock()
	d.state.SetSiteFilter(siteID)
	d.mu.Unlock()
}

func (d *Dashboard) Query() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.Query
}

func (d *Dashboard) SiteFilter() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.SiteFilter
}

// Overview derives the stats-card view.
func (d *Dashboard) Overview() Overview {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Overview{
		TotalItems:   d.meta.totalItems,
		SiteCount:    d.meta.siteCount,
		SourceCount:  d.meta.sourceCount,
		ArchiveTotal: d.meta.archiveTotal,
		GeneratedAt:  d.state.GeneratedAt,
		Loaded:       d.loaded,
		Failed:       d.feedFailed,
	}
}

// Sites derives the per-site counts for the filter controls.
func (d *Dashboard) Sites() []domain.SiteStat {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return view.SiteStats(d.state.Items)
}

// Results derives the filtered, grouped news list for the current state.
func (d *Dashboard) Results() Results {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deriveResults(d.state.Query, d.state.SiteFilter)
}

// ResultsFor derives a news list for an explicit query and site filter
// without touching the shared state; the HTTP surface uses it for
// per-request parameters.
func (d *Dashboard) ResultsFor(query, siteFilter string) Results {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deriveResults(query, siteFilter)
}

func (d *Dashboard) deriveResults(query, siteFilter string) Results {
	filtered := view.Filter(d.state.Items, query, siteFilter)
	return Results{
		Query:      query,
		SiteFilter: siteFilter,
		Total:      len(filtered),
		Groups:     view.GroupBySite(filtered),
		Failed:     d.feedFailed && !d.loaded,
	}
}

// HotTopics derives the chips view, truncated to the configured maximum.
func (d *Dashboard) HotTopics() HotView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return HotView{
		Chips:       view.TopicChips(d.hotTopics, d.maxTopics),
		GeneratedAt: d.hotGeneratedAt,
		Failed:      d.hotFailed && d.hotTopics == nil,
	}
}
