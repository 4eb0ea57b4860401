package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onearthlouis/stock-radar/internal/domain"
	"github.com/onearthlouis/stock-radar/internal/view"
)

type overviewResponse struct {
	Success      bool       `json:"success"`
	TotalItems   int        `json:"total_items"`
	SiteCount    int        `json:"site_count"`
	SourceCount  int        `json:"source_count"`
	ArchiveTotal int        `json:"archive_total"`
	GeneratedAt  *time.Time `json:"generated_at"`
	Loaded       bool       `json:"loaded"`
	Failed       bool       `json:"failed"`
}

type sitesResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Sites   []domain.SiteStat `json:"sites"`
}

type newsResponse struct {
	Success      bool          `json:"success"`
	Count        int           `json:"count"`
	Query        string        `json:"query,omitempty"`
	Site         string        `json:"site,omitempty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Groups       []siteSection `json:"groups"`
}

type siteSection struct {
	SiteID   string          `json:"site_id"`
	SiteName string          `json:"site_name"`
	Count    int             `json:"count"`
	Sources  []sourceSection `json:"sources"`
}

type sourceSection struct {
	Label string    `json:"label"`
	Count int       `json:"count"`
	Items []itemRow `json:"items"`
}

type itemRow struct {
	SiteName string `json:"site_name"`
	Source   string `json:"source"`
	Time     string `json:"time"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

type hotTopicsResponse struct {
	Success     bool       `json:"success"`
	Count       int        `json:"count"`
	GeneratedAt *time.Time `json:"generated_at"`
	Topics      []topicRow `json:"topics"`
}

type topicRow struct {
	Keyword      string   `json:"keyword"`
	Category     string   `json:"category"`
	Count        int      `json:"count"`
	Intensity    float64  `json:"intensity"`
	SampleTitles []string `json:"sample_titles,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) getOverview(c *gin.Context) {
	o := s.dashboard.Overview()
	c.JSON(http.StatusOK, overviewResponse{
		Success:      true,
		TotalItems:   o.TotalItems,
		SiteCount:    o.SiteCount,
		SourceCount:  o.SourceCount,
		ArchiveTotal: o.ArchiveTotal,
		GeneratedAt:  o.GeneratedAt,
		Loaded:       o.Loaded,
		Failed:       o.Failed,
	})
}

func (s *Server) getSites(c *gin.Context) {
	sites := s.dashboard.Sites()
	c.JSON(http.StatusOK, sitesResponse{
		Success: true,
		Count:   len(sites),
		Sites:   sites,
	})
}

// getNews derives the grouped list for this request's q/site parameters
// without mutating the shared state.
func (s *Server) getNews(c *gin.Context) {
	results := s.dashboard.ResultsFor(c.Query("q"), c.Query("site"))

	resp := newsResponse{
		Success: true,
		Count:   results.Total,
		Query:   results.Query,
		Site:    results.SiteFilter,
		Groups:  make([]siteSection, 0, len(results.Groups)),
	}
	if results.Total == 0 {
		resp.EmptyMessage = view.EmptyMessage(results.Query)
	}

	for _, g := range results.Groups {
		section := siteSection{
			SiteID:   g.SiteID,
			SiteName: g.SiteName,
			Count:    len(g.Items),
			Sources:  make([]sourceSection, 0, len(g.Sources)),
		}
		for _, sg := range g.Sources {
			sub := sourceSection{
				Label: sg.Label,
				Count: len(sg.Items),
				Items: make([]itemRow, 0, len(sg.Items)),
			}
			for _, it := range sg.Items {
				sub.Items = append(sub.Items, itemRow{
					SiteName: it.SiteName,
					Source:   view.SourceLabel(it),
					Time:     view.FormatTimestamp(it.DisplayTime()),
					Title:    it.Title,
					URL:      it.URL,
				})
			}
			section.Sources = append(section.Sources, sub)
		}
		resp.Groups = append(resp.Groups, section)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) getHotTopics(c *gin.Context) {
	hot := s.dashboard.HotTopics()
	if hot.Failed {
		c.JSON(http.StatusServiceUnavailable, errorResponse{
			Success: false,
			Error:   "no_data",
			Message: "暂无数据",
		})
		return
	}

	resp := hotTopicsResponse{
		Success:     true,
		Count:       len(hot.Chips),
		GeneratedAt: hot.GeneratedAt,
		Topics:      make([]topicRow, 0, len(hot.Chips)),
	}
	for _, chip := range hot.Chips {
		resp.Topics = append(resp.Topics, topicRow{
			Keyword:      chip.Topic.Keyword,
			Category:     chip.Topic.Category,
			Count:        chip.Topic.Count,
			Intensity:    chip.Intensity,
			SampleTitles: chip.Topic.SampleTitles,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// postRefresh is the manual recovery path: re-fetch both documents now.
func (s *Server) postRefresh(c *gin.Context) {
	result := s.dashboard.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"feed_ok":     result.FeedErr == nil,
		"hot_ok":      result.HotErr == nil,
		"items":       result.Items,
		"topics":      result.Topics,
		"duration_ms": result.Duration.Milliseconds(),
	})
}
