package radar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/onearthlouis/stock-radar/internal/domain"
)

const (
	latestPath    = "latest-24h.json"
	hotTopicsPath = "hot-topics.json"
)

// Config holds data-source configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client fetches the two pre-computed dashboard documents.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// New creates a new document client.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "radar_client"),
		now:            time.Now,
	}
}

// FetchLatest fetches and decodes the rolling 24-hour feed document.
func (c *Client) FetchLatest(ctx context.Context) (*domain.FeedDocument, error) {
	var payload feedPayload
	if err := c.fetch(ctx, latestPath, &payload); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", latestPath, err)
	}

	items := payload.Items
	if items == nil {
		// Older documents only carry items_all; accept both shapes.
		items = payload.ItemsAll
	}

	doc := &domain.FeedDocument{
		GeneratedAt:  parseTime(payload.GeneratedAt),
		WindowHours:  payload.WindowHours,
		TotalItems:   payload.TotalItems,
		SiteCount:    payload.SiteCount,
		SourceCount:  payload.SourceCount,
		ArchiveTotal: payload.ArchiveTotal,
		Items:        make([]domain.NewsItem, 0, len(items)),
	}
	for _, it := range items {
		doc.Items = append(doc.Items, domain.NewsItem{
			UID:         it.UID,
			SiteID:      it.SiteID,
			SiteName:    it.SiteName,
			Source:      it.Source,
			Title:       it.Title,
			URL:         it.URL,
			PublishedAt: parseTime(it.PublishedAt),
			FirstSeenAt: parseTime(it.FirstSeenAt),
			LastSeenAt:  parseTime(it.LastSeenAt),
		})
	}

	return doc, nil
}

// FetchHotTopics fetches and decodes the hot-topics document.
func (c *Client) FetchHotTopics(ctx context.Context) (*domain.HotTopicsDocument, error) {
	var payload hotTopicsPayload
	if err := c.fetch(ctx, hotTopicsPath, &payload); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", hotTopicsPath, err)
	}

	doc := &domain.HotTopicsDocument{
		GeneratedAt: parseTime(payload.GeneratedAt),
		Topics:      make([]domain.HotTopic, 0, len(payload.HotTopics)),
	}
	for _, t := range payload.HotTopics {
		doc.Topics = append(doc.Topics, domain.HotTopic{
			Keyword:      t.Keyword,
			Category:     t.Category,
			Count:        t.Count,
			SampleTitles: t.SampleTitles,
		})
	}

	return doc, nil
}

func (c *Client) fetch(ctx context.Context, path string, out any) error {
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.doRequest(ctx, path, out)
		if err == nil {
			return nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"path", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *Client) doRequest(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(path), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "StockRadar/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// documentURL appends a timestamp parameter so intermediary caches never
// serve a stale document.
func (c *Client) documentURL(path string) string {
	bust := url.Values{"_": []string{strconv.FormatInt(c.now().UnixMilli(), 10)}}
	return c.baseURL + "/" + path + "?" + bust.Encode()
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

// parseTime accepts the collector's ISO-8601 strings. Empty or unparseable
// values degrade to nil rather than failing the document.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
