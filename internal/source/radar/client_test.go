package radar

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedFixture = `{
	"generated_at": "2026-08-29T01:00:00Z",
	"window_hours": 24,
	"total_items": 2,
	"site_count": 2,
	"source_count": 2,
	"archive_total": 120,
	"items": [
		{
			"uid": "u1",
			"site_id": "eastmoney",
			"site_name": "东方财富",
			"source": "快讯",
			"title": "两市成交额突破万亿",
			"url": "https://example.com/1",
			"published_at": "2026-08-29T00:30:00Z",
			"first_seen_at": "2026-08-29T00:35:00Z"
		},
		{
			"uid": "u2",
			"site_id": "cls",
			"site_name": "财联社",
			"source": "电报",
			"title": "央行公开市场操作",
			"url": "https://example.com/2",
			"published_at": "not-a-timestamp",
			"first_seen_at": null
		}
	]
}`

const hotFixture = `{
	"generated_at": "2026-08-29T01:00:00Z",
	"hot_topics": [
		{"keyword": "降息", "category": "宏观", "count": 50, "sample_titles": ["央行宣布降息"]},
		{"keyword": "芯片", "category": "板块", "count": 10, "sample_titles": []}
	]
}`

func testClient(t *testing.T, baseURL string, maxAttempts int) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(Config{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxAttempts:    maxAttempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, logger)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestFetchLatest_DecodesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/latest-24h.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.URL.Query().Get("_"), "cache-busting parameter missing")
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	doc, err := testClient(t, srv.URL+"/data", 1).FetchLatest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, doc.TotalItems)
	assert.Equal(t, 120, doc.ArchiveTotal)
	require.NotNil(t, doc.GeneratedAt)
	require.Len(t, doc.Items, 2)

	first := doc.Items[0]
	assert.Equal(t, "东方财富", first.SiteName)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 30, 0, 0, time.UTC), first.PublishedAt.UTC())

	// Unparseable and null timestamps degrade to nil, never to an error.
	second := doc.Items[1]
	assert.Nil(t, second.PublishedAt)
	assert.Nil(t, second.FirstSeenAt)
}

func TestFetchLatest_ItemsAllFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"generated_at": "2026-08-29T01:00:00Z", "items_all": [
			{"uid": "u1", "site_id": "s1", "site_name": "站点", "title": "标题", "url": "https://example.com"}
		]}`))
	}))
	defer srv.Close()

	doc, err := testClient(t, srv.URL, 1).FetchLatest(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "u1", doc.Items[0].UID)
}

func TestFetchLatest_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	doc, err := testClient(t, srv.URL, 3).FetchLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, doc.Items, 2)
}

func TestFetchLatest_ExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 2).FetchLatest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestFetchHotTopics_DecodesDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hot-topics.json", r.URL.Path)
		w.Write([]byte(hotFixture))
	}))
	defer srv.Close()

	doc, err := testClient(t, srv.URL, 1).FetchHotTopics(context.Background())
	require.NoError(t, err)

	require.Len(t, doc.Topics, 2)
	assert.Equal(t, "降息", doc.Topics[0].Keyword)
	assert.Equal(t, "宏观", doc.Topics[0].Category)
	assert.Equal(t, 50, doc.Topics[0].Count)
	assert.Equal(t, []string{"央行宣布降息"}, doc.Topics[0].SampleTitles)
}

func TestFetchHotTopics_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL, 1).FetchHotTopics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestParseTime(t *testing.T) {
	assert.Nil(t, parseTime(""))
	assert.Nil(t, parseTime("garbage"))

	got := parseTime("2026-08-29T01:02:03Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2026, 8, 29, 1, 2, 3, 0, time.UTC), got.UTC())
}
