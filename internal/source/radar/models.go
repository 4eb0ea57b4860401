package radar

// feedPayload mirrors latest-24h.json as written by the collector. All
// timestamps stay strings here; parsing happens in the transform so a bad
// value degrades to a missing time instead of failing the whole document.
type feedPayload struct {
	GeneratedAt  string        `json:"generated_at"`
	WindowHours  int           `json:"window_hours"`
	TotalItems   int           `json:"total_items"`
	SiteCount    int           `json:"site_count"`
	SourceCount  int           `json:"source_count"`
	ArchiveTotal int           `json:"archive_total"`
	Items        []payloadItem `json:"items"`
	ItemsAll     []payloadItem `json:"items_all"`
}

type payloadItem struct {
	UID         string `json:"uid"`
	SiteID      string `json:"site_id"`
	SiteName    string `json:"site_name"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	FirstSeenAt string `json:"first_seen_at"`
	LastSeenAt  string `json:"last_seen_at"`
}

// hotTopicsPayload mirrors hot-topics.json.
type hotTopicsPayload struct {
	GeneratedAt string         `json:"generated_at"`
	HotTopics   []payloadTopic `json:"hot_topics"`
}

type payloadTopic struct {
	Keyword      string   `json:"keyword"`
	Category     string   `json:"category"`
	Count        int      `json:"count"`
	SampleTitles []string `json:"sample_titles"`
}
