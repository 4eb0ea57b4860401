package view

import (
	"sort"
	"strings"

	"github.com/onearthlouis/stock-radar/internal/domain"
)

// DefaultSourceLabel is used for items whose sub-source is absent.
const DefaultSourceLabel = "综合"

// minIntensity keeps low-count hot topics visible.
const minIntensity = 0.15

// SiteGroup is one site section of the news list: items in input order plus
// their further partition by sub-source.
type SiteGroup struct {
	SiteID   string
	SiteName string
	Items    []domain.NewsItem
	Sources  []SourceGroup
}

// SourceGroup is one sub-source bucket within a site section.
type SourceGroup struct {
	Label string
	Items []domain.NewsItem
}

// TopicChip is one renderable hot-topic entry.
type TopicChip struct {
	Topic     domain.HotTopic
	Intensity float64
}

// SourceLabel returns the sub-source label an item renders under.
func SourceLabel(item domain.NewsItem) string {
	if item.Source == "" {
		return DefaultSourceLabel
	}
	return item.Source
}

// SiteStats counts items per distinct site, ordered by count descending.
// Ties keep first-appearance order.
func SiteStats(items []domain.NewsItem) []domain.SiteStat {
	index := make(map[string]int)
	stats := make([]domain.SiteStat, 0)
	for _, it := range items {
		i, ok := index[it.SiteID]
		if !ok {
			index[it.SiteID] = len(stats)
			stats = append(stats, domain.SiteStat{SiteID: it.SiteID, SiteName: it.SiteName})
			i = len(stats) - 1
		}
		stats[i].Count++
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Filter keeps items matching the site filter and the case-insensitive
// substring query over title, site name and sub-source. Output preserves
// input order and is always a subset of the input.
func Filter(items []domain.NewsItem, query, siteFilter string) []domain.NewsItem {
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]domain.NewsItem, 0, len(items))
	for _, it := range items {
		if siteFilter != "" && it.SiteID != siteFilter {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(it.Title + " " + it.SiteName + " " + it.Source)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		filtered = append(filtered, it)
	}
	return filtered
}

// GroupBySite partitions items into site sections, each further grouped by
// sub-source. Buckets preserve the relative order of their members; bucket
// order is descending member count with stable ties.
func GroupBySite(items []domain.NewsItem) []SiteGroup {
	index := make(map[string]int)
	groups := make([]SiteGroup, 0)
	for _, it := range items {
		i, ok := index[it.SiteID]
		if !ok {
			index[it.SiteID] = len(groups)
			groups = append(groups, SiteGroup{SiteID: it.SiteID, SiteName: it.SiteName})
			i = len(groups) - 1
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})
	for i := range groups {
		groups[i].Sources = GroupBySource(groups[i].Items)
	}
	return groups
}

// GroupBySource partitions items into sub-source buckets, defaulting the
// empty label, ordered by descending member count with stable ties.
func GroupBySource(items []domain.NewsItem) []SourceGroup {
	index := make(map[string]int)
	groups := make([]SourceGroup, 0)
	for _, it := range items {
		label := SourceLabel(it)
		i, ok := index[label]
		if !ok {
			index[label] = len(groups)
			groups = append(groups, SourceGroup{Label: label})
			i = len(groups) - 1
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Items) > len(groups[j].Items)
	})
	return groups
}

// TopicChips truncates the already-ranked hot topics to at most limit and
// assigns each a visual intensity of count/maxCount over the displayed
// slice, floored so low-count entries stay visible. The upstream ordering
// is kept as-is.
func TopicChips(topics []domain.HotTopic, limit int) []TopicChip {
	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}

	maxCount := 0
	for _, t := range topics {
		if t.Count > maxCount {
			maxCount = t.Count
		}
	}

	chips := make([]TopicChip, 0, len(topics))
	for _, t := range topics {
		intensity := 1.0
		if maxCount > 0 {
			intensity = float64(t.Count) / float64(maxCount)
		}
		if intensity < minIntensity {
			intensity = minIntensity
		}
		chips = append(chips, TopicChip{Topic: t, Intensity: intensity})
	}
	return chips
}
