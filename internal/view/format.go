package view

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// UnknownTimeLabel is rendered for items without any usable timestamp.
const UnknownTimeLabel = "时间未知"

// Empty-state messages for the news list. The wording differs so users can
// tell "nothing matched your search" from "nothing was loaded".
const (
	EmptyNoData  = "暂无新闻数据"
	EmptyNoMatch = "没有找到匹配的新闻"
)

// EmptyMessage picks the empty-state message for a zero-result list.
func EmptyMessage(query string) string {
	if strings.TrimSpace(query) != "" {
		return EmptyNoMatch
	}
	return EmptyNoData
}

// FormatCount renders an integer with grouped thousands. Negative values
// are treated as 0, matching the "missing counter" convention of the
// upstream documents.
func FormatCount(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Comma(int64(n))
}

// FormatTimestamp renders a timestamp as "MM-DD HH:mm" in local time, or
// the unknown-time sentinel when absent.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return UnknownTimeLabel
	}
	return t.Local().Format("01-02 15:04")
}

// FormatClock renders a refresh time as "HH:mm:ss" in local time.
func FormatClock(t *time.Time) string {
	if t == nil {
		return UnknownTimeLabel
	}
	return t.Local().Format("15:04:05")
}
