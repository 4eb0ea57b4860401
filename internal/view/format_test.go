package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onearthlouis/stock-radar/internal/domain"
)

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "987", FormatCount(987))
	assert.Equal(t, "12,345", FormatCount(12345))
	assert.Equal(t, "0", FormatCount(-3))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, UnknownTimeLabel, FormatTimestamp(nil))

	ts := time.Date(2026, 8, 29, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "08-29 09:05", FormatTimestamp(&ts))
}

func TestEmptyMessage(t *testing.T) {
	assert.Equal(t, EmptyNoData, EmptyMessage(""))
	assert.Equal(t, EmptyNoData, EmptyMessage("   "))
	assert.Equal(t, EmptyNoMatch, EmptyMessage("芯片"))
}

func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "电报", SourceLabel(domain.NewsItem{Source: "电报"}))
	assert.Equal(t, DefaultSourceLabel, SourceLabel(domain.NewsItem{}))
}

func TestDisplayTimeFallback(t *testing.T) {
	published := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	firstSeen := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	withBoth := domain.NewsItem{PublishedAt: &published, FirstSeenAt: &firstSeen}
	assert.Equal(t, &published, withBoth.DisplayTime())

	seenOnly := domain.NewsItem{FirstSeenAt: &firstSeen}
	assert.Equal(t, &firstSeen, seenOnly.DisplayTime())

	assert.Nil(t, domain.NewsItem{}.DisplayTime())
}
