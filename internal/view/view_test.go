package view

import (
	"testing"
	"time"

	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func stamp(d time.Duration) string {
	return now.Add(-d).Format(feedTimeLayout)
}

func TestExtractSource(t *testing.T) {
	cases := []struct {
		name string
		in   collector.Article
		want string
	}{
		{"title prefix", collector.Article{Title: "NDTV - Example headline"}, "NDTV"},
		{"structured wins", collector.Article{Title: "NDTV - Example", Source: &collector.Source{Title: "The Hindu"}}, "The Hindu"},
		{"blank structured falls back", collector.Article{Title: "Mint - Markets", Source: &collector.Source{Title: " "}}, "Mint"},
		{"shortest prefix", collector.Article{Title: "A - B - C"}, "A"},
		{"no separator", collector.Article{Title: "Plain headline"}, FallbackSource},
		{"separator not at start", collector.Article{Title: "Headline -Mint"}, FallbackSource},
		{"empty", collector.Article{}, FallbackSource},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ExtractSource(c.in))
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"ninety minutes truncates to hours", stamp(90 * time.Minute), "1 hours ago"},
		{"just under a day", stamp(23*time.Hour + 59*time.Minute), "23 hours ago"},
		{"days", stamp(50 * time.Hour), "2 days ago"},
		{"minutes", stamp(59*time.Minute + 59*time.Second), "59 minutes ago"},
		{"seconds", stamp(30 * time.Second), "Just now"},
		{"future", now.Add(2 * time.Hour).Format(feedTimeLayout), "Just now"},
		{"numeric zone", now.Add(-3 * time.Hour).In(time.FixedZone("IST", 5*3600+1800)).Format(time.RFC1123Z), "3 hours ago"},
		{"garbage", "yesterday-ish", FallbackTime},
		{"empty", "", FallbackTime},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, FormatRelativeTime(c.in, now))
		})
	}
}

func TestFormatRelativeTimeGoogleNewsStamp(t *testing.T) {
	got := FormatRelativeTime("Mon, 12 Oct 2026 10:00:00 GMT", now)
	assert.Equal(t, "2 days ago", got)
}

func TestFormatRelativeTimeZoneAbbreviations(t *testing.T) {
	// 12:00 UTC 即 17:30 IST
	assert.Equal(t, "2 hours ago", FormatRelativeTime("Wed, 14 Oct 2026 15:30:00 IST", now))
	assert.Equal(t, "1 hours ago", FormatRelativeTime("Wed, 14 Oct 2026 07:00:00 EDT", now))
	assert.Equal(t, "3 hours ago", FormatRelativeTime("Wed, 14 Oct 2026 09:00:00 UTC", now))
	assert.Equal(t, "3 hours ago", FormatRelativeTime("Wed, 14 Oct 2026 09:00:00 +0000", now))

	// 不认识的缩写不能按 0 偏移处理
	assert.Equal(t, FallbackTime, FormatRelativeTime("Wed, 14 Oct 2026 09:00:00 XYZT", now))
}

func TestAccent(t *testing.T) {
	assert.Equal(t, "ndtv", Accent("NDTV Profit"))
	assert.Equal(t, "india-today", Accent("India Today"))
	assert.Equal(t, "economic-times", Accent("The Economic Times"))
	assert.Equal(t, "default", Accent(FallbackSource))
}

func TestCards(t *testing.T) {
	cards := Cards([]collector.Article{
		{Title: "NDTV - Rains bring relief", Link: "https://a", Published: stamp(2 * time.Hour)},
		{Title: "Quiet morning", Link: "https://b"},
	}, now)
	require.Len(t, cards, 2)

	assert.Equal(t, Card{
		Source:       "NDTV",
		Title:        "NDTV - Rains bring relief",
		Link:         "https://a",
		PublishedAgo: "2 hours ago",
		Accent:       "ndtv",
	}, cards[0])
	assert.Equal(t, FallbackSource, cards[1].Source)
	assert.Equal(t, FallbackTime, cards[1].PublishedAgo)

	assert.NotNil(t, Cards(nil, now))
}
