// Package view 把新闻条目转换成展示用的卡片：来源名、相对时间、强调色。
package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/LJTian/NewsHorizon/internal/collector"
)

const (
	FallbackSource = "News Source"
	FallbackTime   = "Recently"
)

// 订阅源时间格式，例如 "Mon, 12 Oct 2026 10:00:00 GMT"
const feedTimeLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// 部分源使用数字时区
const numericZoneLayout = time.RFC1123Z

// time.Parse 遇到不认识的时区缩写会按 0 偏移处理，这里显式给出常见缩写的偏移；
// 表外的缩写视为无法解析
var zoneOffsets = map[string]int{
	"GMT": 0, "UTC": 0, "UT": 0, "Z": 0,
	"IST": 5*3600 + 1800,
	"EST": -5 * 3600, "EDT": -4 * 3600,
	"CST": -6 * 3600, "CDT": -5 * 3600,
	"MST": -7 * 3600, "MDT": -6 * 3600,
	"PST": -8 * 3600, "PDT": -7 * 3600,
	"BST": 1 * 3600, "CET": 1 * 3600, "CEST": 2 * 3600,
	"JST": 9 * 3600, "AEST": 10 * 3600,
}

// 标题形如 "NDTV - Example headline"，取第一个 " - " 之前的部分
var sourcePrefix = regexp.MustCompile(`^(.*?) - `)

// Card 渲染层需要的全部字段
type Card struct {
	Source       string `json:"source"`
	Title        string `json:"title"`
	Link         string `json:"link"`
	PublishedAgo string `json:"publishedAgo"`
	Accent       string `json:"accent"`
}

// ExtractSource 优先使用结构化来源，其次从标题前缀提取，最后兜底
func ExtractSource(a collector.Article) string {
	if a.Source != nil {
		if name := strings.TrimSpace(a.Source.Title); name != "" {
			return name
		}
	}
	if m := sourcePrefix.FindStringSubmatch(a.Title); len(m) == 2 {
		return m[1]
	}
	return FallbackSource
}

// FormatRelativeTime 取可用的最大单位并向下取整；解析失败返回 "Recently"
func FormatRelativeTime(published string, now time.Time) string {
	pub, ok := parsePublished(published)
	if !ok {
		return FallbackTime
	}

	diff := now.Sub(pub)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff/(24*time.Hour)))
	case diff >= time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff/time.Hour))
	case diff >= time.Minute:
		return fmt.Sprintf("%d minutes ago", int(diff/time.Minute))
	default:
		// 包括源时间比当前时间还晚的情况
		return "Just now"
	}
}

func parsePublished(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(numericZoneLayout, s); err == nil {
		return t, true
	}
	t, err := time.Parse(feedTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return resolveZone(t)
}

// resolveZone 按缩写表重新解释墙上时间
func resolveZone(t time.Time) (time.Time, bool) {
	name, _ := t.Zone()
	off, ok := zoneOffsets[strings.ToUpper(name)]
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.FixedZone(name, off)), true
}

// Accent 按来源给卡片一个强调色键，样式由渲染层决定
func Accent(source string) string {
	switch {
	case strings.Contains(source, "NDTV"):
		return "ndtv"
	case strings.Contains(source, "India Today"):
		return "india-today"
	case strings.Contains(source, "Economic Times"):
		return "economic-times"
	default:
		return "default"
	}
}

func NewCard(a collector.Article, now time.Time) Card {
	source := ExtractSource(a)
	return Card{
		Source:       source,
		Title:        a.Title,
		Link:         a.Link,
		PublishedAgo: FormatRelativeTime(a.Published, now),
		Accent:       Accent(source),
	}
}

func Cards(articles []collector.Article, now time.Time) []Card {
	out := make([]Card, 0, len(articles))
	for _, a := range articles {
		out = append(out, NewCard(a, now))
	}
	return out
}
