package collector

import (
	"context"
	"time"
)

// Source 对应 RSS <source> 元素，Google News 用它标注原始媒体
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// Article 统一采集后的新闻条目，采集后不再修改
type Article struct {
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	// Published 保留源里的原始时间字符串，PublishedAt 为解析结果（未知时为零值）
	Published   string    `json:"published,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
	Link        string    `json:"link"`
	Source      *Source   `json:"source,omitempty"`
}

// Fetcher 抽象一个订阅源的抓取与解析
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]Article, error)
}
