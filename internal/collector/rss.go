package collector

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

const (
	defaultUserAgent = "NewsHorizonBot/1.0"
	defaultTimeout   = 10 * time.Second
	maxFeedBodyBytes = 4 << 20 // 4MB
	maxSummaryRunes  = 300
)

// RSSFetcher 用 colly 发请求、gofeed 解析订阅源
type RSSFetcher struct {
	UserAgent     string
	Timeout       time.Duration
	AllowedDomain string
}

func NewRSSFetcher(userAgent string, timeout time.Duration, allowedDomain string) *RSSFetcher {
	return &RSSFetcher{UserAgent: userAgent, Timeout: timeout, AllowedDomain: allowedDomain}
}

func (f *RSSFetcher) Fetch(ctx context.Context, url string) ([]Article, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}
	articles, err := ParseFeed(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return articles, nil
}

// get 每次创建新的 collector，避免 colly 的“已访问”去重挡住同一 URL 的再次抓取
func (f *RSSFetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ua := f.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	opts := []colly.CollectorOption{
		colly.UserAgent(ua),
		colly.MaxBodySize(maxFeedBodyBytes),
		colly.StdlibContext(ctx),
	}
	if f.AllowedDomain != "" {
		opts = append(opts, colly.AllowedDomains(f.AllowedDomain))
	}
	c := colly.NewCollector(opts...)

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.SetRequestTimeout(timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("fetch %s: empty body", url)
	}
	return body, nil
}

// ParseFeed 解析订阅源内容；RSS 走 gofeed/rss 以保留 <source>，其余格式走通用解析
func ParseFeed(body []byte) ([]Article, error) {
	if gofeed.DetectFeedType(bytes.NewReader(body)) == gofeed.FeedTypeRSS {
		fp := &rss.Parser{}
		feed, err := fp.Parse(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return fromRSSItems(feed.Items), nil
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return fromItems(feed.Items), nil
}

func fromRSSItems(items []*rss.Item) []Article {
	out := make([]Article, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		a := Article{
			Title:     strings.TrimSpace(it.Title),
			Summary:   cleanSummary(it.Description),
			Published: strings.TrimSpace(it.PubDate),
			Link:      strings.TrimSpace(it.Link),
		}
		if it.PubDateParsed != nil {
			a.PublishedAt = *it.PubDateParsed
		}
		if it.Source != nil && strings.TrimSpace(it.Source.Title) != "" {
			a.Source = &Source{Title: strings.TrimSpace(it.Source.Title), URL: strings.TrimSpace(it.Source.URL)}
		}
		if a.Title == "" && a.Link == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func fromItems(items []*gofeed.Item) []Article {
	out := make([]Article, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		desc := it.Description
		if desc == "" {
			desc = it.Content
		}
		a := Article{
			Title:     strings.TrimSpace(it.Title),
			Summary:   cleanSummary(desc),
			Published: strings.TrimSpace(it.Published),
			Link:      strings.TrimSpace(it.Link),
		}
		if it.PublishedParsed != nil {
			a.PublishedAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			a.PublishedAt = *it.UpdatedParsed
		}
		if a.Title == "" && a.Link == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// cleanSummary 去掉 HTML 标签并压缩空白，按 rune 截断
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		text = doc.Text()
	}
	return truncateRunes(strings.Join(strings.Fields(text), " "), maxSummaryRunes)
}

func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit]) + "…"
}
