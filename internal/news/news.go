package news

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/NewsHorizon/internal/category"
	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/LJTian/NewsHorizon/internal/pager"
	"github.com/LJTian/NewsHorizon/internal/processor"
)

// ErrFetch 订阅源抓取或解析失败；只影响本次操作
var ErrFetch = errors.New("feed fetch failed")

const (
	kindCategory = "category"
	kindSearch   = "search"
)

// ListingCache 缓存某个订阅源过滤后的完整列表，翻页时只切片不重抓
type ListingCache interface {
	Get(ctx context.Context, key string) ([]collector.Article, bool, error)
	Set(ctx context.Context, key string, articles []collector.Article) error
}

// Recorder 由 metrics 包实现
type Recorder interface {
	ObserveFetch(kind string, d time.Duration, err error)
	ObserveCache(hit bool)
}

type Options struct {
	Cache    ListingCache
	Recorder Recorder
	Logger   logger.Logger
	PageSize int
}

// Service 是渲染层唯一调用的入口
type Service struct {
	host     string
	fetcher  collector.Fetcher
	filter   *processor.ContentFilter
	cache    ListingCache
	recorder Recorder
	log      logger.Logger
	pageSize int
}

func NewService(host string, fetcher collector.Fetcher, filter *processor.ContentFilter, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = pager.DefaultPageSize
	}
	return &Service{
		host:     strings.TrimRight(host, "/"),
		fetcher:  fetcher,
		filter:   filter,
		cache:    opts.Cache,
		recorder: opts.Recorder,
		log:      opts.Logger,
		pageSize: opts.PageSize,
	}
}

// Page 分类浏览的一页结果
type Page struct {
	Category category.Category
	Index    int
	Articles []collector.Article
	Total    int
	HasNext  bool
}

// CategoryPage 抓取失败时返回空页与包装了 ErrFetch 的错误
func (s *Service) CategoryPage(ctx context.Context, c category.Category, page int) (Page, error) {
	page = max(page, 0)
	out := Page{Category: c, Index: page, Articles: []collector.Article{}}

	list, err := s.listing(ctx, kindCategory, c.FeedURL(s.host))
	if err != nil {
		return out, err
	}

	out.Articles = pager.Page(list, page, s.pageSize)
	out.Total = len(list)
	out.HasNext = pager.HasNext(len(list), page, s.pageSize)
	return out, nil
}

// FetchByCategory 返回分类第 page 页（每页 5 条）
func (s *Service) FetchByCategory(ctx context.Context, c category.Category, page int) ([]collector.Article, error) {
	p, err := s.CategoryPage(ctx, c, page)
	return p.Articles, err
}

// Search 空白关键词直接返回空结果，不发请求；搜索结果不分页
func (s *Service) Search(ctx context.Context, query string) ([]collector.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []collector.Article{}, nil
	}

	list, err := s.listing(ctx, kindSearch, category.SearchURL(s.host, query))
	if err != nil {
		return []collector.Article{}, err
	}
	out := make([]collector.Article, len(list))
	copy(out, list)
	return out, nil
}

// listing 一个抓取周期：读缓存 -> 抓取 -> 过滤 -> 回写缓存
func (s *Service) listing(ctx context.Context, kind, url string) ([]collector.Article, error) {
	key := processor.ArticleID(url)
	log := s.log.With(logger.String("kind", kind), logger.String("url", url))

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("listing cache get failed", logger.Err(err))
		}
		if s.recorder != nil {
			s.recorder.ObserveCache(ok && err == nil)
		}
		if ok && err == nil {
			return cached, nil
		}
	}

	start := time.Now()
	raw, err := s.fetcher.Fetch(ctx, url)
	if s.recorder != nil {
		s.recorder.ObserveFetch(kind, time.Since(start), err)
	}
	if err != nil {
		log.Warn("feed fetch failed", logger.Err(err), logger.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	filtered := s.filter.Filter(raw)
	log.Debug("feed filtered", logger.Int("fetched", len(raw)), logger.Int("admitted", len(filtered)))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, filtered); err != nil {
			log.Warn("listing cache set failed", logger.Err(err))
		}
	}
	return filtered, nil
}
