package news

import (
	"context"
	"sync"
	"time"

	"github.com/LJTian/NewsHorizon/internal/collector"
)

type cacheEntry struct {
	articles  []collector.Article
	expiresAt time.Time
}

// MemoryCache 进程内的列表缓存，未配置 Redis 时使用
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]collector.Article, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	out := make([]collector.Article, len(e.articles))
	copy(out, e.articles)
	return out, true, nil
}

// Set ttl<=0 时不缓存
func (m *MemoryCache) Set(_ context.Context, key string, articles []collector.Article) error {
	if m.ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]collector.Article, len(articles))
	copy(stored, articles)
	m.entries[key] = cacheEntry{articles: stored, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Sweep 删除过期条目，返回删除数量
func (m *MemoryCache) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
			n++
		}
	}
	return n
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
