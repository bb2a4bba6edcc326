package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/LJTian/NewsHorizon/internal/logger"
	"github.com/LJTian/NewsHorizon/internal/session"
	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix    = "news:list:"
	sessionKeyPrefix = "news:session:"
)

// Store 基于 Redis 的列表缓存与会话存储，过期完全交给 Redis TTL
type Store struct {
	Redis      *redis.Client
	listTTL    time.Duration
	sessionTTL time.Duration
}

// NewStore 连接 Redis；ping 失败只告警，后续读写出错时由调用方降级
func NewStore(redisAddr string, listTTL, sessionTTL time.Duration, log logger.Logger) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil && log != nil {
		log.Warn("redis ping failed", logger.String("addr", redisAddr), logger.Err(err))
	}

	return NewStoreWithClient(rdb, listTTL, sessionTTL)
}

func NewStoreWithClient(rdb *redis.Client, listTTL, sessionTTL time.Duration) *Store {
	return &Store{Redis: rdb, listTTL: listTTL, sessionTTL: sessionTTL}
}

func (s *Store) Close() error {
	return s.Redis.Close()
}

// Lists 返回实现 news.ListingCache 的视图
func (s *Store) Lists() *ListingCache {
	return &ListingCache{store: s}
}

// Sessions 返回实现 session.Store 的视图
func (s *Store) Sessions() *SessionStore {
	return &SessionStore{store: s}
}

type ListingCache struct {
	store *Store
}

func (c *ListingCache) Get(ctx context.Context, key string) ([]collector.Article, bool, error) {
	var list []collector.Article
	ok, err := c.store.getJSON(ctx, listKeyPrefix+key, &list)
	if err != nil || !ok {
		return nil, false, err
	}
	return list, true, nil
}

// Set listTTL<=0 时不写入
func (c *ListingCache) Set(ctx context.Context, key string, articles []collector.Article) error {
	if c.store.listTTL <= 0 {
		return nil
	}
	if articles == nil {
		articles = []collector.Article{}
	}
	return c.store.setJSON(ctx, listKeyPrefix+key, articles, c.store.listTTL)
}

type SessionStore struct {
	store *Store
}

// Load 读出的状态会先 Normalize，容忍旧版本或被篡改的数据
func (ss *SessionStore) Load(ctx context.Context, id string) (session.State, bool, error) {
	var st session.State
	ok, err := ss.store.getJSON(ctx, sessionKeyPrefix+id, &st)
	if err != nil || !ok {
		return session.State{}, false, err
	}
	return st.Normalize(), true, nil
}

func (ss *SessionStore) Save(ctx context.Context, id string, st session.State) error {
	// 0 表示不过期
	return ss.store.setJSON(ctx, sessionKeyPrefix+id, st, ss.store.sessionTTL)
}

func (s *Store) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	bs, err := s.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(bs, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Redis.Set(ctx, key, bs, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
