package storage

import (
	"context"
	"testing"
	"time"

	"github.com/LJTian/NewsHorizon/internal/category"
	"github.com/LJTian/NewsHorizon/internal/collector"
	"github.com/LJTian/NewsHorizon/internal/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, listTTL, sessionTTL time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStoreWithClient(rdb, listTTL, sessionTTL), mr
}

func TestListingCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute, time.Hour)
	lists := s.Lists()

	_, ok, err := lists.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	in := []collector.Article{{
		Title:  "Monsoon arrives early - NDTV",
		Link:   "https://example.com/monsoon",
		Source: &collector.Source{Title: "NDTV", URL: "https://ndtv.com"},
	}}
	require.NoError(t, lists.Set(ctx, "abc", in))
	assert.True(t, mr.Exists(listKeyPrefix+"abc"))
	assert.Equal(t, time.Minute, mr.TTL(listKeyPrefix+"abc"))

	got, ok, err := lists.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, in[0].Title, got[0].Title)
	require.NotNil(t, got[0].Source)
	assert.Equal(t, "NDTV", got[0].Source.Title)

	mr.FastForward(time.Minute)
	_, ok, err = lists.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListingCacheEmptyListIsAHit(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, time.Minute, time.Hour)

	require.NoError(t, s.Lists().Set(ctx, "empty", nil))
	got, ok, err := s.Lists().Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestListingCacheDisabledWithZeroTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, 0, time.Hour)

	require.NoError(t, s.Lists().Set(ctx, "abc", []collector.Article{{Title: "x"}}))
	assert.False(t, mr.Exists(listKeyPrefix+"abc"))
}

func TestListingCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute, time.Hour)
	require.NoError(t, mr.Set(listKeyPrefix+"bad", "{not json"))

	_, ok, err := s.Lists().Get(ctx, "bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute, 2*time.Hour)
	sessions := s.Sessions()

	_, ok, err := sessions.Load(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, ok)

	st := session.Initial().SetCategory(category.Sports).NextPage().NextPage()
	require.NoError(t, sessions.Save(ctx, "sid", st))
	assert.Equal(t, 2*time.Hour, mr.TTL(sessionKeyPrefix+"sid"))

	got, ok, err := sessions.Load(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, st, got)
}

func TestSessionStoreNormalizesStoredState(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute, time.Hour)
	require.NoError(t, mr.Set(sessionKeyPrefix+"sid", `{"mode":"browsing","category":"Nonsense","page":-4}`))

	got, ok, err := s.Sessions().Load(ctx, "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session.Browsing, got.Mode)
	assert.Equal(t, category.Home, got.Category)
	assert.Equal(t, 0, got.Page)
}

func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewStoreWithClient(rdb, time.Minute, time.Hour)
	mr.Close()

	_, ok, err := s.Lists().Get(ctx, "abc")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, s.Sessions().Save(ctx, "sid", session.Initial()))
}
