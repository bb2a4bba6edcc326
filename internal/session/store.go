package session

import (
	"context"
	"sync"
	"time"
)

// Store 按会话 ID 读写状态；ok=false 表示不存在或已过期
type Store interface {
	Load(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, id string, s State) error
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore 进程内实现，未配置 Redis 时使用；过期条目由 Sweep 清理
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return State{}, false, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return State{}, false, nil
	}
	return e.state, true, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{state: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

// Sweep 删除所有已过期会话，返回删除数量
func (m *MemoryStore) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
