package inflight

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	id        uint64
	expiresAt time.Time
}

// MemoryGuard 单进程内的 Guard 实现
//
// ttl 到期后占用自动失效，防止异常路径未调用 Release 导致键被永久锁住。
type MemoryGuard struct {
	ttl   time.Duration
	clock func() time.Time

	mu     sync.Mutex
	nextID uint64
	held   map[string]entry
}

// NewMemoryGuard 创建内存 Guard
func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &MemoryGuard{
		ttl:   ttl,
		clock: time.Now,
		held:  make(map[string]entry),
	}
}

// TryAcquire 实现 Guard
func (g *MemoryGuard) TryAcquire(_ context.Context, key string) (Release, bool, error) {
	key = NormalizeKey(key)
	now := g.clock()

	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.held[key]; ok && now.Before(current.expiresAt) {
		return nil, false, nil
	}

	g.nextID++
	id := g.nextID
	g.held[key] = entry{id: id, expiresAt: now.Add(g.ttl)}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			// 过期后可能已被其他请求重新占用
			if current, ok := g.held[key]; ok && current.id == id {
				delete(g.held, key)
			}
		})
	}, true, nil
}

// Len 当前占用数量（含已过期未清理的）
func (g *MemoryGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.held)
}
