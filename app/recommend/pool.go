package recommend

import (
	"sync"
	"time"
)

// PoolSnapshot is an immutable view of the known articles and their cached
// trending scores. A snapshot is built whole by the refresh task and shared
// read-only across concurrent feed requests.
type PoolSnapshot struct {
	Articles    []Article
	Trending    map[string]float64
	RefreshedAt time.Time
}

// Pool publishes article snapshots atomically: readers always see either
// the previous complete snapshot or the next one, never a mix.
type Pool struct {
	mu       sync.RWMutex
	snapshot *PoolSnapshot
}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Publish(snapshot *PoolSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshot = snapshot
}

// Get returns the current snapshot. Before the first refresh an empty
// snapshot is returned; an empty pool is a valid, degenerate input.
func (p *Pool) Get() *PoolSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.snapshot == nil {
		return &PoolSnapshot{Trending: map[string]float64{}}
	}
	return p.snapshot
}
