package cachesvc

import (
	"sync"

	"github.com/Reema362/learn-spark-lms-sub001/core"
)

// MemoryInvalidator records invalidated keys. Used in tests to assert which
// cache keys a mutation touches.
type MemoryInvalidator struct {
	mu   sync.Mutex
	keys []string
}

var _ core.Invalidator = (*MemoryInvalidator)(nil)

func NewMemoryInvalidator() *MemoryInvalidator {
	return &MemoryInvalidator{}
}

func (inv *MemoryInvalidator) Invalidate(keys ...string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.keys = append(inv.keys, keys...)
}

// Invalidated returns every key invalidated so far, in order.
func (inv *MemoryInvalidator) Invalidated() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	out := make([]string, len(inv.keys))
	copy(out, inv.keys)
	return out
}

func (inv *MemoryInvalidator) Reset() {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.keys = nil
}
