// internal/service/reminder/registry.go
package reminder

import (
	"fmt"
	"sync"
	"time"
)

// Registry remembers which reminder windows have already fired during
// this process run. A reminder fires at most once per (student, key)
// even when several evaluation ticks land inside the same window.
type Registry struct {
	mu    sync.Mutex
	fired map[string]time.Time
}

func NewRegistry() *Registry {
	return &Registry{fired: make(map[string]time.Time)}
}

// FireOnce marks the key and reports whether this is its first firing.
func (r *Registry) FireOnce(identityID int64, key string, now time.Time) bool {
	full := fmt.Sprintf("%d:%s", identityID, key)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, seen := r.fired[full]; seen {
		return false
	}
	r.fired[full] = now
	return true
}

// Sweep drops entries older than the retention window. Keys embed
// their date or hour, so an old entry can never block a new window.
func (r *Registry) Sweep(olderThan time.Duration, now time.Time) int {
	cutoff := now.Add(-olderThan)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, at := range r.fired {
		if at.Before(cutoff) {
			delete(r.fired, key)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fired)
}
