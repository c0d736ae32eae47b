// internal/service/notification/history.go
package notification

import (
	"sync"

	"acadetrack-service/internal/domain/notification"
)

// History is an in-process, per-student cache of recent notifications,
// newest first, bounded at the same cap as the stored history. It
// serves the hot "latest notifications" read without a round trip and
// is dropped wholesale whenever a mutation makes it stale.
type History struct {
	mu      sync.RWMutex
	entries map[int64][]notification.Notification
	cap     int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = notification.HistoryCap
	}
	return &History{
		entries: make(map[int64][]notification.Notification),
		cap:     capacity,
	}
}

// Add prepends a notification, evicting the oldest past the cap.
func (h *History) Add(n notification.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.entries[n.IdentityID]
	list = append([]notification.Notification{n}, list...)
	if len(list) > h.cap {
		list = list[:h.cap]
	}
	h.entries[n.IdentityID] = list
}

// Latest returns up to limit cached notifications, newest first, and
// whether the cache holds anything for this student.
func (h *History) Latest(identityID int64, limit int) ([]notification.Notification, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list, ok := h.entries[identityID]
	if !ok || len(list) == 0 {
		return nil, false
	}
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}

	out := make([]notification.Notification, limit)
	copy(out, list[:limit])
	return out, true
}

// Forget drops the cached history for a student. Called after reads
// or deletes mutate the stored state.
func (h *History) Forget(identityID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, identityID)
}

// Size reports the cached entry count for a student.
func (h *History) Size(identityID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries[identityID])
}
