package notification

import (
	"fmt"
	"testing"
	"time"

	"acadetrack-service/internal/domain/notification"
)

func makeNotification(identityID int64, i int) notification.Notification {
	return notification.Notification{
		ID:         fmt.Sprintf("n-%03d", i),
		IdentityID: identityID,
		Category:   notification.CategoryClass,
		Priority:   notification.PriorityMedium,
		Title:      fmt.Sprintf("title %d", i),
		CreatedAt:  time.Now(),
	}
}

func TestHistoryEvictsOldestAtCap(t *testing.T) {
	h := NewHistory(notification.HistoryCap)

	for i := 0; i < notification.HistoryCap+10; i++ {
		h.Add(makeNotification(1, i))
	}

	if got := h.Size(1); got != notification.HistoryCap {
		t.Fatalf("expected size %d, got %d", notification.HistoryCap, got)
	}

	latest, ok := h.Latest(1, notification.HistoryCap)
	if !ok {
		t.Fatal("expected cached entries")
	}
	if latest[0].ID != "n-059" {
		t.Fatalf("expected newest first, got %s", latest[0].ID)
	}
	if last := latest[len(latest)-1].ID; last != "n-010" {
		t.Fatalf("expected oldest surviving entry n-010, got %s", last)
	}
}

func TestHistoryLatestLimit(t *testing.T) {
	h := NewHistory(50)
	for i := 0; i < 30; i++ {
		h.Add(makeNotification(1, i))
	}

	latest, ok := h.Latest(1, 20)
	if !ok {
		t.Fatal("expected cached entries")
	}
	if len(latest) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(latest))
	}
	if latest[0].ID != "n-029" {
		t.Fatalf("expected newest first, got %s", latest[0].ID)
	}
}

func TestHistoryIsolatesUsers(t *testing.T) {
	h := NewHistory(50)
	h.Add(makeNotification(1, 0))
	h.Add(makeNotification(2, 1))

	if got := h.Size(1); got != 1 {
		t.Fatalf("user 1 size = %d, want 1", got)
	}
	if got := h.Size(2); got != 1 {
		t.Fatalf("user 2 size = %d, want 1", got)
	}

	h.Forget(1)
	if _, ok := h.Latest(1, 10); ok {
		t.Fatal("expected user 1 history to be forgotten")
	}
	if _, ok := h.Latest(2, 10); !ok {
		t.Fatal("user 2 history should survive")
	}
}

func TestHistoryMissReturnsFalse(t *testing.T) {
	h := NewHistory(50)
	if _, ok := h.Latest(99, 10); ok {
		t.Fatal("expected miss for unknown user")
	}
}
