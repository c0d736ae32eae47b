package notification

import (
	"context"
	"testing"

	"acadetrack-service/internal/domain/notification"
	wstypes "acadetrack-service/internal/domain/websocket"

	"go.uber.org/zap"
)

type fakeStore struct {
	entries     map[int64][]notification.Notification
	latestCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[int64][]notification.Notification)}
}

func (f *fakeStore) Create(_ context.Context, n *notification.Notification) error {
	f.entries[n.IdentityID] = append([]notification.Notification{*n}, f.entries[n.IdentityID]...)
	return nil
}

func (f *fakeStore) List(_ context.Context, identityID int64, _ notification.ListFilters) ([]notification.Notification, int64, error) {
	list := f.entries[identityID]
	return list, int64(len(list)), nil
}

func (f *fakeStore) Latest(_ context.Context, identityID int64, limit int) ([]notification.Notification, error) {
	f.latestCalls++
	list := f.entries[identityID]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]notification.Notification, len(list))
	copy(out, list)
	return out, nil
}

func (f *fakeStore) Summary(_ context.Context, identityID int64) (*notification.Summary, error) {
	s := &notification.Summary{}
	for _, n := range f.entries[identityID] {
		s.Total++
		if n.IsRead {
			s.TotalRead++
		} else {
			s.TotalUnread++
		}
	}
	return s, nil
}

func (f *fakeStore) UnreadCount(_ context.Context, identityID int64) (int, error) {
	count := 0
	for _, n := range f.entries[identityID] {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) MarkRead(_ context.Context, identityID int64, id string) error {
	for i, n := range f.entries[identityID] {
		if n.ID == id {
			f.entries[identityID][i].IsRead = true
			return nil
		}
	}
	return nil
}

func (f *fakeStore) MarkAllRead(_ context.Context, identityID int64) (int64, error) {
	var updated int64
	for i, n := range f.entries[identityID] {
		if !n.IsRead {
			f.entries[identityID][i].IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeStore) Delete(_ context.Context, identityID int64, id string) error {
	list := f.entries[identityID][:0]
	for _, n := range f.entries[identityID] {
		if n.ID != id {
			list = append(list, n)
		}
	}
	f.entries[identityID] = list
	return nil
}

func (f *fakeStore) DeleteAll(_ context.Context, identityID int64) (int64, error) {
	deleted := int64(len(f.entries[identityID]))
	delete(f.entries, identityID)
	return deleted, nil
}

type fakePusher struct {
	counts []int
}

func (f *fakePusher) BroadcastNotification(int64, *wstypes.NotificationData) {}

func (f *fakePusher) BroadcastNotificationCount(_ int64, count int) {
	f.counts = append(f.counts, count)
}

func TestMarkReadInvalidatesHistoryCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNotificationService(store, nil, &fakePusher{}, zap.NewNop())

	n, err := svc.Notify(ctx, 7, notification.CategoryGoal, notification.PriorityMedium, "Goal Deadline Approaching", "due tomorrow", "target")
	if err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	// Cache is warm, so this read never touches the store.
	got, err := svc.Latest(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if store.latestCalls != 0 {
		t.Fatalf("warm cache still hit the store %d times", store.latestCalls)
	}
	if len(got) != 1 || got[0].IsRead {
		t.Fatalf("expected one unread entry, got %+v", got)
	}

	if err := svc.MarkRead(ctx, 7, n.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	got, err = svc.Latest(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Latest after MarkRead failed: %v", err)
	}
	if store.latestCalls != 1 {
		t.Fatalf("expected the store to serve the post-mark read, calls = %d", store.latestCalls)
	}
	if len(got) != 1 || !got[0].IsRead {
		t.Fatalf("mark-read not visible on next Latest: %+v", got)
	}
}

func TestMarkAllReadInvalidatesHistoryCache(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	pusher := &fakePusher{}
	svc := NewNotificationService(store, nil, pusher, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.Notify(ctx, 7, notification.CategoryClass, notification.PriorityHigh, "Class Reminder", "starts soon", "calendar"); err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
	}

	if _, err := svc.MarkAllRead(ctx, 7); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	got, err := svc.Latest(ctx, 7, 10)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for _, n := range got {
		if !n.IsRead {
			t.Fatalf("entry %s still unread after MarkAllRead", n.ID)
		}
	}

	// MarkAllRead pushes a zero unread count.
	if len(pusher.counts) == 0 || pusher.counts[len(pusher.counts)-1] != 0 {
		t.Fatalf("expected a trailing zero count push, got %v", pusher.counts)
	}
}
