package notification_test

import (
	"testing"
	"time"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/notification"
)

func seededStore() *notification.Store {
	return notification.NewStore(notification.Seed(time.Now()))
}

func TestSeedUnreadCount(t *testing.T) {
	s := seededStore()
	if got := s.UnreadCount(); got != 3 {
		t.Fatalf("expected 3 unread seeded notifications, got %d", got)
	}
}

func TestMarkRead(t *testing.T) {
	s := seededStore()
	s.MarkRead(1)
	if got := s.UnreadCount(); got != 2 {
		t.Fatalf("expected 2 unread after MarkRead, got %d", got)
	}

	// Unknown id is a no-op.
	s.MarkRead(99)
	if got := s.UnreadCount(); got != 2 {
		t.Fatalf("expected unchanged unread count, got %d", got)
	}
}

func TestMarkAllRead(t *testing.T) {
	s := seededStore()
	s.MarkAllRead()
	if got := s.UnreadCount(); got != 0 {
		t.Fatalf("expected 0 unread after MarkAllRead, got %d", got)
	}
	if got := len(s.List()); got != 5 {
		t.Fatalf("MarkAllRead must not delete items, have %d", got)
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := seededStore()
	s.Delete(3)
	if got := len(s.List()); got != 4 {
		t.Fatalf("expected 4 items after delete, got %d", got)
	}
	for _, n := range s.List() {
		if n.ID == 3 {
			t.Fatal("deleted notification still present")
		}
	}

	s.ClearAll()
	if got := len(s.List()); got != 0 {
		t.Fatalf("expected empty list after ClearAll, got %d", got)
	}
}
