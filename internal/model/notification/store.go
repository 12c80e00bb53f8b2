package notification

import "sync"

// Store holds the in-memory notification list for one run of the client.
type Store struct {
	mu    sync.RWMutex
	items []Notification
}

// NewStore returns a Store preloaded with the supplied notifications.
func NewStore(items []Notification) *Store {
	return &Store{items: append([]Notification(nil), items...)}
}

// List returns notifications newest-first ordering preserved as seeded.
func (s *Store) List() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.items...)
}

// UnreadCount reports how many notifications are unread.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, item := range s.items {
		if !item.IsRead {
			n++
		}
	}
	return n
}

// MarkRead flags a single notification as read. Unknown ids are ignored.
func (s *Store) MarkRead(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsRead = true
			return
		}
	}
}

// MarkAllRead flags every notification as read.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].IsRead = true
	}
}

// Delete removes a notification by id.
func (s *Store) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// ClearAll empties the list.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
