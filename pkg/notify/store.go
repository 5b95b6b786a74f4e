// Package notify owns the dashboard notifications: append, mark-read and
// clear-all.
package notify

import (
	"sync"
	"time"

	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
	"familyconnect/pkg/utils"
)

// Store owns the notification collection.
type Store struct {
	mu    sync.Mutex
	items []models.Notification
}

// New loads the persisted notifications and returns a ready Store.
func New() *Store {
	s := &Store{}
	s.items = store.LoadCollection(store.KeyNotifications, []models.Notification{})
	for i := range s.items {
		s.items[i].Timestamp = s.items[i].Timestamp.UTC()
	}
	return s
}

// Add appends a notification with a fresh id and timestamp.
func (s *Store) Add(title, message string) models.Notification {
	n := models.Notification{
		ID:        utils.GenNotificationID(),
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.Notification{n}, s.items...)
	s.save()
	return n
}

// MarkAllRead flags every notification as read.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.save()
}

// Clear removes all notifications.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.save()
}

// Unread returns the count of unread notifications.
func (s *Store) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// All returns a copy of the notifications, newest first.
func (s *Store) All() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.items...)
}

// save persists the collection; callers must hold s.mu.
func (s *Store) save() {
	if err := store.SaveCollection(store.KeyNotifications, s.items); err != nil {
		logger.Error("notifications_save_failed", "error", err)
	}
}
