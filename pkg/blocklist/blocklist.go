// Package blocklist maintains the set of member ids the current user has
// blocked. The set is session-scoped state persisted across restarts.
package blocklist

import (
	"sort"
	"sync"

	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
)

// Set is the blocked-member set. All methods are safe for concurrent use.
type Set struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// Load reads the persisted blocked ids and returns a ready Set. A missing
// or corrupt value yields an empty set.
func Load() *Set {
	ids := store.LoadCollection(store.KeyBlockedUsers, []string{})
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Block resolves the counterpart of an individual chat and adds it to the
// set. For group and ai chats the request is acknowledged without touching
// the set. It returns the blocked member id and whether the set changed.
func (s *Set) Block(selfID string, chat models.Chat) (string, bool) {
	if chat.Type != models.ChatIndividual {
		logger.Info("block_noop_non_individual", "chat", chat.ID, "type", string(chat.Type))
		return "", false
	}
	other := chat.Counterpart(selfID)
	if other == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[other]; ok {
		return other, false
	}
	s.ids[other] = struct{}{}
	s.save()
	logger.Info("contact_blocked", "member", other, "chat", chat.ID)
	return other, true
}

// Unblock removes memberID from the set if present. Idempotent.
func (s *Set) Unblock(memberID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[memberID]; !ok {
		return false
	}
	delete(s.ids, memberID)
	s.save()
	logger.Info("contact_unblocked", "member", memberID)
	return true
}

// Contains reports whether memberID is blocked.
func (s *Set) Contains(memberID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[memberID]
	return ok
}

// IsBlocked reports whether the chat's counterpart (for an individual
// chat) is blocked. Group and ai chats are never considered blocked.
func (s *Set) IsBlocked(chat models.Chat, selfID string) bool {
	if chat.Type != models.ChatIndividual {
		return false
	}
	other := chat.Counterpart(selfID)
	if other == "" {
		return false
	}
	return s.Contains(other)
}

// CanCall reports whether a voice/video call to memberID is permitted.
func (s *Set) CanCall(memberID string) bool {
	return !s.Contains(memberID)
}

// List returns the blocked member ids in stable order.
func (s *Set) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// save persists the set; callers must hold s.mu.
func (s *Set) save() {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	if err := store.SaveCollection(store.KeyBlockedUsers, out); err != nil {
		logger.Error("blocklist_save_failed", "error", err)
	}
}
