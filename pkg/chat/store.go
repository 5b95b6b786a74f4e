// Package chat owns the chat list and per-chat message lists. It applies
// the send/star/delete rules, the contact-block gate and the assistant
// auto-reply protocol, and snapshots state after every mutation.
package chat

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"familyconnect/pkg/assistant"
	"familyconnect/pkg/blocklist"
	"familyconnect/pkg/logger"
	"familyconnect/pkg/models"
	"familyconnect/pkg/store"
	"familyconnect/pkg/telemetry"
	"familyconnect/pkg/utils"
)

var (
	// ErrChatNotFound is returned when a send targets an unknown chat.
	ErrChatNotFound = errors.New("chat not found")
	// ErrBlocked is returned when a send targets a blocked contact. No
	// state is mutated.
	ErrBlocked = errors.New("cannot send messages to a blocked contact")
	// ErrNotPermitted is returned when a delete actor is neither the
	// message sender nor a Parent.
	ErrNotPermitted = errors.New("only the sender or a parent can delete a message")
)

// Store owns chats and their message lists. All exported methods are safe
// for concurrent use; each mutation is applied atomically under the lock
// and persisted before the lock is released.
type Store struct {
	mu       sync.Mutex
	chats    []models.Chat
	messages map[string][]models.ChatMessage

	blocked   *blocklist.Set
	completer assistant.Completer
	online    func() bool

	pending sync.WaitGroup
}

// New loads the persisted chats and messages and returns a ready Store.
// online gates the assistant path; a nil completer behaves like a failing
// backend.
func New(blocked *blocklist.Set, completer assistant.Completer, online func() bool) *Store {
	s := &Store{
		blocked:   blocked,
		completer: completer,
		online:    online,
	}
	if online == nil {
		s.online = func() bool { return true }
	}
	s.chats = store.LoadCollection(store.KeyChats, []models.Chat{})
	s.messages = store.LoadCollection(store.KeyChatMessages, map[string][]models.ChatMessage{})
	reviveChats(s.chats)
	reviveMessages(s.messages)
	return s
}

// reviveChats normalizes serialized timestamps back to UTC after a load.
func reviveChats(chats []models.Chat) {
	for i := range chats {
		if chats[i].LastMessage != nil {
			chats[i].LastMessage.Timestamp = chats[i].LastMessage.Timestamp.UTC()
		}
	}
}

func reviveMessages(m map[string][]models.ChatMessage) {
	for _, msgs := range m {
		for i := range msgs {
			msgs[i].Timestamp = msgs[i].Timestamp.UTC()
		}
	}
}

// Send appends a message from sender to the chat. It updates the chat's
// lastMessage cache, resets unreadCount and triggers the assistant
// auto-reply protocol for ai chats. Sends to a blocked counterpart return
// ErrBlocked without mutating state.
func (s *Store) Send(chatID string, sender models.FamilyMember, text string, typ models.MessageType, mediaURL, replyToID string) (models.ChatMessage, error) {
	if typ == "" {
		typ = models.MessageText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.chatIndex(chatID)
	if idx < 0 {
		return models.ChatMessage{}, ErrChatNotFound
	}
	ch := &s.chats[idx]

	if s.blocked.IsBlocked(*ch, sender.ID) {
		telemetry.BlockedSends.Inc()
		logger.Info("send_refused_blocked", "chat", chatID, "sender", sender.ID)
		return models.ChatMessage{}, ErrBlocked
	}

	// An unresolvable reply reference is treated as absent.
	if replyToID != "" && !s.hasMessage(chatID, replyToID) {
		replyToID = ""
	}

	if text == "" {
		switch typ {
		case models.MessageImage:
			text = "Image"
		case models.MessageVoice:
			text = "Voice"
		}
	}

	msg := models.ChatMessage{
		ID:         utils.GenMessageID(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		Text:       text,
		Timestamp:  time.Now().UTC(),
		Type:       typ,
		Status:     models.DeliverySent,
		MediaURL:   mediaURL,
		ReplyToID:  replyToID,
	}

	// Transcript for the assistant is the history before this message.
	var transcript []assistant.Turn
	if ch.Type == models.ChatAI && typ == models.MessageText {
		transcript = s.transcript(chatID)
	}

	s.messages[chatID] = append(s.messages[chatID], msg)
	last := msg
	ch.LastMessage = &last
	ch.UnreadCount = 0
	s.save()
	telemetry.MessagesSent.Inc()
	logger.Info("message_sent", "chat", chatID, "id", msg.ID, "type", string(typ))

	if ch.Type == models.ChatAI && typ == models.MessageText {
		if !s.online() {
			s.appendAssistantLocked(chatID, assistant.OfflineReply)
		} else {
			s.pending.Add(1)
			go s.completeReply(chatID, text, transcript)
		}
	}
	return msg, nil
}

// completeReply makes the single assistant attempt for a user message and
// applies the result as a discrete state update. Failures are logged and
// swallowed; the chat simply receives no reply. There is no cancellation
// of an in-flight attempt and no retry.
func (s *Store) completeReply(chatID, text string, transcript []assistant.Turn) {
	defer s.pending.Done()
	if s.completer == nil {
		telemetry.AssistantFailures.Inc()
		logger.Error("assistant_reply_failed", "chat", chatID, "error", "no completer configured")
		return
	}
	reply, err := s.completer.Complete(context.Background(), text, transcript)
	if err != nil {
		telemetry.AssistantFailures.Inc()
		logger.Error("assistant_reply_failed", "chat", chatID, "error", err)
		return
	}
	if reply == "" {
		reply = "..."
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chatIndex(chatID) < 0 {
		return
	}
	s.appendAssistantLocked(chatID, reply)
	telemetry.AssistantReplies.Inc()
}

// appendAssistantLocked appends an assistant-authored message and updates
// the lastMessage cache. Callers must hold s.mu.
func (s *Store) appendAssistantLocked(chatID, text string) {
	idx := s.chatIndex(chatID)
	if idx < 0 {
		return
	}
	msg := models.ChatMessage{
		ID:         utils.GenMessageID(),
		SenderID:   models.AssistantID,
		SenderName: models.AssistantName,
		Text:       text,
		Timestamp:  time.Now().UTC(),
		Type:       models.MessageText,
	}
	s.messages[chatID] = append(s.messages[chatID], msg)
	last := msg
	s.chats[idx].LastMessage = &last
	s.save()
	logger.Info("assistant_reply_appended", "chat", chatID, "id", msg.ID)
}

// transcript converts a chat's message history into ordered role-tagged
// turns. Callers must hold s.mu.
func (s *Store) transcript(chatID string) []assistant.Turn {
	msgs := s.messages[chatID]
	out := make([]assistant.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := assistant.RoleUser
		if m.FromAssistant() {
			role = assistant.RoleAssistant
		}
		out = append(out, assistant.Turn{Role: role, Text: m.Text})
	}
	return out
}

// Star toggles the starred flag on the message with msgID in whichever
// chat contains it. Unknown ids are a no-op.
func (s *Store) Star(msgID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, msgs := range s.messages {
		for i := range msgs {
			if msgs[i].ID != msgID {
				continue
			}
			msgs[i].IsStarred = !msgs[i].IsStarred
			s.resyncLastLocked(chatID)
			s.save()
			logger.Info("message_star_toggled", "chat", chatID, "id", msgID, "starred", msgs[i].IsStarred)
			return true
		}
	}
	return false
}

// Delete removes the message with msgID from its chat. Deletion is
// permitted only for the message's own sender or a Parent-role actor.
// Unknown ids are a no-op.
func (s *Store) Delete(msgID string, actor models.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, msgs := range s.messages {
		for i := range msgs {
			if msgs[i].ID != msgID {
				continue
			}
			if msgs[i].SenderID != actor.ID && !actor.IsParent() {
				return ErrNotPermitted
			}
			s.messages[chatID] = append(msgs[:i], msgs[i+1:]...)
			s.resyncLastLocked(chatID)
			s.save()
			logger.Info("message_deleted", "chat", chatID, "id", msgID, "actor", actor.ID)
			return nil
		}
	}
	return nil
}

// resyncLastLocked re-derives the lastMessage cache from the message list
// tail so the two never diverge. Callers must hold s.mu.
func (s *Store) resyncLastLocked(chatID string) {
	idx := s.chatIndex(chatID)
	if idx < 0 {
		return
	}
	msgs := s.messages[chatID]
	if len(msgs) == 0 {
		s.chats[idx].LastMessage = nil
		return
	}
	last := msgs[len(msgs)-1]
	s.chats[idx].LastMessage = &last
}

// TogglePin flips the pinned flag on a chat by id.
func (s *Store) TogglePin(chatID string) bool {
	return s.toggleFlag(chatID, func(c *models.Chat) { c.IsPinned = !c.IsPinned })
}

// ToggleMute flips the muted flag on a chat by id.
func (s *Store) ToggleMute(chatID string) bool {
	return s.toggleFlag(chatID, func(c *models.Chat) { c.IsMuted = !c.IsMuted })
}

// ToggleArchive flips the archived flag on a chat by id.
func (s *Store) ToggleArchive(chatID string) bool {
	return s.toggleFlag(chatID, func(c *models.Chat) { c.IsArchived = !c.IsArchived })
}

func (s *Store) toggleFlag(chatID string, apply func(*models.Chat)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.chatIndex(chatID)
	if idx < 0 {
		return false
	}
	apply(&s.chats[idx])
	s.save()
	return true
}

// Sorted returns the chats in presentation order: archived chats are
// excluded, pinned chats sort first, and within each pin tier chats order
// by lastMessage timestamp descending with message-less chats last.
func (s *Store) Sorted() []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		if c.IsArchived {
			continue
		}
		out = append(out, c)
	}
	lastTS := func(c models.Chat) time.Time {
		if c.LastMessage == nil {
			return time.Time{}
		}
		return c.LastMessage.Timestamp
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return lastTS(a).After(lastTS(b))
	})
	return out
}

// Get returns the chat with the given id.
func (s *Store) Get(chatID string) (models.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.chatIndex(chatID)
	if idx < 0 {
		return models.Chat{}, false
	}
	return s.chats[idx], true
}

// Chats returns a copy of all chats, archived included.
func (s *Store) Chats() []models.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Chat(nil), s.chats...)
}

// Messages returns a copy of the message list for a chat.
func (s *Store) Messages(chatID string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages[chatID]...)
}

// Wait blocks until all in-flight assistant replies have been applied or
// abandoned. Used by shutdown and tests.
func (s *Store) Wait() {
	s.pending.Wait()
}

func (s *Store) chatIndex(chatID string) int {
	for i := range s.chats {
		if s.chats[i].ID == chatID {
			return i
		}
	}
	return -1
}

func (s *Store) hasMessage(chatID, msgID string) bool {
	for _, m := range s.messages[chatID] {
		if m.ID == msgID {
			return true
		}
	}
	return false
}

// save snapshots both collections; callers must hold s.mu.
func (s *Store) save() {
	if err := store.SaveCollection(store.KeyChats, s.chats); err != nil {
		logger.Error("chats_save_failed", "error", err)
	}
	if err := store.SaveCollection(store.KeyChatMessages, s.messages); err != nil {
		logger.Error("chat_messages_save_failed", "error", err)
	}
}
