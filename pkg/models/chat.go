package models

// ChatType discriminates conversations. Individual chats have exactly two
// participants; ai chats talk to the assistant.
type ChatType string

const (
	ChatIndividual ChatType = "individual"
	ChatGroup      ChatType = "group"
	ChatAI         ChatType = "ai"
)

// Chat is a conversation. LastMessage is a denormalized cache of the most
// recent entry in the chat's message list and is re-synced on every append
// and delete rather than trusted independently.
type Chat struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         ChatType     `json:"type"`
	Participants []string     `json:"participants"`
	Avatar       string       `json:"avatar,omitempty"`
	LastMessage  *ChatMessage `json:"last_message,omitempty"`
	UnreadCount  int          `json:"unread_count"`
	IsPinned     bool         `json:"is_pinned,omitempty"`
	IsMuted      bool         `json:"is_muted,omitempty"`
	IsArchived   bool         `json:"is_archived,omitempty"`
}

// Counterpart returns the participant id that is not selfID for an
// individual chat. It returns "" for group and ai chats.
func (c Chat) Counterpart(selfID string) string {
	if c.Type != ChatIndividual {
		return ""
	}
	for _, p := range c.Participants {
		if p != selfID {
			return p
		}
	}
	return ""
}
