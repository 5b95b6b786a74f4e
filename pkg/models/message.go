package models

import "time"

// MessageType discriminates the payload of a chat message.
type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImage  MessageType = "image"
	MessageVoice  MessageType = "voice"
	MessageSystem MessageType = "system"
)

// DeliveryState is the optional sent/delivered/read marker on a message.
type DeliveryState string

const (
	DeliverySent      DeliveryState = "sent"
	DeliveryDelivered DeliveryState = "delivered"
	DeliveryRead      DeliveryState = "read"
)

// ChatMessage is owned exclusively by its chat. Messages are append-only;
// the only in-place edits are the star toggle and delete-by-id.
type ChatMessage struct {
	ID         string        `json:"id"`
	SenderID   string        `json:"sender_id"`
	SenderName string        `json:"sender_name"`
	Text       string        `json:"text"`
	Timestamp  time.Time     `json:"timestamp"`
	Type       MessageType   `json:"type"`
	Status     DeliveryState `json:"status,omitempty"`
	MediaURL   string        `json:"media_url,omitempty"`
	IsStarred  bool          `json:"is_starred,omitempty"`
	// ReplyToID references another message in the same chat; an id that
	// does not resolve is treated as absent.
	ReplyToID string `json:"reply_to_id,omitempty"`
}

// FromAssistant reports whether the message was authored by the assistant.
func (m ChatMessage) FromAssistant() bool { return m.SenderID == AssistantID }
