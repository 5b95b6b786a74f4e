package models

// Role classifies a family member for permission checks (plan approval,
// message deletion, call supervision).
type Role string

const (
	RoleParent Role = "Parent"
	RoleChild  Role = "Child"
)

// AssistantID is the sentinel sender id used for assistant-authored
// messages. It is not a member id and never appears in the directory.
const AssistantID = "ai"

// AssistantName is the display name attached to assistant messages.
const AssistantName = "Family AI"

// FamilyMember is reference data: created at startup, never mutated.
type FamilyMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// IsParent reports whether the member holds the Parent role.
func (m FamilyMember) IsParent() bool { return m.Role == RoleParent }
