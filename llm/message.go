package llm

import "errors"

// ErrInvalidMessage is returned when a message does not carry the fields its
// role requires.
var ErrInvalidMessage = errors.New("invalid message")

// Role represents the role of a message sender in a conversation.
type Role string

const (
	// RoleSystem represents system-level instructions. System messages form the
	// system prompt and are hashed separately from the rest of the conversation.
	RoleSystem Role = "system"

	// RoleUser represents messages from the user.
	RoleUser Role = "user"

	// RoleAssistant represents messages from the model.
	RoleAssistant Role = "assistant"

	// RoleTool represents tool execution results fed back to the model.
	RoleTool Role = "tool"
)

// String returns a string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the role is one of the defined constants.
func (r Role) IsValid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	default:
		return false
	}
}

// Message represents a single message in a conversation.
type Message struct {
	// Role indicates who sent the message.
	Role Role

	// Content is the text content of the message.
	Content string

	// Name identifies the tool that produced this message.
	// Only valid when Role is RoleTool.
	Name string
}

// IsValid reports whether the message has a known role and the fields that
// role requires: non-empty content without a name, or a name for tool results.
func (m Message) IsValid() bool {
	if !m.Role.IsValid() {
		return false
	}
	if m.Role == RoleTool {
		return m.Name != ""
	}
	return m.Content != "" && m.Name == ""
}

// dump returns the plain mapping form of the message used for hashing.
func (m Message) dump() map[string]any {
	out := map[string]any{
		"role":    m.Role.String(),
		"content": m.Content,
	}
	if m.Name != "" {
		out["name"] = m.Name
	}
	return out
}
