package models

import "encoding/json"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ClaudeRequest is the payload accepted by POST /api/claude. Messages is kept raw so
// the relay can tell a missing field apart from one that is not an array.
type ClaudeRequest struct {
	Messages  json.RawMessage `json:"messages"`
	Model     string          `json:"model,omitempty"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

// GenerationRequest is built fresh by the client for every send.
type GenerationRequest struct {
	Messages  []ChatMessage `json:"messages"`
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
}
