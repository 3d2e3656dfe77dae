package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/tidwall/gjson"

	"ponder/internal/models"
)

const (
	msgMissingKey      = "Server configuration error: API key not found"
	msgMissingMessages = "Invalid request: messages array is required"
	msgBadMessage      = "Invalid request: each message needs a user or assistant role and text content"
)

// UpstreamRequest is one call to the model API.
type UpstreamRequest struct {
	Model     string
	MaxTokens int
	System    string
	Messages  []models.ChatMessage
}

// Upstream sends a conversation to the model API and returns its raw response body.
// Non-success answers come back as *UpstreamError.
type Upstream interface {
	CreateMessage(ctx context.Context, req UpstreamRequest) (json.RawMessage, error)
}

type Defaults struct {
	Model     string
	MaxTokens int
}

type RelayService struct {
	upstream      Upstream
	hasCredential bool
	systemPrompt  string
	defaults      Defaults
}

func NewRelayService(upstream Upstream, hasCredential bool, systemPrompt string, defaults Defaults) *RelayService {
	return &RelayService{
		upstream:      upstream,
		hasCredential: hasCredential,
		systemPrompt:  systemPrompt,
		defaults:      defaults,
	}
}

// Relay forwards the conversation with the system prompt attached. On success the
// upstream body is returned byte for byte.
func (s *RelayService) Relay(ctx context.Context, req models.ClaudeRequest) (json.RawMessage, error) {
	if !s.hasCredential {
		return nil, &ConfigurationError{Message: msgMissingKey}
	}

	messages, err := parseMessages(req.Messages)
	if err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = s.defaults.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.defaults.MaxTokens
	}

	log.Println("Making request to Anthropic API...")

	body, err := s.upstream.CreateMessage(ctx, UpstreamRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    s.systemPrompt,
		Messages:  messages,
	})
	if err != nil {
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			log.Printf("Anthropic API error: status=%d message=%q", upErr.StatusCode, upErr.Message)
			return nil, upErr
		}
		log.Printf("Server error: %v", err)
		return nil, &InternalError{Err: err}
	}

	log.Println("Successfully received response from Anthropic API")
	return body, nil
}

// parseMessages keeps the caller's order; the upstream infers turns from position.
func parseMessages(raw json.RawMessage) ([]models.ChatMessage, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil, &BadRequestError{Message: msgMissingMessages}
	}
	list := gjson.ParseBytes(raw)
	if !list.IsArray() || len(list.Array()) == 0 {
		return nil, &BadRequestError{Message: msgMissingMessages}
	}

	var messages []models.ChatMessage
	valid := true
	list.ForEach(func(_, item gjson.Result) bool {
		role := models.Role(item.Get("role").String())
		content := item.Get("content")
		if (role != models.RoleUser && role != models.RoleAssistant) || content.Type != gjson.String {
			valid = false
			return false
		}
		messages = append(messages, models.ChatMessage{Role: role, Content: content.String()})
		return true
	})
	if !valid {
		return nil, &BadRequestError{Message: msgBadMessage}
	}

	return messages, nil
}
