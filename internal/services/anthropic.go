package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"

	"ponder/internal/models"
)

// AnthropicUpstream calls the Messages API through the Anthropic SDK.
type AnthropicUpstream struct {
	client *anthropic.Client
}

// NewAnthropicUpstream builds a client with SDK retries disabled; failures go straight
// back to the user.
func NewAnthropicUpstream(apiKey, baseURL string) *AnthropicUpstream {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	c := anthropic.NewClient(opts...)
	return &AnthropicUpstream{client: &c}
}

func (u *AnthropicUpstream) CreateMessage(ctx context.Context, req UpstreamRequest) (json.RawMessage, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  toAnthropicMessages(req.Messages),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	// Post skips the SDK's non-streaming duration guard, so max_tokens reaches the API
	// as given and no per-call timeout is added.
	var (
		raw      []byte
		httpResp *http.Response
	)
	err := u.client.Post(ctx, "v1/messages", params, &raw, option.WithResponseInto(&httpResp))
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, newUpstreamError(apiErr.StatusCode, []byte(apiErr.RawJSON()))
		}
		// The SDK gives up on error bodies that are not JSON; the status still counts.
		if httpResp != nil && httpResp.StatusCode >= http.StatusBadRequest {
			body, _ := io.ReadAll(httpResp.Body)
			return nil, newUpstreamError(httpResp.StatusCode, body)
		}
		return nil, err
	}

	return json.RawMessage(raw), nil
}

func newUpstreamError(status int, body []byte) *UpstreamError {
	message := gjson.GetBytes(body, "error.message")
	if message.Type == gjson.String && message.String() != "" {
		return &UpstreamError{StatusCode: status, Message: message.String()}
	}
	return &UpstreamError{
		StatusCode: status,
		Message:    fmt.Sprintf("API request failed with status %d", status),
	}
}

func toAnthropicMessages(msgs []models.ChatMessage) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, len(msgs))
	for i, m := range msgs {
		if m.Role == models.RoleAssistant {
			out[i] = anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content))
		} else {
			out[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content))
		}
	}
	return out
}
