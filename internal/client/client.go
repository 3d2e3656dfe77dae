// Package client talks to the relay over HTTP. It decides whether a failure happened
// before any HTTP answer arrived (TransportError) or the relay answered with an error
// status (APIError).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"ponder/internal/models"
)

var ErrUnexpectedResponse = errors.New("relay response has no text content")

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to reach relay (%s): %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx answer from the relay.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// IsTransport reports whether err is a failure to reach the relay at all.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New uses http.DefaultClient when httpClient is nil; no timeout is added on top of
// the transport's own.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "health", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}
	return nil
}

// Send posts the whole conversation and returns the first text block of the reply.
func (c *Client) Send(ctx context.Context, gen models.GenerationRequest) (string, error) {
	payload, err := json.Marshal(gen)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/claude", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read reply", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := gjson.GetBytes(body, "error")
		if message.Type == gjson.String && message.String() != "" {
			return "", &APIError{StatusCode: resp.StatusCode, Message: message.String()}
		}
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	text := gjson.GetBytes(body, "content.0.text")
	if text.Type != gjson.String {
		return "", ErrUnexpectedResponse
	}
	return text.String(), nil
}
