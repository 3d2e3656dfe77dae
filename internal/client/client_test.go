package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"

	"ponder/internal/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/health" {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			err := New(srv.URL+"/", nil).Health(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
			if err != nil && IsTransport(err) {
				t.Fatalf("status failure should not be a transport failure")
			}
		})
	}
}

func TestHealth_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, nil).Health(context.Background())
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSend_Success(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/claude" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"Hi, what shall we learn?"}]}`))
	}))
	defer srv.Close()

	text, err := New(srv.URL, nil).Send(context.Background(), models.GenerationRequest{
		Messages: []models.ChatMessage{
			{Role: models.RoleUser, Content: "hello"},
			{Role: models.RoleAssistant, Content: "hey"},
			{Role: models.RoleUser, Content: "again"},
		},
		Model:     "claude-test",
		MaxTokens: 4000,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text != "Hi, what shall we learn?" {
		t.Fatalf("unexpected text %q", text)
	}

	if got := gjson.GetBytes(body, "messages.#.content").String(); got != `["hello","hey","again"]` {
		t.Fatalf("unexpected wire order %s", got)
	}
	if got := gjson.GetBytes(body, "model").String(); got != "claude-test" {
		t.Fatalf("unexpected model %q", got)
	}
	if got := gjson.GetBytes(body, "max_tokens").Int(); got != 4000 {
		t.Fatalf("unexpected max_tokens %d", got)
	}
}

func TestSend_APIError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"relay message", 529, `{"error":"overloaded"}`, "overloaded"},
		{"no body", 502, ``, "HTTP error! status: 502"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, nil).Send(context.Background(), models.GenerationRequest{})

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tc.status || apiErr.Message != tc.expected {
				t.Fatalf("unexpected error %+v", apiErr)
			}
			if IsTransport(err) {
				t.Fatalf("api error should not be a transport failure")
			}
		})
	}
}

func TestSend_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Send(context.Background(), models.GenerationRequest{})
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Fatalf("expected ErrUnexpectedResponse, got %v", err)
	}
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Send(context.Background(), models.GenerationRequest{})
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
