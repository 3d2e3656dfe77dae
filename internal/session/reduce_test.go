package session

import (
	"errors"
	"strings"
	"testing"

	"ponder/internal/client"
	"ponder/internal/models"
)

const relayURL = "http://localhost:5001"

func connected() State {
	s, _ := New(relayURL, true)
	s, _ = Reduce(s, ProbeFinished{})
	return s
}

func TestNew_RestoresAuthentication(t *testing.T) {
	s, effects := New(relayURL, true)
	if !s.Authenticated || s.Status != StatusChecking {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if len(effects) != 1 {
		t.Fatalf("expected a probe on start, got %v", effects)
	}
	if _, ok := effects[0].(ProbeEffect); !ok {
		t.Fatalf("expected ProbeEffect, got %T", effects[0])
	}

	s, effects = New(relayURL, false)
	if s.Authenticated || len(effects) != 0 {
		t.Fatalf("expected locked state without effects, got %+v %v", s, effects)
	}
}

func TestAccessCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		authed  bool
		effects int
	}{
		{"exact code unlocks", AccessCode, true, 2},
		{"wrong code", "letmein", false, 0},
		{"code with whitespace", " " + AccessCode, false, 0},
		{"empty", "", false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := New(relayURL, false)
			s, _ = Reduce(s, AccessCodeChanged{Code: tc.code})
			s, effects := Reduce(s, AccessCodeSubmitted{})

			if s.Authenticated != tc.authed {
				t.Fatalf("expected authenticated=%v, got %v", tc.authed, s.Authenticated)
			}
			if len(effects) != tc.effects {
				t.Fatalf("expected %d effects, got %v", tc.effects, effects)
			}
			if tc.authed {
				if _, ok := effects[0].(PersistAuthEffect); !ok {
					t.Fatalf("expected PersistAuthEffect first, got %T", effects[0])
				}
				if _, ok := effects[1].(ProbeEffect); !ok {
					t.Fatalf("expected ProbeEffect second, got %T", effects[1])
				}
				if s.Notice != "" {
					t.Fatalf("unexpected notice %q", s.Notice)
				}
			} else {
				if s.Notice != InvalidCodeNotice {
					t.Fatalf("expected rejection notice, got %q", s.Notice)
				}
				if s.AccessCode != "" {
					t.Fatalf("expected code field cleared for re-prompt")
				}
			}
		})
	}
}

func TestProbe(t *testing.T) {
	s, _ := New(relayURL, true)

	ok, _ := Reduce(s, ProbeFinished{})
	if ok.Status != StatusConnected {
		t.Fatalf("expected connected, got %v", ok.Status)
	}

	failed, _ := Reduce(s, ProbeFinished{Err: errors.New("refused")})
	if failed.Status != StatusError {
		t.Fatalf("expected error, got %v", failed.Status)
	}

	locked, _ := New(relayURL, false)
	locked, _ = Reduce(locked, ProbeFinished{})
	if locked.Status != StatusChecking {
		t.Fatalf("probe result should be ignored while locked, got %v", locked.Status)
	}
}

func TestSend_AppendsUserMessageAndRequestsRelay(t *testing.T) {
	s := connected()
	s, _ = Reduce(s, InputChanged{Text: "  hello  "})
	s, effects := Reduce(s, SendRequested{})

	if len(s.Conversation) != 1 || s.Conversation[0] != (models.ChatMessage{Role: models.RoleUser, Content: "hello"}) {
		t.Fatalf("unexpected conversation: %+v", s.Conversation)
	}
	if !s.Sending {
		t.Fatalf("expected in-flight flag set")
	}
	if s.Input != "" || s.InputLines != 1 {
		t.Fatalf("expected input cleared and height reset, got %q / %d", s.Input, s.InputLines)
	}
	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %v", effects)
	}
	rel, ok := effects[0].(RelayEffect)
	if !ok {
		t.Fatalf("expected RelayEffect, got %T", effects[0])
	}
	if len(rel.Conversation) != 1 || rel.Conversation[0].Content != "hello" {
		t.Fatalf("expected full conversation in effect, got %+v", rel.Conversation)
	}
}

func TestSend_RejectedCases(t *testing.T) {
	tests := []struct {
		name   string
		setup  func() State
		notice bool
	}{
		{"empty input", func() State { return connected() }, false},
		{"whitespace input", func() State {
			s, _ := Reduce(connected(), InputChanged{Text: " \n\t "})
			return s
		}, false},
		{"already sending", func() State {
			s, _ := Reduce(connected(), InputChanged{Text: "first"})
			s, _ = Reduce(s, SendRequested{})
			s, _ = Reduce(s, InputChanged{Text: "second"})
			return s
		}, false},
		{"not connected", func() State {
			s, _ := New(relayURL, true)
			s, _ = Reduce(s, ProbeFinished{Err: errors.New("down")})
			s, _ = Reduce(s, InputChanged{Text: "hello"})
			return s
		}, true},
		{"still checking", func() State {
			s, _ := New(relayURL, true)
			s, _ = Reduce(s, InputChanged{Text: "hello"})
			return s
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.setup()
			after, effects := Reduce(before, SendRequested{})

			if len(effects) != 0 {
				t.Fatalf("expected no effects, got %v", effects)
			}
			if len(after.Conversation) != len(before.Conversation) {
				t.Fatalf("conversation changed: %d -> %d", len(before.Conversation), len(after.Conversation))
			}
			if after.Sending != before.Sending {
				t.Fatalf("in-flight flag changed")
			}
			if tc.notice {
				if after.Notice != NotConnectedNotice(relayURL) {
					t.Fatalf("expected not-connected notice, got %q", after.Notice)
				}
			} else if after.Notice != "" {
				t.Fatalf("unexpected notice %q", after.Notice)
			}
		})
	}
}

func TestReplyAndFailure(t *testing.T) {
	s := connected()
	s, _ = Reduce(s, InputChanged{Text: "hello"})
	sending, effects := Reduce(s, SendRequested{})
	epoch := effects[0].(RelayEffect).Epoch

	ok, _ := Reduce(sending, ReplyReceived{Epoch: epoch, Text: "Hi!"})
	if ok.Sending || len(ok.Conversation) != 2 || ok.Conversation[1].Role != models.RoleAssistant || ok.Conversation[1].Content != "Hi!" {
		t.Fatalf("unexpected state after reply: %+v", ok)
	}

	failed, _ := Reduce(sending, SendFailed{Epoch: epoch, Err: &client.APIError{StatusCode: 529, Message: "overloaded"}})
	if failed.Sending || len(failed.Conversation) != 2 {
		t.Fatalf("unexpected state after failure: %+v", failed)
	}
	if got := failed.Conversation[1].Content; got != "Sorry, I encountered an error: overloaded" {
		t.Fatalf("unexpected failure text %q", got)
	}
	if failed.Conversation[1].Role != models.RoleAssistant {
		t.Fatalf("failure should be recorded as assistant message")
	}

	if len(sending.Conversation) != 1 {
		t.Fatalf("earlier state was mutated: %+v", sending.Conversation)
	}
}

func TestFailureMessage_TransportHint(t *testing.T) {
	err := &client.TransportError{Op: "send", Err: errors.New("connection refused")}
	msg := FailureMessage(err, relayURL)
	if !strings.HasPrefix(msg, "Sorry, I encountered an error: ") {
		t.Fatalf("unexpected prefix: %q", msg)
	}
	if !strings.HasSuffix(msg, "\n\nMake sure your backend server is running on "+relayURL) {
		t.Fatalf("expected reachability hint, got %q", msg)
	}

	plain := FailureMessage(&client.APIError{StatusCode: 400, Message: "fetch failed"}, relayURL)
	if strings.Contains(plain, "Make sure") {
		t.Fatalf("api errors should not get the reachability hint even if the text mentions fetch: %q", plain)
	}
}

func TestNewChat(t *testing.T) {
	s := connected()
	for _, text := range []string{"one", "two", "three"} {
		s, _ = Reduce(s, InputChanged{Text: text})
		var effects []Effect
		s, effects = Reduce(s, SendRequested{})
		s, _ = Reduce(s, ReplyReceived{Epoch: effects[0].(RelayEffect).Epoch, Text: "ok"})
	}
	if len(s.Conversation) != 6 {
		t.Fatalf("expected 6 messages, got %d", len(s.Conversation))
	}

	s, _ = Reduce(s, NewChat{})
	if len(s.Conversation) != 0 {
		t.Fatalf("expected empty conversation, got %d", len(s.Conversation))
	}
	if s.InputLines != 1 {
		t.Fatalf("expected one input row for an empty draft, got %d", s.InputLines)
	}
	if !s.Authenticated || s.Status != StatusConnected {
		t.Fatalf("new chat must not touch auth or status: %+v", s)
	}
}

func TestNewChat_KeepsDraftSizing(t *testing.T) {
	s := connected()
	s, _ = Reduce(s, InputResized{Width: 40})
	s, _ = Reduce(s, InputChanged{Text: "line\nline\nline"})
	s, _ = Reduce(s, NewChat{})

	if s.Input != "line\nline\nline" {
		t.Fatalf("expected draft kept, got %q", s.Input)
	}
	if s.InputLines != 3 {
		t.Fatalf("expected input rows to follow the draft, got %d", s.InputLines)
	}
	if s.InputHeight() != BaseHeight+2*LineHeight {
		t.Fatalf("expected height for three rows, got %d", s.InputHeight())
	}
}

func TestNewChat_DropsReplyToAbandonedConversation(t *testing.T) {
	s := connected()
	s, _ = Reduce(s, InputChanged{Text: "hello"})
	s, effects := Reduce(s, SendRequested{})
	epoch := effects[0].(RelayEffect).Epoch

	s, _ = Reduce(s, NewChat{})
	if !s.Sending {
		t.Fatalf("request is still in flight after new chat")
	}

	s, _ = Reduce(s, ReplyReceived{Epoch: epoch, Text: "late"})
	if s.Sending {
		t.Fatalf("expected in-flight flag cleared")
	}
	if len(s.Conversation) != 0 {
		t.Fatalf("late reply leaked into new chat: %+v", s.Conversation)
	}
}

func TestNotice(t *testing.T) {
	s, _ := New(relayURL, false)
	s, _ = Reduce(s, AccessCodeSubmitted{})
	if s.Notice == "" {
		t.Fatalf("expected notice")
	}
	s, _ = Reduce(s, NoticeDismissed{})
	if s.Notice != "" {
		t.Fatalf("expected notice cleared")
	}

	s, _ = Reduce(connected(), AuthPersisted{Err: errors.New("disk full")})
	if s.Notice == "" || !s.Authenticated {
		t.Fatalf("persist failure should warn but keep the unlock: %+v", s)
	}
}

func TestStatusLabels(t *testing.T) {
	if StatusChecking.Label() != "Checking Connection..." || StatusConnected.Label() != "Backend Connected" || StatusError.Label() != "Backend Disconnected" {
		t.Fatalf("unexpected labels")
	}
	if StatusConnected.String() != "connected" {
		t.Fatalf("unexpected string %q", StatusConnected.String())
	}
}
