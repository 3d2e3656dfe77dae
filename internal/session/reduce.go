package session

import (
	"strings"

	"ponder/internal/client"
	"ponder/internal/models"
)

// Reduce applies ev to s. It never performs I/O; anything that needs the network or
// storage is returned as an Effect.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {

	case AccessCodeChanged:
		if s.Authenticated {
			return s, nil
		}
		s.AccessCode = ev.Code
		return s, nil

	case AccessCodeSubmitted:
		if s.Authenticated {
			return s, nil
		}
		if s.AccessCode != AccessCode {
			s.AccessCode = ""
			s.Notice = InvalidCodeNotice
			return s, nil
		}
		s.Authenticated = true
		s.AccessCode = ""
		s.Status = StatusChecking
		return s, []Effect{PersistAuthEffect{}, ProbeEffect{}}

	case AuthPersisted:
		// The unlock still holds for this run; it just won't be remembered.
		if ev.Err != nil {
			s.Notice = "Could not remember this device: " + ev.Err.Error()
		}
		return s, nil

	case ProbeFinished:
		if !s.Authenticated {
			return s, nil
		}
		if ev.Err != nil {
			s.Status = StatusError
		} else {
			s.Status = StatusConnected
		}
		return s, nil

	case InputChanged:
		s.Input = ev.Text
		s.InputLines = InputLines(s.Input, s.InputWidth)
		return s, nil

	case InputResized:
		s.InputWidth = ev.Width
		s.InputLines = InputLines(s.Input, s.InputWidth)
		return s, nil

	case SendRequested:
		return send(s)

	case ReplyReceived:
		if !s.Sending {
			return s, nil
		}
		s.Sending = false
		if ev.Epoch == s.epoch {
			s.Conversation = appendMessage(s.Conversation, models.ChatMessage{Role: models.RoleAssistant, Content: ev.Text})
		}
		return s, nil

	case SendFailed:
		if !s.Sending {
			return s, nil
		}
		s.Sending = false
		if ev.Epoch == s.epoch {
			s.Conversation = appendMessage(s.Conversation, models.ChatMessage{
				Role:    models.RoleAssistant,
				Content: FailureMessage(ev.Err, s.RelayURL),
			})
		}
		return s, nil

	case NewChat:
		s.Conversation = nil
		s.epoch++
		s.InputLines = InputLines(s.Input, s.InputWidth)
		return s, nil

	case NoticeDismissed:
		s.Notice = ""
		return s, nil
	}

	return s, nil
}

func send(s State) (State, []Effect) {
	if !s.Authenticated || !hasText(s.Input) || s.Sending {
		return s, nil
	}
	if s.Status != StatusConnected {
		s.Notice = NotConnectedNotice(s.RelayURL)
		return s, nil
	}

	s.Conversation = appendMessage(s.Conversation, models.ChatMessage{
		Role:    models.RoleUser,
		Content: strings.TrimSpace(s.Input),
	})
	s.Input = ""
	s.InputLines = 1
	s.Sending = true

	return s, []Effect{RelayEffect{Epoch: s.epoch, Conversation: s.Conversation}}
}

// NotConnectedNotice is the alert for a send attempted while the relay is unreachable.
func NotConnectedNotice(relayURL string) string {
	return "Backend server is not connected. Please make sure it's running on " + relayURL
}

// FailureMessage is the assistant-role text recorded when a send fails.
func FailureMessage(err error, relayURL string) string {
	msg := "Sorry, I encountered an error: " + err.Error()
	if client.IsTransport(err) {
		msg += "\n\nMake sure your backend server is running on " + relayURL
	}
	return msg
}

func appendMessage(conv []models.ChatMessage, m models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(conv), len(conv)+1)
	copy(out, conv)
	return append(out, m)
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
