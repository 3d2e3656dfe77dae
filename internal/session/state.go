// Package session holds the conversation client's state and the pure reducer that
// moves it between states. I/O happens only in Runtime, driven by the Effects the
// reducer returns.
//
// The access-code gate is a UI gate: the code ships inside the binary and is checked
// locally. It is not an access-control boundary for the relay.
package session

import (
	"ponder/internal/models"
)

const (
	// AccessCode unlocks the chat screen.
	AccessCode = "OpusPonder08-25!"

	// AuthKey names the durable flag recording a past successful unlock.
	AuthKey = "ponder-auth"

	InvalidCodeNotice = "Invalid access code. Please try again."
)

type Status int

const (
	StatusChecking Status = iota
	StatusConnected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	default:
		return "checking"
	}
}

// Label is the text shown next to the status dot.
func (s Status) Label() string {
	switch s {
	case StatusConnected:
		return "Backend Connected"
	case StatusError:
		return "Backend Disconnected"
	default:
		return "Checking Connection..."
	}
}

// State is everything the client shows. Conversation is only ever replaced by a longer
// copy or by an empty one, so a State value never changes under its holder.
type State struct {
	RelayURL string

	Authenticated bool
	AccessCode    string

	Status       Status
	Conversation []models.ChatMessage
	Sending      bool

	Input      string
	InputWidth int
	InputLines int

	// Notice is a blocking alert; the UI shows it until NoticeDismissed.
	Notice string

	// epoch changes on every new chat so a reply to an abandoned conversation is dropped.
	epoch int
}

// New returns the initial state and the effects to run at startup. authenticated is the
// durable flag read once from storage.
func New(relayURL string, authenticated bool) (State, []Effect) {
	s := State{
		RelayURL:      relayURL,
		Authenticated: authenticated,
		Status:        StatusChecking,
		InputLines:    1,
	}
	if authenticated {
		return s, []Effect{ProbeEffect{}}
	}
	return s, nil
}

// CanSend mirrors the send guard so the UI can grey out its send affordance.
func (s State) CanSend() bool {
	return s.Authenticated && !s.Sending && s.Status == StatusConnected && hasText(s.Input)
}

// InputHeight is the pixel height of the input box for the current text.
func (s State) InputHeight() int {
	return BaseHeight + LineHeight*(s.InputLines-1)
}
