package session

import "ponder/internal/models"

// Event is something that happened: a user action or the outcome of an Effect.
type Event interface{ isEvent() }

type AccessCodeChanged struct{ Code string }

type AccessCodeSubmitted struct{}

type AuthPersisted struct{ Err error }

type ProbeFinished struct{ Err error }

type InputChanged struct{ Text string }

// InputResized reports the number of columns the input box wraps at.
type InputResized struct{ Width int }

type SendRequested struct{}

type ReplyReceived struct {
	Epoch int
	Text  string
}

type SendFailed struct {
	Epoch int
	Err   error
}

type NewChat struct{}

type NoticeDismissed struct{}

func (AccessCodeChanged) isEvent()   {}
func (AccessCodeSubmitted) isEvent() {}
func (AuthPersisted) isEvent()       {}
func (ProbeFinished) isEvent()       {}
func (InputChanged) isEvent()        {}
func (InputResized) isEvent()        {}
func (SendRequested) isEvent()       {}
func (ReplyReceived) isEvent()       {}
func (SendFailed) isEvent()          {}
func (NewChat) isEvent()             {}
func (NoticeDismissed) isEvent()     {}

// Effect is I/O requested by the reducer. Runtime turns each one into an Event.
type Effect interface{ isEffect() }

// ProbeEffect checks the relay's liveness endpoint.
type ProbeEffect struct{}

// PersistAuthEffect records the successful unlock in durable storage.
type PersistAuthEffect struct{}

// RelayEffect sends the full conversation, in display order.
type RelayEffect struct {
	Epoch        int
	Conversation []models.ChatMessage
}

func (ProbeEffect) isEffect()       {}
func (PersistAuthEffect) isEffect() {}
func (RelayEffect) isEffect()       {}
