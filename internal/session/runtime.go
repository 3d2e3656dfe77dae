package session

import (
	"context"
	"log"

	"ponder/internal/database"
	"ponder/internal/models"
)

// Relay is the part of the relay client the runtime needs.
type Relay interface {
	Health(ctx context.Context) error
	Send(ctx context.Context, req models.GenerationRequest) (string, error)
}

// EffectRunner performs one Effect and reports its outcome.
type EffectRunner interface {
	Run(ctx context.Context, eff Effect) Event
}

// Runtime performs effects against the relay and the preference store.
type Runtime struct {
	relay     Relay
	prefs     database.PrefStore
	model     string
	maxTokens int
}

func NewRuntime(relay Relay, prefs database.PrefStore, model string, maxTokens int) *Runtime {
	return &Runtime{
		relay:     relay,
		prefs:     prefs,
		model:     model,
		maxTokens: maxTokens,
	}
}

// LoadAuthenticated reads the durable unlock flag. A store error counts as locked.
func (r *Runtime) LoadAuthenticated(ctx context.Context) bool {
	ok, err := r.prefs.GetBool(ctx, AuthKey)
	if err != nil {
		log.Printf("reading %s: %v", AuthKey, err)
		return false
	}
	return ok
}

func (r *Runtime) Run(ctx context.Context, eff Effect) Event {
	switch eff := eff.(type) {
	case ProbeEffect:
		return ProbeFinished{Err: r.relay.Health(ctx)}

	case PersistAuthEffect:
		return AuthPersisted{Err: r.prefs.SetBool(ctx, AuthKey, true)}

	case RelayEffect:
		text, err := r.relay.Send(ctx, models.GenerationRequest{
			Messages:  eff.Conversation,
			Model:     r.model,
			MaxTokens: r.maxTokens,
		})
		if err != nil {
			return SendFailed{Epoch: eff.Epoch, Err: err}
		}
		return ReplyReceived{Epoch: eff.Epoch, Text: text}
	}
	return nil
}
