package session

import (
	"context"
	"sync"
)

// Store owns a State and feeds events through Reduce. Observers see every state
// after it is committed.
type Store struct {
	mu        sync.Mutex
	state     State
	runner    EffectRunner
	observers map[int]func(State)
	nextID    int
}

func NewStore(initial State, runner EffectRunner) *Store {
	return &Store{
		state:     initial,
		runner:    runner,
		observers: make(map[int]func(State)),
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Apply reduces ev, commits the result and notifies observers. The effects are
// returned for the caller to run; the terminal UI runs them as commands.
func (s *Store) Apply(ev Event) (State, []Effect) {
	s.mu.Lock()
	next, effects := Reduce(s.state, ev)
	s.state = next
	observers := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
	return next, effects
}

// Perform runs a single effect without dispatching its outcome.
func (s *Store) Perform(ctx context.Context, eff Effect) Event {
	return s.runner.Run(ctx, eff)
}

// Dispatch applies ev, then runs the resulting effects and dispatches their outcomes.
// It returns once the chain has settled. The lock is not held while effects run, so
// an effect may dispatch into the store itself.
func (s *Store) Dispatch(ctx context.Context, ev Event) {
	_, effects := s.Apply(ev)
	s.Run(ctx, effects...)
}

// Run performs effects in order, dispatching each outcome.
func (s *Store) Run(ctx context.Context, effects ...Effect) {
	for _, eff := range effects {
		if out := s.Perform(ctx, eff); out != nil {
			s.Dispatch(ctx, out)
		}
	}
}
