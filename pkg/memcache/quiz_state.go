package mem

import (
	"context"
	"sync"
	"time"
)

// TraversalState is the resumable position of one quiz session: where the
// user is in the item sequence plus everything answered so far. Answer values
// are strings or numbers depending on the question type.
type TraversalState struct {
	CurrentIndex int                    `json:"current_index"`
	Answers      map[string]interface{} `json:"answers"`
}

func NewTraversalState() TraversalState {
	return TraversalState{Answers: make(map[string]interface{})}
}

// Clone returns an independent copy so callers cannot mutate stored state
// behind the store's back.
func (s TraversalState) Clone() TraversalState {
	out := TraversalState{CurrentIndex: s.CurrentIndex, Answers: make(map[string]interface{}, len(s.Answers))}
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return out
}

// QuizStateStore persists traversal state between requests. Restore reports
// found=false for missing, expired or malformed entries instead of an error --
// a broken saved state must never break starting the quiz.
type QuizStateStore interface {
	Restore(ctx context.Context, sessionID string) (state TraversalState, found bool, err error)
	Save(ctx context.Context, sessionID string, state TraversalState) error
	Clear(ctx context.Context, sessionID string) error
}

type stateEntry struct {
	state     TraversalState
	expiresAt time.Time
}

// QuizStates is the in-process store, good for a single instance.
type QuizStates struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]stateEntry
}

func NewQuizStates(ttl time.Duration) *QuizStates {
	return &QuizStates{
		ttl:  ttl,
		data: make(map[string]stateEntry),
	}
}

func (s *QuizStates) Restore(_ context.Context, sessionID string) (TraversalState, bool, error) {
	s.mu.RLock()
	e, ok := s.data[sessionID]
	s.mu.RUnlock()

	if !ok {
		return NewTraversalState(), false, nil
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, sessionID)
		s.mu.Unlock()
		return NewTraversalState(), false, nil
	}
	return e.state.Clone(), true, nil
}

func (s *QuizStates) Save(_ context.Context, sessionID string, state TraversalState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = stateEntry{
		state:     state.Clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *QuizStates) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}
