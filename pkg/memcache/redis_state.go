package mem

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisQuizStates shares traversal state across instances. Entries expire with
// the same TTL the in-process store uses; a malformed stored blob restores as
// "not found" so the session simply starts over.
type RedisQuizStates struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisQuizStates(client *redis.Client, ttl time.Duration) *RedisQuizStates {
	return &RedisQuizStates{client: client, ttl: ttl}
}

func (s *RedisQuizStates) key(sessionID string) string {
	return "quiz:state:" + sessionID
}

func (s *RedisQuizStates) Restore(ctx context.Context, sessionID string) (TraversalState, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return NewTraversalState(), false, nil
	}
	if err != nil {
		return NewTraversalState(), false, err
	}

	var state TraversalState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return NewTraversalState(), false, nil
	}
	if state.Answers == nil {
		state.Answers = make(map[string]interface{})
	}
	return state, true, nil
}

func (s *RedisQuizStates) Save(ctx context.Context, sessionID string, state TraversalState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err()
}

func (s *RedisQuizStates) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
