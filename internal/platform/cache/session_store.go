package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "checkout:session:"

// SessionStore persists checkout sessions in Redis with a TTL.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, session interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("SessionStore.Save marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("SessionStore.Save: %w", err)
	}
	return nil
}

// Find returns the raw stored session, or redis.Nil if it expired or never
// existed.
func (s *SessionStore) Find(ctx context.Context, sessionID string) ([]byte, error) {
	payload, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, fmt.Errorf("SessionStore.Find: %w", err)
	}
	return payload, nil
}
