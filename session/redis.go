package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"sehatmand-backend/models"
)

const redisKeyPrefix = "session:"

// maxSaveRetries bounds the optimistic-locking retry loop in SaveTurn.
const maxSaveRetries = 8

// redisStore persists each session as a JSON record under a TTL key, so
// expiry is handled by Redis itself and CleanupExpired has nothing to sweep.
// Useful when the backend runs more than one replica.
type redisStore struct {
	client     *redis.Client
	ttl        time.Duration
	maxHistory int
}

func newRedisStore(client *redis.Client, ttl time.Duration, maxHistory int) *redisStore {
	return &redisStore{
		client:     client,
		ttl:        ttl,
		maxHistory: maxHistory,
	}
}

type redisRecord struct {
	History []models.Turn `json:"history"`
}

func (s *redisStore) History(sessionID string) []models.Turn {
	if sessionID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Session] redis get failed: %v", err)
		}
		return nil
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("[Session] corrupt session record for %s: %v", sessionID, err)
		return nil
	}
	return rec.History
}

// SaveTurn appends a user/assistant pair under optimistic locking: the key is
// WATCHed, the record rebuilt from the current value, and the SET runs in a
// transaction that fails if a concurrent writer touched the key first.
func (s *redisStore) SaveTurn(sessionID, userMsg, assistantMsg string) {
	if sessionID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := redisKeyPrefix + sessionID

	txFn := func(tx *redis.Tx) error {
		var rec redisRecord
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		if err == nil {
			if err := json.Unmarshal(data, &rec); err != nil {
				log.Printf("[Session] corrupt session record for %s: %v", sessionID, err)
				rec = redisRecord{}
			}
		}

		rec.History = append(rec.History,
			models.Turn{Role: models.RoleUser, Content: userMsg},
			models.Turn{Role: models.RoleAssistant, Content: assistantMsg},
		)
		if limit := s.maxHistory * 2; len(rec.History) > limit {
			rec.History = rec.History[len(rec.History)-limit:]
		}

		out, err := json.Marshal(rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		err := s.client.Watch(ctx, txFn, key)
		if err == nil {
			return
		}
		if err == redis.TxFailedErr {
			continue
		}
		log.Printf("[Session] redis save failed for %s: %v", sessionID, err)
		return
	}
	log.Printf("[Session] redis save for %s dropped after %d contended attempts", sessionID, maxSaveRetries)
}

// CleanupExpired is a no-op: the SET TTL already evicts idle sessions.
func (s *redisStore) CleanupExpired(time.Time) {}

func (s *redisStore) Clear(sessionID string) {
	if sessionID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		log.Printf("[Session] redis del failed: %v", err)
	}
}

func (s *redisStore) ActiveSessions() int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		log.Printf("[Session] redis scan failed: %v", err)
	}
	return count
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
