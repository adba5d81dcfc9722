package session

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sehatmand-backend/models"
)

var (
	ErrInvalidStoreType = errors.New("session: invalid store type")
	ErrInvalidConfig    = errors.New("session: invalid store configuration")
)

// StoreType selects the session store driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// Store keeps per-session conversation history with time-based expiry.
//
// An empty session id means "no persistence": History returns an empty
// slice and SaveTurn is a no-op. Implementations must be safe for
// concurrent request handlers.
type Store interface {
	// History returns the session's turns, oldest first. Unknown or empty
	// ids yield an empty slice. Never mutates state.
	History(sessionID string) []models.Turn

	// SaveTurn appends the user message and the assistant reply (in that
	// order), creating the session on first use, trimming the oldest
	// entries beyond the history cap, and refreshing the activity time.
	SaveTurn(sessionID, userMsg, assistantMsg string)

	// CleanupExpired removes every session idle longer than the TTL as of
	// now. Called lazily at the start of each chat request; there is no
	// background sweeper.
	CleanupExpired(now time.Time)

	// Clear removes the session unconditionally; no-op if absent.
	Clear(sessionID string)

	// ActiveSessions reports how many sessions are currently held.
	ActiveSessions() int

	Close() error
}

// Options configures the store factory.
type Options struct {
	TTL         time.Duration // idle time before a session expires
	MaxHistory  int           // turn pairs kept per session
	RedisClient *redis.Client // required for StoreTypeRedis
}

// NewStore builds a Store for the given driver type.
func NewStore(storeType StoreType, opts Options) (Store, error) {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = 10
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(opts.TTL, opts.MaxHistory), nil
	case StoreTypeRedis:
		if opts.RedisClient == nil {
			return nil, ErrInvalidConfig
		}
		return newRedisStore(opts.RedisClient, opts.TTL, opts.MaxHistory), nil
	default:
		return nil, ErrInvalidStoreType
	}
}
