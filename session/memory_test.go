package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sehatmand-backend/models"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewStore(StoreTypeMemory, Options{TTL: 30 * time.Minute, MaxHistory: 10})
	require.NoError(t, err)
	return store
}

func TestSaveTurnRoundTrip(t *testing.T) {
	store := newTestStore(t)

	store.SaveTurn("s1", "hello", "hi there")

	history := store.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, models.Turn{Role: models.RoleUser, Content: "hello"}, history[0])
	assert.Equal(t, models.Turn{Role: models.RoleAssistant, Content: "hi there"}, history[1])
}

func TestHistoryTruncation(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 11; i++ {
		store.SaveTurn("s1", fmt.Sprintf("user %d", i), fmt.Sprintf("bot %d", i))
	}

	history := store.History("s1")
	require.Len(t, history, 20)
	// Oldest pair dropped, most recent 10 pairs kept in order.
	assert.Equal(t, "user 1", history[0].Content)
	assert.Equal(t, "bot 10", history[19].Content)
}

func TestAnonymousSessionNeverPersists(t *testing.T) {
	store := newTestStore(t)

	store.SaveTurn("", "hello", "hi")

	assert.Empty(t, store.History(""))
	assert.Equal(t, 0, store.ActiveSessions())
}

func TestUnknownSessionHistoryEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.Empty(t, store.History("nope"))
}

func TestCleanupExpired(t *testing.T) {
	store, err := NewStore(StoreTypeMemory, Options{TTL: time.Second, MaxHistory: 10})
	require.NoError(t, err)

	store.SaveTurn("idle", "hello", "hi")
	require.Equal(t, 1, store.ActiveSessions())

	store.CleanupExpired(time.Now().Add(2 * time.Second))

	assert.Empty(t, store.History("idle"))
	assert.Equal(t, 0, store.ActiveSessions())
}

func TestCleanupKeepsActiveSessions(t *testing.T) {
	store := newTestStore(t)

	store.SaveTurn("fresh", "hello", "hi")
	store.CleanupExpired(time.Now())

	assert.Len(t, store.History("fresh"), 2)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	store.SaveTurn("s1", "hello", "hi")
	store.Clear("s1")
	assert.Empty(t, store.History("s1"))

	// Clearing an unknown session is a no-op.
	store.Clear("never-existed")
}

func TestSaveAfterSweepRecreates(t *testing.T) {
	store, err := NewStore(StoreTypeMemory, Options{TTL: time.Second, MaxHistory: 10})
	require.NoError(t, err)

	store.SaveTurn("s1", "first", "reply")
	store.CleanupExpired(time.Now().Add(time.Minute))
	store.SaveTurn("s1", "second", "reply")

	history := store.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Content)
}

func TestConcurrentAccess(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n%4)
			for j := 0; j < 50; j++ {
				store.SaveTurn(id, "ping", "pong")
				store.History(id)
				store.CleanupExpired(time.Now())
			}
		}(i)
	}
	wg.Wait()

	// Every surviving history must hold complete pairs within the cap.
	for n := 0; n < 4; n++ {
		h := store.History(fmt.Sprintf("s%d", n))
		assert.LessOrEqual(t, len(h), 20)
		assert.Zero(t, len(h)%2)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	_, err := NewStore("cassandra", Options{})
	assert.ErrorIs(t, err, ErrInvalidStoreType)
}

func TestNewStoreRedisRequiresClient(t *testing.T) {
	_, err := NewStore(StoreTypeRedis, Options{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
