package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedService(start time.Time) (*Service, *time.Time) {
	svc := NewService()

	current := start
	svc.now = func() time.Time { return current }

	return svc, &current
}

func TestGetUnknownUserReturnsNewMarker(t *testing.T) {
	svc := NewService()

	ctx := svc.Get("nobody")

	assert.True(t, ctx.IsNew)
	assert.Empty(t, ctx.LastIntent)
}

func TestUpdateThenGet(t *testing.T) {
	svc, _ := newClockedService(time.Now())

	svc.Update("user-1", Update{
		LastIntent:   "greeting",
		LastEntities: map[string]string{"genre": "fiction"},
		LastQuery:    "hello",
	})

	ctx := svc.Get("user-1")

	assert.False(t, ctx.IsNew)
	assert.Equal(t, "greeting", ctx.LastIntent)
	assert.Equal(t, "fiction", ctx.LastEntities["genre"])
	assert.Equal(t, "hello", ctx.LastQuery)
}

func TestExpiredContextIsDroppedLazily(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, clock := newClockedService(start)

	svc.Update("user-1", Update{LastIntent: "greeting"})
	require.Equal(t, 1, svc.Size())

	*clock = start.Add(31 * time.Minute)

	ctx := svc.Get("user-1")

	assert.True(t, ctx.IsNew)
	assert.Equal(t, 0, svc.Size())

	// Subsequent reads behave as if the record never existed.
	assert.True(t, svc.Get("user-1").IsNew)
}

func TestContextJustUnderTTLSurvives(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, clock := newClockedService(start)

	svc.Update("user-1", Update{LastIntent: "greeting"})

	*clock = start.Add(29 * time.Minute)

	assert.False(t, svc.Get("user-1").IsNew)
}

func TestUpdateIsIdempotentInShape(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, clock := newClockedService(start)

	update := Update{
		LastIntent:   "book_search",
		LastEntities: map[string]string{"book_title": "harry potter"},
		LastQuery:    "find harry potter",
	}

	svc.Update("user-1", update)
	first := svc.Get("user-1")

	*clock = start.Add(time.Minute)
	svc.Update("user-1", update)
	second := svc.Get("user-1")

	assert.Equal(t, first.LastIntent, second.LastIntent)
	assert.Equal(t, first.LastEntities, second.LastEntities)
	assert.Equal(t, first.LastQuery, second.LastQuery)
	assert.True(t, second.Timestamp.After(first.Timestamp))
}

func TestClear(t *testing.T) {
	svc := NewService()

	svc.Update("user-1", Update{LastIntent: "greeting"})
	svc.Clear("user-1")

	assert.True(t, svc.Get("user-1").IsNew)
}

func TestCleanupSweepsOnlyExpired(t *testing.T) {
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, clock := newClockedService(start)

	svc.Update("stale", Update{LastIntent: "greeting"})

	*clock = start.Add(20 * time.Minute)
	svc.Update("fresh", Update{LastIntent: "thanks"})

	*clock = start.Add(35 * time.Minute)
	svc.Cleanup()

	assert.Equal(t, 1, svc.Size())
	assert.True(t, svc.Get("stale").IsNew)
	assert.False(t, svc.Get("fresh").IsNew)
}
