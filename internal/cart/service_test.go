package cart

import (
	"context"
	"testing"
	"time"

	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func testGame(id string, price int) models.Game {
	return models.Game{ID: id, Title: "Game " + id, Platform: "Steam", Price: price}
}

func newTestService() *Service {
	return NewService(database.NewMemoryKV(), time.Hour)
}

func TestService_AddMergesLines(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	// Repeated adds of the same game collapse into a single line whose
	// quantity equals the call count.
	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, "s1", testGame("a", 100))
		assert.NoError(t, err)
	}
	c, err := svc.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)

	t.Run("new lines append, existing update in place", func(t *testing.T) {
		svc.Add(ctx, "s1", testGame("b", 50))
		svc.Add(ctx, "s1", testGame("a", 100))

		c, _ := svc.Get(ctx, "s1")
		assert.Equal(t, []string{"a", "b"}, []string{c.Lines[0].GameID, c.Lines[1].GameID})
		assert.Equal(t, 4, c.Lines[0].Quantity)
		assert.Equal(t, 1, c.Lines[1].Quantity)
	})
}

func TestService_RemoveDropsWholeLine(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s1", testGame("b", 50))

	c, err := svc.Remove(ctx, "s1", "a")
	assert.NoError(t, err)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, "b", c.Lines[0].GameID)

	t.Run("removing an absent line leaves the cart intact", func(t *testing.T) {
		c, err := svc.Remove(ctx, "s1", "zzz")
		assert.NoError(t, err)
		assert.Len(t, c.Lines, 1)
	})
}

func TestService_QuantityAdjustment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Add(ctx, "s1", testGame("a", 100))

	t.Run("increment", func(t *testing.T) {
		c, err := svc.Increment(ctx, "s1", "a")
		assert.NoError(t, err)
		assert.Equal(t, 2, c.Lines[0].Quantity)
	})

	t.Run("decrement floors at one", func(t *testing.T) {
		c, _ := svc.Decrement(ctx, "s1", "a")
		assert.Equal(t, 1, c.Lines[0].Quantity)

		// Already at 1: a guarded no-op, never zero.
		c, _ = svc.Decrement(ctx, "s1", "a")
		assert.Equal(t, 1, c.Lines[0].Quantity)
		assert.Len(t, c.Lines, 1)
	})
}

func TestService_Totals(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	assertTotals := func(items, price int) {
		t.Helper()
		c, err := svc.Get(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, items, c.TotalItems())
		assert.Equal(t, price, c.TotalPrice())
	}

	assertTotals(0, 0)

	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s1", testGame("b", 250))
	assertTotals(3, 450)

	svc.Increment(ctx, "s1", "b")
	assertTotals(4, 700)

	svc.Decrement(ctx, "s1", "a")
	assertTotals(3, 600)

	svc.Remove(ctx, "s1", "b")
	assertTotals(1, 100)

	svc.Clear(ctx, "s1")
	assertTotals(0, 0)
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV()
	svc := NewService(kv, time.Hour)

	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s1", testGame("b", 50))
	svc.Add(ctx, "s1", testGame("a", 100))
	before, _ := svc.Get(ctx, "s1")

	// A new service over the same storage models a session reload.
	reloaded := NewService(kv, time.Hour)
	after, err := reloaded.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestService_CorruptCartSelfHeals(t *testing.T) {
	ctx := context.Background()
	kv := database.NewMemoryKV()
	svc := NewService(kv, time.Hour)

	assert.NoError(t, kv.Set(ctx, "cart:s1", "{not json", 0))

	c, err := svc.Get(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, c.Lines)

	// The corrupt entry is gone, not just ignored.
	_, ok, err := kv.Get(ctx, "cart:s1")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	svc.Add(ctx, "s1", testGame("a", 100))
	svc.Add(ctx, "s2", testGame("b", 50))

	c1, _ := svc.Get(ctx, "s1")
	c2, _ := svc.Get(ctx, "s2")
	assert.Equal(t, "a", c1.Lines[0].GameID)
	assert.Equal(t, "b", c2.Lines[0].GameID)
}
