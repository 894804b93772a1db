package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoordinator_Ticks(t *testing.T) {
	c := NewCoordinator(10 * time.Millisecond)

	var calls atomic.Int32
	c.Subscribe("cart", func(context.Context) { calls.Add(1) })

	c.Start(context.Background())
	defer c.Stop()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestCoordinator_ManualRefresh(t *testing.T) {
	c := NewCoordinator(time.Hour)

	var calls atomic.Int32
	c.Subscribe("stock", func(context.Context) { calls.Add(1) })

	ok := c.Refresh(context.Background())

	assert.True(t, ok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCoordinator_ManualRefreshRateLimited(t *testing.T) {
	c := NewCoordinator(time.Hour)

	var calls atomic.Int32
	c.Subscribe("stock", func(context.Context) { calls.Add(1) })

	// Burst of 3 allowed, the rest rejected.
	allowed := 0
	for i := 0; i < 10; i++ {
		if c.Refresh(context.Background()) {
			allowed++
		}
	}

	assert.Equal(t, 3, allowed)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCoordinator_StopDropsStaleDeliveries(t *testing.T) {
	c := NewCoordinator(5 * time.Millisecond)

	var calls atomic.Int32
	c.Subscribe("cart", func(ctx context.Context) {
		calls.Add(1)
	})

	c.Start(context.Background())

	assert.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, time.Second, time.Millisecond)

	c.Stop()
	after := calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, after, calls.Load())
}

func TestCoordinator_Unsubscribe(t *testing.T) {
	c := NewCoordinator(time.Hour)

	var cart, wishlist atomic.Int32
	c.Subscribe("cart", func(context.Context) { cart.Add(1) })
	c.Subscribe("wishlist", func(context.Context) { wishlist.Add(1) })
	c.Unsubscribe("wishlist")

	c.Refresh(context.Background())

	assert.Equal(t, int32(1), cart.Load())
	assert.Equal(t, int32(0), wishlist.Load())
}

func TestCoordinator_StartTwice(t *testing.T) {
	c := NewCoordinator(time.Hour)
	c.Start(context.Background())
	// Second start is a no-op, not a second loop.
	c.Start(context.Background())
	c.Stop()
}

func TestCoordinator_StopWithoutStart(t *testing.T) {
	c := NewCoordinator(time.Hour)
	assert.NotPanics(t, func() { c.Stop() })
}
