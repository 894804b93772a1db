package refresh

import (
	"context"
	"sync"
	"time"

	"abinexis-storefront/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Func is one named refresh action, typically a cart or stock re-fetch.
// The context is cancelled when the coordinator stops.
type Func func(ctx context.Context)

// Coordinator runs every subscribed refresh on one shared cadence instead of
// a timer per page. Manual refreshes (pull-on-focus) go through a limiter so
// rapid focus changes cannot hammer the backend.
type Coordinator struct {
	interval time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	subs    map[string]Func
	cancel  context.CancelFunc
	running bool
	done    chan struct{}
}

func NewCoordinator(interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Coordinator{
		interval: interval,
		// Manual refreshes at most once per second, small burst for page
		// landings that refresh several resources at once.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		subs:    make(map[string]Func),
	}
}

// Subscribe registers a named refresh. Re-subscribing a name replaces it.
func (c *Coordinator) Subscribe(name string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[name] = fn
}

func (c *Coordinator) Unsubscribe(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, name)
}

// Start begins the shared cadence. Returns immediately; the loop stops when
// ctx is cancelled or Stop is called.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.done = make(chan struct{})

	go c.loop(ctx)
}

func (c *Coordinator) loop(ctx context.Context) {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

// runAll executes the current subscriptions sequentially. A subscription
// added mid-run is picked up on the next tick.
func (c *Coordinator) runAll(ctx context.Context) {
	c.mu.Lock()
	names := make([]string, 0, len(c.subs))
	fns := make([]Func, 0, len(c.subs))
	for name, fn := range c.subs {
		names = append(names, name)
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for i, fn := range fns {
		// Stale deliveries after Stop are dropped, not applied.
		if ctx.Err() != nil {
			return
		}
		logger.FromCtx(ctx).Debug("refresh", zap.String("subscription", names[i]))
		fn(ctx)
	}
}

// Refresh runs every subscription once, immediately. Used for pull-on-focus.
// Returns false when the limiter rejects the pull.
func (c *Coordinator) Refresh(ctx context.Context) bool {
	if !c.limiter.Allow() {
		return false
	}
	c.runAll(ctx)
	return true
}

// Stop halts the cadence and waits for an in-flight run to finish.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	cancel := c.cancel
	done := c.done
	c.mu.Unlock()

	cancel()
	<-done
}
