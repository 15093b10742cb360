package discovery

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dennis-tra/mdnssearch/pkg/metrics"
	"github.com/dennis-tra/mdnssearch/pkg/nsd"
)

// RetryDelay is the fixed pause between two resolve attempts of the
// same record.
const RetryDelay = time.Second

// Kind tells which browse event started a resolve cycle.
type Kind string

const (
	KindFound Kind = "found"
	KindLost  Kind = "lost"
)

// Retrier resolves records through the platform and retries failed
// attempts after a fixed delay for as long as it isn't stopped. There is
// no upper bound on the number of attempts. At most one cycle runs per
// service identity: a new cycle supersedes the running one, so the
// latest browse event for a service decides what happens to it.
type Retrier struct {
	ctx    context.Context
	cancel context.CancelFunc

	platform nsd.Platform
	clk      clock.Clock
	delay    time.Duration

	lk      sync.Mutex
	stopped bool
	cycles  map[nsd.Identity]*cycle
}

func NewRetrier(ctx context.Context, platform nsd.Platform, clk clock.Clock, delay time.Duration) *Retrier {
	ctx, cancel := context.WithCancel(ctx)

	if clk == nil {
		clk = clock.New()
	}

	if delay <= 0 {
		delay = RetryDelay
	}

	return &Retrier{
		ctx:      ctx,
		cancel:   cancel,
		platform: platform,
		clk:      clk,
		delay:    delay,
		cycles:   map[nsd.Identity]*cycle{},
	}
}

// cycle tracks the resolution of a single browse event.
type cycle struct {
	id     string
	kind   Kind
	record nsd.ServiceRecord
	action func(nsd.ServiceRecord)

	ctx    context.Context
	cancel context.CancelFunc

	// guarded by the retrier lock
	timer *clock.Timer

	attempts int
}

func (c *cycle) logEntry() *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"cycle":    c.id,
		"kind":     c.kind,
		"id":       c.record.Identity().String(),
		"attempts": c.attempts,
	})
}

// Resolve starts a new resolve cycle for the given record and cancels
// the cycle that is still running for the same identity. Once an
// attempt succeeds, action is called with the resolved record. Action is
// never called after Stop returned or after the cycle was superseded,
// unless the call was already under way.
func (r *Retrier) Resolve(rec nsd.ServiceRecord, kind Kind, action func(nsd.ServiceRecord)) {
	ctx, cancel := context.WithCancel(r.ctx)
	c := &cycle{
		id:     uuid.NewString()[:8],
		kind:   kind,
		record: rec.Clone(),
		action: action,
		ctx:    ctx,
		cancel: cancel,
	}

	r.lk.Lock()
	if r.stopped || r.ctx.Err() != nil {
		r.lk.Unlock()
		cancel()
		return
	}

	if prev, found := r.cycles[c.record.Identity()]; found {
		prev.logEntry().WithField("by", c.id).Debugln("Superseding resolve cycle")
		prev.stop()
	}
	r.cycles[c.record.Identity()] = c
	r.lk.Unlock()

	c.logEntry().Debugln("Starting resolve cycle")
	r.attempt(c)
}

// stop cancels the pending retry and the running attempt of the cycle.
// The retrier lock must be held.
func (c *cycle) stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
}

// Pending returns the number of retries that wait for their timer.
func (r *Retrier) Pending() int {
	r.lk.Lock()
	defer r.lk.Unlock()

	pending := 0
	for _, c := range r.cycles {
		if c.timer != nil {
			pending += 1
		}
	}
	return pending
}

// Stop cancels all pending retries and the context of running attempts.
func (r *Retrier) Stop() {
	r.lk.Lock()
	if r.stopped {
		r.lk.Unlock()
		return
	}
	r.stopped = true

	cancelled := len(r.cycles)
	for _, c := range r.cycles {
		c.stop()
	}
	r.cycles = map[nsd.Identity]*cycle{}
	r.lk.Unlock()

	r.cancel()

	log.WithField("cancelled", cancelled).Debugln("Stopped retrier")
}

func (r *Retrier) attempt(c *cycle) {
	if c.ctx.Err() != nil {
		return
	}

	c.attempts += 1
	c.logEntry().Traceln("Resolving")

	r.platform.Resolve(c.ctx, c.record, func(evt nsd.ResolveEvent) {
		r.handleResult(c, evt)
	})
}

// current reports whether c is the cycle in charge of its identity.
// The retrier lock must be held.
func (r *Retrier) current(c *cycle) bool {
	return !r.stopped && c.ctx.Err() == nil && r.cycles[c.record.Identity()] == c
}

func (r *Retrier) handleResult(c *cycle, evt nsd.ResolveEvent) {
	switch evt := evt.(type) {
	case nsd.Resolved:
		metrics.ResolveAttempts.WithLabelValues(c.record.Type, "resolved").Inc()

		// The action runs under the lock so that a superseding cycle
		// cannot apply its result before this one.
		r.lk.Lock()
		defer r.lk.Unlock()

		if !r.current(c) {
			c.logEntry().Debugln("Dropping resolve result of cancelled cycle")
			return
		}
		delete(r.cycles, c.record.Identity())
		c.cancel()

		c.logEntry().WithField("endpoint", evt.Record.Endpoint()).Debugln("Resolved service")
		c.action(evt.Record)
	case nsd.ResolveFailed:
		metrics.ResolveAttempts.WithLabelValues(c.record.Type, "failed").Inc()
		c.logEntry().WithError(evt.Err).Debugln("Resolve failed, retrying")
		r.schedule(c)
	default:
		c.logEntry().Warnf("unexpected resolve event %T\n", evt)
	}
}

func (r *Retrier) schedule(c *cycle) {
	r.lk.Lock()
	defer r.lk.Unlock()

	if !r.current(c) {
		return
	}

	// The callback acquires the lock before it reads t. By then
	// the assignment below has happened.
	var t *clock.Timer
	t = r.clk.AfterFunc(r.delay, func() {
		r.lk.Lock()
		due := c.timer == t && r.current(c)
		if due {
			c.timer = nil
		}
		r.lk.Unlock()

		if !due {
			return
		}

		r.attempt(c)
	})
	c.timer = t
}
