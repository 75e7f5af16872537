// Package simulation drives the vision-impairment filter view: a mode selection
// hides the advisory at once, swaps filter and advisory after a transition delay,
// and clears the pending advisory after a settle delay.
//
// Only one selection is ever in flight. Each selection bumps a generation
// counter and stops the previous timer; a callback whose generation is stale
// is dropped, so a superseded selection can never overwrite a newer one.
package simulation

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iamvenkatgiri/AccessAI/internal/clock"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

// Delays are the two timed phases of a selection.
type Delays struct {
	Transition time.Duration // D1: selection -> filter applied
	Settle     time.Duration // D2: filter applied -> advisory shown
}

// DefaultDelays returns the configured default transition and settle phases.
func DefaultDelays() Delays {
	return Delays{
		Transition: domain.DefaultTransitionDelay,
		Settle:     domain.DefaultSettleDelay,
	}
}

// Controller owns the simulation state. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	clock  clock.Clock
	delays Delays
	log    *slog.Logger

	state   domain.SimulationState
	pending clock.Timer
	closed  bool

	subs map[chan domain.SimulationState]struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock injects the scheduler; tests pass a *clock.Fake.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithDelays overrides both phase durations. Negative values are treated as zero.
func WithDelays(d Delays) Option {
	return func(ctl *Controller) { ctl.delays = d }
}

// WithLogger sets the logger for selection and phase records.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// New returns a Controller in the initial Normal state.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock:  clock.Real(),
		delays: DefaultDelays(),
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		state:  domain.InitialSimulationState(),
		subs:   map[chan domain.SimulationState]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.delays.Transition < 0 {
		c.delays.Transition = 0
	}
	if c.delays.Settle < 0 {
		c.delays.Settle = 0
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() domain.SimulationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

func (c *Controller) Delays() Delays { return c.delays }

// SelectMode starts a new transition towards mode, superseding any in flight.
// A mode outside the closed set is a programming error and panics.
func (c *Controller) SelectMode(mode domain.ImpairmentMode) {
	profile := mode.Profile()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}

	prev := c.state.Mode
	c.state.Generation++
	gen := c.state.Generation

	c.state.Mode = mode
	c.state.Transition = domain.TransitionTransitioning
	c.state.Advisory = ""
	c.state.Pending = false

	c.log.Debug("simulation.select",
		"from", string(prev),
		"to", string(mode),
		"generation", gen,
	)

	c.pending = c.clock.AfterFunc(c.delays.Transition, func() { c.applyFilter(gen, profile) })
	c.publishLocked()
}

// applyFilter is the end of D1.
func (c *Controller) applyFilter(gen uint64, profile domain.ImpairmentProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(gen) {
		c.log.Debug("simulation.stale", "phase", "transition", "generation", gen, "current", c.state.Generation)
		return
	}
	c.pending = nil

	if profile.Mode == domain.ModeNormal {
		c.state.Filter = nil
		c.state.Advisory = ""
		c.state.Pending = false
		c.state.Transition = domain.TransitionIdle
		c.log.Debug("simulation.idle", "mode", string(profile.Mode), "generation", gen)
		c.publishLocked()
		return
	}

	c.state.Filter = profile.Filter
	c.state.Advisory = profile.Advisory
	c.state.Pending = true
	c.state.Transition = domain.TransitionSettling
	c.log.Debug("simulation.settling",
		"mode", string(profile.Mode),
		"filter", profile.Filter.String(),
		"generation", gen,
	)

	c.pending = c.clock.AfterFunc(c.delays.Settle, func() { c.settle(gen) })
	c.publishLocked()
}

// settle is the end of D2.
func (c *Controller) settle(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stale(gen) {
		c.log.Debug("simulation.stale", "phase", "settle", "generation", gen, "current", c.state.Generation)
		return
	}
	c.pending = nil

	c.state.Pending = false
	c.state.Transition = domain.TransitionIdle
	c.log.Debug("simulation.idle", "mode", string(c.state.Mode), "generation", gen)
	c.publishLocked()
}

func (c *Controller) stale(gen uint64) bool {
	return c.closed || gen != c.state.Generation
}

// Subscribe returns a channel that always holds the latest state; intermediate
// states may be coalesced if the reader falls behind. The current state is
// delivered immediately. Call cancel to unsubscribe.
func (c *Controller) Subscribe() (<-chan domain.SimulationState, func()) {
	ch := make(chan domain.SimulationState, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}
	ch <- c.state.Clone()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.subs[ch]; ok {
				delete(c.subs, ch)
				close(ch)
			}
		})
	}
}

func (c *Controller) publishLocked() {
	snap := c.state.Clone()
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close stops any pending timer and closes every subscription.
// Later SelectMode calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}
