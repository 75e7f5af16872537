package simulation

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iamvenkatgiri/AccessAI/internal/clock"
	"github.com/iamvenkatgiri/AccessAI/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	d1 = 500 * time.Millisecond
	d2 = 1000 * time.Millisecond
)

func newTestController(t *testing.T) (*Controller, *clock.Fake) {
	t.Helper()
	fc := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c := New(WithClock(fc), WithDelays(Delays{Transition: d1, Settle: d2}))
	t.Cleanup(c.Close)
	return c, fc
}

// observed strips the generation counter, which is not part of the visible output.
func observed(s domain.SimulationState) domain.SimulationState {
	s.Generation = 0
	return s
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(t)

	s := c.State()
	assert.Equal(t, domain.ModeNormal, s.Mode)
	assert.Equal(t, domain.TransitionIdle, s.Transition)
	assert.True(t, s.Filter.IsEmpty())
	assert.Empty(t, s.Advisory)
	assert.False(t, s.Pending)
}

func TestSelectMode_EventuallyMatchesLookupTable(t *testing.T) {
	for _, mode := range domain.Modes() {
		t.Run(string(mode), func(t *testing.T) {
			c, fc := newTestController(t)

			c.SelectMode(mode)
			fc.Advance(d1 + d2)

			s := c.State()
			assert.Equal(t, mode, s.Mode)
			assert.Equal(t, mode.Filter().String(), s.Filter.String())
			assert.Equal(t, mode.Advisory(), s.Advisory)
			assert.False(t, s.Pending)
			assert.Equal(t, domain.TransitionIdle, s.Transition)
			assert.Equal(t, 0, fc.Pending(), "no timer should remain after settling")
		})
	}
}

func TestSelectMode_HidesAdvisoryImmediately(t *testing.T) {
	for _, mode := range domain.Modes() {
		t.Run(string(mode), func(t *testing.T) {
			c, fc := newTestController(t)

			c.SelectMode(domain.ModeTritanopia)
			fc.Advance(d1 + d2)
			require.NotEmpty(t, c.State().Advisory)

			c.SelectMode(mode)
			s := c.State()
			assert.Empty(t, s.Advisory)
			assert.False(t, s.AdvisoryVisible())
			assert.False(t, s.Pending)
			assert.Equal(t, domain.TransitionTransitioning, s.Transition)
		})
	}
}

func TestSelectMode_FilterKeptUntilTransitionDelay(t *testing.T) {
	c, fc := newTestController(t)

	c.SelectMode(domain.ModeAchromatopsia)
	fc.Advance(d1 + d2)

	c.SelectMode(domain.ModeHighContrast)
	fc.Advance(d1 - time.Millisecond)

	s := c.State()
	assert.Equal(t, "grayscale(1)", s.Filter.String(), "filter must not change before D1")
	assert.Equal(t, domain.TransitionTransitioning, s.Transition)

	fc.Advance(time.Millisecond)
	assert.Equal(t, "contrast(2) brightness(0.8)", c.State().Filter.String())
}

func TestSelectMode_AchromatopsiaScenario(t *testing.T) {
	c, fc := newTestController(t)

	c.SelectMode(domain.ModeAchromatopsia)
	fc.Advance(d1)

	s := c.State()
	assert.Equal(t, "grayscale(1)", s.Filter.String())
	assert.True(t, s.Pending)
	assert.Equal(t, domain.AdvisoryText("This looks good! Use textures and patterns for differentiation."), s.Advisory)
	assert.Equal(t, domain.TransitionSettling, s.Transition)

	fc.Advance(d2)

	s = c.State()
	assert.False(t, s.Pending)
	assert.Equal(t, domain.AdvisoryText("This looks good! Use textures and patterns for differentiation."), s.Advisory)
	assert.Equal(t, domain.TransitionIdle, s.Transition)
}

func TestSelectMode_NormalSkipsSettling(t *testing.T) {
	c, fc := newTestController(t)

	c.SelectMode(domain.ModeLowVision)
	fc.Advance(d1 + d2)
	require.Equal(t, "blur(4px) contrast(1.5)", c.State().Filter.String())

	states, cancel := c.Subscribe()
	defer cancel()
	<-states

	c.SelectMode(domain.ModeNormal)
	assert.Equal(t, domain.TransitionTransitioning, (<-states).Transition)

	fc.Advance(d1)
	s := <-states
	assert.Equal(t, domain.TransitionIdle, s.Transition, "Normal must go straight to Idle")
	assert.True(t, s.Filter.IsEmpty())
	assert.Empty(t, s.Advisory)
	assert.False(t, s.Pending)
	assert.Equal(t, 0, fc.Pending(), "Normal schedules no settle timer")
}

func TestSelectMode_SupersedesDuringTransition(t *testing.T) {
	c, fc := newTestController(t)

	c.SelectMode(domain.ModeLowVision)
	fc.Advance(d1 / 2)
	c.SelectMode(domain.ModeHighContrast)

	fc.Advance(d1 + d2)

	s := c.State()
	assert.Equal(t, domain.ModeHighContrast, s.Mode)
	assert.Equal(t, "contrast(2) brightness(0.8)", s.Filter.String())
	assert.Equal(t, domain.ModeHighContrast.Advisory(), s.Advisory)
	assert.Equal(t, domain.TransitionIdle, s.Transition)
}

func TestSelectMode_LowVisionNeverApplies(t *testing.T) {
	c, fc := newTestController(t)

	states, cancel := c.Subscribe()
	defer cancel()

	var mu sync.Mutex
	var seen []domain.SimulationState
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range states {
			mu.Lock()
			seen = append(seen, s)
			mu.Unlock()
		}
	}()

	c.SelectMode(domain.ModeLowVision)
	c.SelectMode(domain.ModeHighContrast)
	for i := 0; i < 30; i++ {
		fc.Advance(100 * time.Millisecond)
	}

	require.Equal(t, domain.TransitionIdle, c.State().Transition)
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	for _, s := range seen {
		assert.NotEqual(t, "blur(4px) contrast(1.5)", s.Filter.String(), "superseded filter was applied")
		assert.NotEqual(t, domain.ModeLowVision.Advisory(), s.Advisory, "superseded advisory was shown")
	}
}

func TestSelectMode_SupersedesDuringSettle(t *testing.T) {
	c, fc := newTestController(t)

	c.SelectMode(domain.ModeDeuteranopia)
	fc.Advance(d1 + 100*time.Millisecond)
	require.Equal(t, domain.TransitionSettling, c.State().Transition)

	c.SelectMode(domain.ModeProtanopia)
	s := c.State()
	assert.Equal(t, domain.TransitionTransitioning, s.Transition)
	assert.Empty(t, s.Advisory)

	fc.Advance(d1)
	s = c.State()
	assert.Equal(t, domain.TransitionSettling, s.Transition)
	assert.True(t, s.Pending)
	assert.Equal(t, domain.ModeProtanopia.Filter().String(), s.Filter.String())

	// The old settle deadline passes; it must not end the new sequence early.
	fc.Advance(d2 / 2)
	s = c.State()
	assert.Equal(t, domain.TransitionSettling, s.Transition)
	assert.True(t, s.Pending)

	fc.Advance(d2 / 2)
	assert.Equal(t, domain.TransitionIdle, c.State().Transition)
	assert.Equal(t, domain.ModeProtanopia.Advisory(), c.State().Advisory)
}

func TestSelectMode_StaleCallbackIsDropped(t *testing.T) {
	// A callback that already fired on the clock side but has not yet
	// taken the lock must still be ignored after a newer selection.
	c, _ := newTestController(t)

	c.SelectMode(domain.ModeLowVision)
	staleGen := c.State().Generation
	c.SelectMode(domain.ModeHighContrast)

	c.applyFilter(staleGen, domain.ModeLowVision.Profile())
	c.settle(staleGen)

	s := c.State()
	assert.Equal(t, domain.TransitionTransitioning, s.Transition)
	assert.True(t, s.Filter.IsEmpty())
	assert.Empty(t, s.Advisory)
}

func TestSelectMode_Idempotent(t *testing.T) {
	once, fc1 := newTestController(t)
	once.SelectMode(domain.ModeTritanopia)
	fc1.Advance(d1 + d2)

	twice, fc2 := newTestController(t)
	twice.SelectMode(domain.ModeTritanopia)
	fc2.Advance(d1 + d2)
	twice.SelectMode(domain.ModeTritanopia)
	fc2.Advance(d1 + d2)

	if diff := cmp.Diff(observed(once.State()), observed(twice.State())); diff != "" {
		t.Fatalf("state mismatch (-once +twice):\n%s", diff)
	}
}

func TestSelectMode_GenerationIncreases(t *testing.T) {
	c, _ := newTestController(t)
	var last uint64
	for _, m := range domain.Modes() {
		c.SelectMode(m)
		g := c.State().Generation
		assert.Greater(t, g, last)
		last = g
	}
}

func TestSelectMode_OrderedPhases(t *testing.T) {
	c, fc := newTestController(t)
	states, cancel := c.Subscribe()
	defer cancel()
	<-states

	c.SelectMode(domain.ModeProtanopia)
	s := <-states
	assert.Equal(t, domain.TransitionTransitioning, s.Transition)
	assert.Empty(t, s.Advisory)

	fc.Advance(d1)
	s = <-states
	assert.Equal(t, domain.TransitionSettling, s.Transition)
	assert.True(t, s.Pending)
	assert.NotEmpty(t, s.Advisory)

	fc.Advance(d2)
	s = <-states
	assert.Equal(t, domain.TransitionIdle, s.Transition)
	assert.False(t, s.Pending)
	assert.NotEmpty(t, s.Advisory)
}

func TestSelectMode_InvalidModePanics(t *testing.T) {
	c, _ := newTestController(t)
	assert.Panics(t, func() { c.SelectMode(domain.ImpairmentMode("x-ray")) })
	assert.Equal(t, domain.TransitionIdle, c.State().Transition, "panicking selection must not touch state")
}

func TestSubscribe_DeliversCurrentState(t *testing.T) {
	c, fc := newTestController(t)
	c.SelectMode(domain.ModeAchromatopsia)
	fc.Advance(d1)

	states, cancel := c.Subscribe()
	defer cancel()

	s := <-states
	assert.Equal(t, domain.TransitionSettling, s.Transition)
}

func TestSubscribe_Coalesces(t *testing.T) {
	c, fc := newTestController(t)
	states, cancel := c.Subscribe()
	defer cancel()

	c.SelectMode(domain.ModeLowVision)
	fc.Advance(d1 + d2)

	s := <-states
	assert.Equal(t, domain.TransitionIdle, s.Transition, "reader should only see the latest state")
	select {
	case extra := <-states:
		t.Fatalf("unexpected extra state: %+v", extra)
	default:
	}
}

func TestClose_StopsTimersAndSubscriptions(t *testing.T) {
	c, fc := newTestController(t)
	states, cancel := c.Subscribe()
	defer cancel()

	c.SelectMode(domain.ModeLowVision)
	c.Close()

	assert.Equal(t, 0, fc.Pending())
	for range states {
	}

	c.SelectMode(domain.ModeHighContrast)
	assert.Equal(t, domain.ModeLowVision, c.State().Mode, "closed controller ignores selections")

	_, cancel2 := c.Subscribe()
	cancel2()
}

func TestController_RealClock(t *testing.T) {
	c := New(WithDelays(Delays{Transition: 5 * time.Millisecond, Settle: 5 * time.Millisecond}))
	defer c.Close()

	states, cancel := c.Subscribe()
	defer cancel()

	c.SelectMode(domain.ModeLowVision)
	c.SelectMode(domain.ModeHighContrast)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			assert.NotEqual(t, "blur(4px) contrast(1.5)", s.Filter.String())
			if s.Transition == domain.TransitionIdle && s.Mode == domain.ModeHighContrast {
				assert.Equal(t, "contrast(2) brightness(0.8)", s.Filter.String())
				return
			}
		case <-deadline:
			t.Fatalf("controller did not settle; last state %+v", c.State())
		}
	}
}
