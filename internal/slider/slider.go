// Package slider implements the slide rotation engine behind the hero text
// and background carousels.
//
// A Controller owns the rotation state for one carousel: the current index,
// the transition flag and the pending timers. It drives a Surface (the slides)
// and optionally a parallel Indicators surface, and is itself driven by three
// inputs:
//   - the auto-advance timer, every interval
//   - indicator selection via JumpTo
//   - hover changes via Pause/Resume
//
// Transitions are two-phase. Starting a transition marks the outgoing slide
// inactive and exiting and moves the index; after the settle delay every
// exiting marker is cleared and the incoming slide is marked active. No other
// transition can start in between, so a timer tick racing a click never
// produces two active slides.
//
// All entry points, timer callbacks included, are serialised by one mutex.
// A Controller whose surface is empty disables itself and every call is a
// no-op.
package slider

import (
	"sync"
	"time"

	"github.com/localcarpetfitter/sitemailer/pkg/clock"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"go.uber.org/zap"
)

// Surface is the set of slides a Controller rotates.
type Surface interface {
	Len() int
	SetActive(i int, active bool)
	SetExiting(i int, exiting bool)
}

// Indicators is the optional row of controls mirroring the active slide.
type Indicators interface {
	Len() int
	SetActive(i int, active bool)
}

// HoverSource reports pointer enter/leave on the slider container.
type HoverSource interface {
	OnHoverChange(func(hovering bool))
}

// Option configures a Controller.
type Option func(*Controller)

// WithIndicators attaches an indicator surface.
func WithIndicators(ind Indicators) Option {
	return func(c *Controller) { c.indicators = ind }
}

// WithHover pauses auto-advance while the pointer is over the slider.
func WithHover(h HoverSource) Option {
	return func(c *Controller) { c.hover = h }
}

// WithInterval sets the auto-advance period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithSettleDelay sets the delay between the exit and enter phases.
// A delay of zero or less completes transitions immediately.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settleDelay = d }
}

// WithClock replaces the wall clock.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller is the rotation state machine for one carousel.
type Controller struct {
	surface     Surface
	indicators  Indicators
	hover       HoverSource
	clock       clock.Clock
	logger      *zap.Logger
	interval    time.Duration
	settleDelay time.Duration

	mu            sync.Mutex
	disabled      bool
	started       bool
	stopped       bool
	paused        bool
	current       int
	transitioning bool

	autoTimer   clock.Timer
	autoSeq     uint64 // invalidates callbacks of cancelled auto timers
	settleTimer clock.Timer
	settleSeq   uint64
}

// New creates a Controller in the stopped state. Call Start to show the
// first slide and begin auto-advance.
func New(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface:     surface,
		clock:       clock.New(),
		logger:      zap.NewNop(),
		interval:    constants.SlideInterval,
		settleDelay: constants.SlideSettleDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.disabled = surface == nil || surface.Len() == 0
	return c
}

// Start marks slide 0 (and indicator 0) active and arms auto-advance.
// Calling Start more than once has no effect.
func (c *Controller) Start() {
	if !c.start() {
		return
	}
	// registered outside the lock; a source may report the current hover state at once
	if c.hover != nil {
		c.hover.OnHoverChange(func(hovering bool) {
			if hovering {
				c.Pause()
			} else {
				c.Resume()
			}
		})
	}
}

func (c *Controller) start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled {
		c.logger.Debug("slider disabled, no slides")
		return false
	}
	if c.started || c.stopped {
		return false
	}
	c.started = true
	c.current = 0
	c.surface.SetActive(0, true)
	c.setIndicator(0, true)
	c.armAutoLocked()

	c.logger.Debug("slider started",
		zap.Int("slides", c.surface.Len()),
		zap.Duration("interval", c.interval),
	)
	return true
}

// Stop cancels every pending timer. The controller ignores all calls afterwards.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.stopped = true
	c.cancelAutoLocked()
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	c.settleSeq++
}

// Advance moves to the next slide, wrapping around. It reports whether a
// transition was started.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeLocked() {
		return false
	}
	return c.transitionLocked((c.current + 1) % c.surface.Len())
}

// JumpTo moves to slide i and restarts the auto-advance interval so the next
// automatic advance is a full interval away. Selecting the current slide, an
// index out of range, or any slide while a transition is settling is a no-op,
// and a rejected call leaves the pending auto-advance timer as it was.
func (c *Controller) JumpTo(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeLocked() || i < 0 || i >= c.surface.Len() || i == c.current {
		return false
	}
	if !c.transitionLocked(i) {
		return false
	}
	if !c.paused {
		c.armAutoLocked()
	}
	return true
}

// Pause suspends auto-advance without touching the current slide or an
// in-progress transition.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeLocked() || c.paused {
		return
	}
	c.paused = true
	c.cancelAutoLocked()
}

// Resume re-arms auto-advance with a full interval.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.activeLocked() || !c.paused {
		return
	}
	c.paused = false
	c.armAutoLocked()
}

// Current returns the index of the current slide. During a transition this
// is already the incoming slide.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Transitioning reports whether a transition is waiting for its settle delay.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioning
}

// Paused reports whether auto-advance is suspended.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Disabled reports whether the controller found no slides.
func (c *Controller) Disabled() bool {
	return c.disabled
}

func (c *Controller) activeLocked() bool {
	return !c.disabled && c.started && !c.stopped
}

func (c *Controller) transitionLocked(to int) bool {
	if c.transitioning {
		return false
	}
	from := c.current
	c.transitioning = true

	c.surface.SetActive(from, false)
	c.surface.SetExiting(from, true)
	c.setIndicator(from, false)
	c.current = to

	c.logger.Debug("slide transition started", zap.Int("from", from), zap.Int("to", to))

	if c.settleDelay <= 0 {
		c.settleLocked()
		return true
	}

	c.settleSeq++
	seq := c.settleSeq
	c.settleTimer = c.clock.AfterFunc(c.settleDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.settleSeq || c.stopped {
			return
		}
		c.settleTimer = nil
		c.settleLocked()
	})
	return true
}

func (c *Controller) settleLocked() {
	n := c.surface.Len()
	for i := 0; i < n; i++ {
		c.surface.SetExiting(i, false)
	}
	c.surface.SetActive(c.current, true)
	c.setIndicator(c.current, true)
	c.transitioning = false
}

func (c *Controller) setIndicator(i int, active bool) {
	if c.indicators == nil || i >= c.indicators.Len() {
		return
	}
	c.indicators.SetActive(i, active)
}

// armAutoLocked cancels any pending auto-advance and schedules a new one.
func (c *Controller) armAutoLocked() {
	c.cancelAutoLocked()
	if c.interval <= 0 {
		return
	}
	seq := c.autoSeq
	c.autoTimer = c.clock.AfterFunc(c.interval, func() { c.onAutoTick(seq) })
}

func (c *Controller) cancelAutoLocked() {
	if c.autoTimer != nil {
		c.autoTimer.Stop()
		c.autoTimer = nil
	}
	c.autoSeq++
}

func (c *Controller) onAutoTick(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.autoSeq || !c.activeLocked() || c.paused {
		return
	}
	c.armAutoLocked()
	c.transitionLocked((c.current + 1) % c.surface.Len())
}
