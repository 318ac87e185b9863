// Package playback owns the state of a running slideshow: which file is shown, whether the
// autoplay timer is running, the autoplay interval and the fullscreen flag.
//
// Every transition holds the controller's lock for its full duration, so timer ticks and key
// presses never interleave. Transitions always read the live file list and interval; nothing
// captures them at construction time.
package playback

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
)

// Autoplay periods in seconds.
const (
	DefaultInterval = 3.0
	MinInterval     = 0.1
	MaxInterval     = 24 * 60 * 60.0
)

// ErrInvalidInterval is returned by [Controller.SetInterval] for periods outside
// [MinInterval, MaxInterval].
var ErrInvalidInterval = fmt.Errorf("%w: interval must be between %gs and %gs",
	shared.ErrInvalidArgument, MinInterval, MaxInterval)

// Fullscreener is the host surface that can be asked to enter fullscreen presentation.
type Fullscreener interface {
	RequestFullscreen() error
}

// State is a snapshot of the controller.
type State struct {
	SlideID    models.ID
	Title      string
	Index      int
	Len        int
	Playing    bool
	Fullscreen bool
	Interval   float64
}

// Position returns the 1-based index and the file count; an empty slide is 0 of 0.
func (s State) Position() (int, int) {
	if s.Len == 0 {
		return 0, 0
	}
	return s.Index + 1, s.Len
}

// Controller is the slideshow state machine.
type Controller struct {
	mu sync.Mutex

	slide      models.Slide
	index      int
	interval   float64
	fullscreen bool

	clock Clock
	host  Fullscreener
	// stop is the cancel func of the single active autoplay timer; nil when not playing.
	stop func()
	gen  uint64

	closed    bool
	observers map[int]func(State)
	nextObs   int

	logger *log.Logger
}

// Option configures a [Controller].
type Option func(*Controller)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithFullscreener sets the host asked to enter fullscreen.
func WithFullscreener(f Fullscreener) Option {
	return func(ctl *Controller) { ctl.host = f }
}

// WithLogger sets the logger used for host failures.
func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// WithInterval sets the initial autoplay interval. Invalid values keep the default.
func WithInterval(seconds float64) Option {
	return func(ctl *Controller) {
		if validInterval(seconds) {
			ctl.interval = seconds
		}
	}
}

// New creates a stopped, windowed controller with no slide loaded.
func New(opts ...Option) *Controller {
	c := &Controller{
		interval:  DefaultInterval,
		clock:     TickerClock{},
		observers: make(map[int]func(State)),
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive a snapshot after every transition. fn runs outside the
// controller's lock, on whichever goroutine caused the change.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Load replaces the slide, rewinds to the first file and stops autoplay.
// The fullscreen flag belongs to the host surface and is left as is.
func (c *Controller) Load(slide models.Slide) {
	c.transition(func() {
		c.stopTimer()
		files := make([]models.File, len(slide.Files))
		copy(files, slide.Files)
		slide.Files = files
		c.slide = slide
		c.index = 0
	})
}

// Next advances to the following file, wrapping to the first. No-op on an empty slide.
func (c *Controller) Next() {
	c.transition(c.advance)
}

// Prev retreats to the previous file, wrapping to the last. No-op on an empty slide.
func (c *Controller) Prev() {
	c.transition(func() {
		n := len(c.slide.Files)
		if n == 0 {
			return
		}
		c.index = (c.index - 1 + n) % n
	})
}

// TogglePlay starts autoplay when stopped and stops it when running.
func (c *Controller) TogglePlay() {
	c.transition(func() {
		if c.stop != nil {
			c.stopTimer()
			return
		}
		c.startTimer()
	})
}

// SetInterval stops autoplay and, when seconds lies within [MinInterval, MaxInterval], stores it
// as the new period. Autoplay is not resumed; the caller must toggle play again.
func (c *Controller) SetInterval(seconds float64) error {
	var err error
	c.transition(func() {
		c.stopTimer()
		if !ValidInterval(seconds) {
			err = ErrInvalidInterval
			return
		}
		c.interval = seconds
	})
	return err
}

// ToggleFullscreen asks the host for fullscreen when windowed, then flips the flag without
// waiting for the host to confirm.
func (c *Controller) ToggleFullscreen() {
	c.transition(func() {
		if !c.fullscreen && c.host != nil {
			if err := c.host.RequestFullscreen(); err != nil {
				c.logger.Warn("fullscreen request failed", "error", err)
			}
		}
		c.fullscreen = !c.fullscreen
	})
}

// Escape clears the fullscreen flag. The host is not asked to leave fullscreen; a host that
// mirrors the flag, like the TUI's alternate screen, leaves it on its own.
func (c *Controller) Escape() {
	c.transition(func() { c.fullscreen = false })
}

// SyncFullscreen records a fullscreen change the host made on its own.
func (c *Controller) SyncFullscreen(actual bool) {
	c.transition(func() { c.fullscreen = actual })
}

// Close cancels the autoplay timer. Every later transition is a no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimer()
	c.closed = true
	clear(c.observers)
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Slide returns a copy of the loaded slide.
func (c *Controller) Slide() models.Slide {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.slide
	s.Files = make([]models.File, len(c.slide.Files))
	copy(s.Files, c.slide.Files)
	return s
}

// Current returns the file at the current index.
func (c *Controller) Current() (models.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.slide.Files) == 0 {
		return models.File{}, false
	}
	return c.slide.Files[c.index], true
}

// transition applies fn under the lock and then notifies observers. Closed controllers ignore it.
func (c *Controller) transition(fn func()) {
	state, observers, ok := c.apply(fn)
	if !ok {
		return
	}

	for _, o := range observers {
		o(state)
	}
}

// apply runs fn under the lock and collects what to notify. The lock is released even if fn panics.
func (c *Controller) apply(fn func()) (State, []func(State), bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return State{}, nil, false
	}
	fn()
	observers := make([]func(State), 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	return c.snapshot(), observers, true
}

func (c *Controller) advance() {
	n := len(c.slide.Files)
	if n == 0 {
		return
	}
	c.index = (c.index + 1) % n
}

// startTimer must be called with the lock held and no timer active. A period that does not
// convert to a positive duration leaves autoplay stopped.
func (c *Controller) startTimer() {
	if c.stop != nil {
		return
	}
	period, ok := toDuration(c.interval)
	if !ok {
		c.logger.Warn("autoplay interval out of range", "seconds", c.interval)
		return
	}
	c.gen++
	gen := c.gen
	c.stop = c.clock.Every(period, func() { c.tick(gen) })
}

// stopTimer must be called with the lock held.
func (c *Controller) stopTimer() {
	if c.stop == nil {
		return
	}
	c.stop()
	c.stop = nil
	c.gen++
}

// tick is the autoplay callback. Ticks from a cancelled timer carry an old generation and are dropped.
func (c *Controller) tick(gen uint64) {
	c.transition(func() {
		if c.stop == nil || gen != c.gen {
			return
		}
		c.advance()
	})
}

func (c *Controller) snapshot() State {
	return State{
		SlideID:    c.slide.ID,
		Title:      c.slide.Title,
		Index:      c.index,
		Len:        len(c.slide.Files),
		Playing:    c.stop != nil,
		Fullscreen: c.fullscreen,
		Interval:   c.interval,
	}
}

// ValidInterval reports whether seconds is a usable autoplay period.
func ValidInterval(seconds float64) bool {
	if math.IsNaN(seconds) || seconds < MinInterval || seconds > MaxInterval {
		return false
	}
	_, ok := toDuration(seconds)
	return ok
}

func toDuration(seconds float64) (time.Duration, bool) {
	if math.IsNaN(seconds) || seconds <= 0 || seconds > MaxInterval {
		return 0, false
	}
	d := time.Duration(seconds * float64(time.Second))
	return d, d > 0
}
