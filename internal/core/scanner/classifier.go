package scanner

import (
	"sync"

	ptime "scanwedge/internal/platform/time"
)

// State is the classifier's buffer state
type State int

const (
	// StateIdle means the buffer is empty and no timer is armed
	StateIdle State = iota
	// StateAccumulating means at least one character is buffered and the idle timer is armed
	StateAccumulating
)

func (s State) String() string {
	if s == StateAccumulating {
		return "accumulating"
	}
	return "idle"
}

// Classifier owns one keystroke stream's buffer and idle timer.
// It is safe for concurrent use; results are delivered outside the lock.
type Classifier struct {
	mu       sync.Mutex
	opts     Options
	clock    ptime.Clock
	onResult func(Result)

	buf     Buffer
	timer   ptime.Timer
	gen     uint64
	enabled bool
	closed  bool
}

// Opt customizes a Classifier
type Opt func(*Classifier)

// WithClock swaps the time source (manual clocks in tests and replay)
func WithClock(c ptime.Clock) Opt {
	return func(cl *Classifier) {
		if c != nil {
			cl.clock = c
		}
	}
}

// OnResult registers the completion callback
func OnResult(fn func(Result)) Opt {
	return func(cl *Classifier) { cl.onResult = fn }
}

// Disabled starts the classifier switched off
func Disabled() Opt {
	return func(cl *Classifier) { cl.enabled = false }
}

// New builds a classifier. Zero option fields take their defaults.
func New(o Options, opts ...Opt) (*Classifier, error) {
	o = o.WithDefaults()
	if err := o.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{
		opts:    o,
		clock:   ptime.System(),
		enabled: true,
	}
	for _, fn := range opts {
		fn(c)
	}
	return c, nil
}

// Options returns the effective thresholds
func (c *Classifier) Options() Options { return c.opts }

// OnKeyEvent feeds one key press. Printable keys are buffered and restart the
// idle timer, terminators flush, anything else is ignored.
func (c *Classifier) OnKeyEvent(ev KeyEvent) {
	if c.opts.isTerminator(ev.Key) {
		c.OnTerminator()
		return
	}
	if !Printable(ev.Key) {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.enabled {
		return
	}
	at := ev.At
	if at.IsZero() {
		at = c.clock.Now()
	}
	c.buf.Append(ev.Key, at)
	c.armLocked()
}

// OnIdleTimeout analyzes and clears the buffer as if the debounce window had elapsed.
// It returns false when nothing was buffered.
func (c *Classifier) OnIdleTimeout() (Result, bool) {
	return c.flush(TriggerIdle, 0)
}

// OnTerminator analyzes and clears the buffer immediately, cancelling any pending timer.
// It returns false when nothing was buffered.
func (c *Classifier) OnTerminator() (Result, bool) {
	return c.flush(TriggerTerminator, 0)
}

// Reset drops the buffer and pending timer without emitting anything
func (c *Classifier) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

// SetEnabled switches the classifier on or off. Turning it off discards any partial burst.
func (c *Classifier) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = on
	if !on {
		c.dropLocked()
	}
}

// Enabled reports whether input is being accepted
func (c *Classifier) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && !c.closed
}

// Pending is the number of buffered characters
func (c *Classifier) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

// State reports Idle or Accumulating
func (c *Classifier) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buf.Empty() {
		return StateIdle
	}
	return StateAccumulating
}

// Close cancels the timer and drops the buffer. Later input is ignored.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.dropLocked()
	return nil
}

func (c *Classifier) armLocked() {
	c.stopLocked()
	c.gen++
	g := c.gen
	c.timer = c.clock.AfterFunc(c.opts.DebounceWindow, func() { c.flush(TriggerIdle, g) })
}

func (c *Classifier) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Classifier) dropLocked() {
	c.stopLocked()
	c.gen++
	c.buf.Reset()
}

// flush analyzes the buffer. gen > 0 marks a timer fire, which is dropped if a
// later key press or flush already superseded it.
func (c *Classifier) flush(trigger Trigger, gen uint64) (Result, bool) {
	c.mu.Lock()
	if gen != 0 && gen != c.gen {
		c.mu.Unlock()
		return Result{}, false
	}
	if c.closed || c.buf.Empty() {
		c.stopLocked()
		c.mu.Unlock()
		return Result{}, false
	}
	res := Classify(&c.buf, c.opts, trigger)
	c.dropLocked()
	cb := c.onResult
	c.mu.Unlock()

	if cb != nil {
		cb(res)
	}
	return res, true
}
