// Package circuit implements a minimal circuit breaker used to guard the
// outbound pricing partner call. An open breaker rejects calls until a
// cooldown elapses, then lets a single trial request through per window;
// enough consecutive trial successes close it again.
package circuit

import (
	"sync"
	"time"
)

// State of the breaker.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

// StateChange reports a transition caused by a Record call, so callers can
// log open/close events exactly once.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker counts consecutive failures and successes. Consecutive failures at
// or above the failure threshold open it; consecutive successes at or above
// the success threshold close it again. Opposite outcomes reset the
// respective counters.
type Breaker struct {
	mu               sync.Mutex
	name             string
	failureThreshold int
	successThreshold int
	cooldown         time.Duration

	open      bool
	failures  int
	successes int
	nextProbe time.Time
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the breaker.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets how many consecutive successes close it again.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithCooldown sets how long an open breaker rejects calls before letting a
// trial request through.
func WithCooldown(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.cooldown = d
		}
	}
}

// New constructs a closed breaker. Defaults: 5 failures to open, 1 success
// to close, 30s cooldown between trial requests while open.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 1,
		cooldown:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		return StateOpen
	}
	return StateClosed
}

func (b *Breaker) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Allow reports whether the caller may attempt the guarded call. A closed
// breaker always allows; an open one allows a single trial per cooldown
// window so the breaker can observe recovery and close again.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	now := time.Now()
	if now.Before(b.nextProbe) {
		return false
	}
	b.nextProbe = now.Add(b.cooldown)
	return true
}

// Reset force-closes the breaker and clears both counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.failures = 0
	b.successes = 0
}

// RecordFailure notes a failed call. It returns whether the caller should use
// its fallback, plus any transition triggered by this call.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	if !b.open {
		b.failures++
		if b.failures >= b.failureThreshold {
			b.open = true
			change.Opened = true
		}
	}
	if b.open {
		// A failure while open (a failed trial included) restarts the window.
		b.nextProbe = time.Now().Add(b.cooldown)
	}
	return b.open, change
}

// RecordSuccess notes a successful call. It returns whether the caller should
// resume using the primary path, plus any transition triggered by this call.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.open {
		b.successes++
		if b.successes >= b.successThreshold {
			b.open = false
			b.successes = 0
			change.Closed = true
		}
	}
	return !b.open, change
}
