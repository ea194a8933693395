package sequencer

import (
	"slices"
	"sync"
	"time"
)

// Clock schedules repeating callbacks.
type Clock interface {
	// Every calls fn once per interval until cancel is called.
	Every(interval time.Duration, fn func()) (cancel func())
	Now() time.Time
}

// RealClock drives callbacks from a time.Ticker goroutine.
type RealClock struct{}

// Every starts a ticker goroutine. Cancel stops it; it is safe to call more than once.
func (RealClock) Every(interval time.Duration, fn func()) func() {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

// Now returns the wall clock time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock advanced by hand, with one-second resolution.
// Callbacks run synchronously inside Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	nextID int
	timers map[int]*manualTimer
}

type manualTimer struct {
	interval time.Duration
	elapsed  time.Duration
	fn       func()
}

// NewManualClock creates a ManualClock starting at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{
		now:    now,
		timers: make(map[int]*manualTimer),
	}
}

// Every registers fn. The first call happens one interval after registration.
func (clock *ManualClock) Every(interval time.Duration, fn func()) func() {
	if interval < time.Second {
		interval = time.Second
	}
	clock.mu.Lock()
	id := clock.nextID
	clock.nextID++
	clock.timers[id] = &manualTimer{interval: interval, fn: fn}
	clock.mu.Unlock()

	return func() {
		clock.mu.Lock()
		delete(clock.timers, id)
		clock.mu.Unlock()
	}
}

// Now returns the manual time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// Active returns the number of registered timers.
func (clock *ManualClock) Active() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.timers)
}

// Advance moves time forward in whole seconds, firing due timers each second.
func (clock *ManualClock) Advance(delta time.Duration) {
	for remaining := delta; remaining >= time.Second; remaining -= time.Second {
		clock.mu.Lock()
		clock.now = clock.now.Add(time.Second)
		due := make([]func(), 0, len(clock.timers))
		for _, id := range clock.sortedIDsLocked() {
			timer := clock.timers[id]
			timer.elapsed += time.Second
			if timer.elapsed >= timer.interval {
				timer.elapsed -= timer.interval
				due = append(due, clock.guardedLocked(id, timer.fn))
			}
		}
		clock.mu.Unlock()

		for _, fn := range due {
			fn()
		}
	}
}

// guardedLocked skips fn if the timer was cancelled by an earlier callback
// in the same second.
func (clock *ManualClock) guardedLocked(id int, fn func()) func() {
	return func() {
		clock.mu.Lock()
		_, ok := clock.timers[id]
		clock.mu.Unlock()
		if ok {
			fn()
		}
	}
}

func (clock *ManualClock) sortedIDsLocked() []int {
	ids := make([]int, 0, len(clock.timers))
	for id := range clock.timers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
