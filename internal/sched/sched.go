// Package sched runs one-shot deferred callbacks. Production code uses Real;
// tests drive a Fake clock by hand.
package sched

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}

// Scheduler schedules f to run once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules with the runtime timer.
type Real struct{}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake is a manually advanced clock. Callbacks run synchronously on the
// goroutine calling Advance, in deadline order.
type Fake struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	f       *Fake
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewFake returns a fake clock at time zero.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{f: f, at: f.now + d, seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d and runs every callback due by then,
// including callbacks scheduled by earlier callbacks during the same advance.
// The lock is released while a callback runs.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	for {
		next := f.nextDue(target)
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		f.mu.Unlock()
		next.fn()
		f.mu.Lock()
	}
	f.now = target
	f.compact()
	f.mu.Unlock()
}

// Pending is the number of timers that have neither fired nor been stopped.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Elapsed is the total time the clock has been advanced.
func (f *Fake) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) nextDue(target time.Duration) *fakeTimer {
	live := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if !t.stopped && !t.fired && t.at <= target {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].at == live[j].at {
			return live[i].seq < live[j].seq
		}
		return live[i].at < live[j].at
	})
	return live[0]
}

func (f *Fake) compact() {
	kept := f.timers[:0]
	for _, t := range f.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	f.timers = kept
}
