// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock reading initial until Advance is called.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{current: initial}
	fake.changed = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is a Clock for tests. It is safe for concurrent use.
// Callbacks registered with AfterFunc must not call Advance.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	pending []*alarm
	changed *sync.Cond
}

// alarm is one registered AfterFunc call or ticker.
type alarm struct {
	deadline time.Time
	callback func()
	ticks    chan time.Time
	interval time.Duration
	stopped  bool
	fired    bool
}

func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

func (fake *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stop: func() bool { return false }}
	}

	fake.mu.Lock()
	entry := &alarm{deadline: fake.current.Add(d), callback: f}
	fake.register(entry)
	fake.mu.Unlock()

	return &Timer{stop: func() bool {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		if entry.stopped || entry.fired {
			return false
		}
		entry.stopped = true
		return true
	}}
}

func (fake *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	fake.mu.Lock()
	ticks := make(chan time.Time, 1)
	entry := &alarm{deadline: fake.current.Add(d), ticks: ticks, interval: d}
	fake.register(entry)
	fake.mu.Unlock()

	return &Ticker{C: ticks, stop: func() {
		fake.mu.Lock()
		defer fake.mu.Unlock()
		entry.stopped = true
	}}
}

// register adds an alarm. Caller holds fake.mu.
func (fake *FakeClock) register(entry *alarm) {
	fake.pending = append(fake.pending, entry)
	fake.changed.Broadcast()
}

// Advance moves time forward by d and fires every alarm whose deadline
// is reached, earliest first. A ticker spanning several intervals
// fires once per interval; ticks that find C full are dropped.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	fake.current = fake.current.Add(d)
	target := fake.current
	fake.mu.Unlock()

	for {
		due := fake.takeDue(target)
		if len(due) == 0 {
			return
		}
		for _, entry := range due {
			if entry.callback != nil {
				entry.callback()
				continue
			}
			select {
			case entry.ticks <- target:
			default:
			}
		}
	}
}

// takeDue removes the alarms due at target, reschedules tickers, and
// returns the due alarms in deadline order.
func (fake *FakeClock) takeDue(target time.Time) []*alarm {
	fake.mu.Lock()
	defer fake.mu.Unlock()

	var due, remaining []*alarm
	for _, entry := range fake.pending {
		switch {
		case entry.stopped:
		case entry.deadline.After(target):
			remaining = append(remaining, entry)
		default:
			due = append(due, entry)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, entry := range due {
		if entry.interval > 0 {
			entry.deadline = entry.deadline.Add(entry.interval)
			remaining = append(remaining, entry)
		} else {
			entry.fired = true
		}
	}
	fake.pending = remaining
	return due
}

// WaitForTimers blocks until at least n alarms are pending. Tests call
// it before Advance so a goroutine has registered its ticker or timer
// by the time the clock moves.
func (fake *FakeClock) WaitForTimers(n int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for fake.activeLocked() < n {
		fake.changed.Wait()
	}
}

// PendingCount returns the number of alarms that have neither fired
// nor been stopped.
func (fake *FakeClock) PendingCount() int {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.activeLocked()
}

func (fake *FakeClock) activeLocked() int {
	count := 0
	for _, entry := range fake.pending {
		if !entry.stopped {
			count++
		}
	}
	return count
}
