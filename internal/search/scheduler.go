package search

import "time"

// Scheduler defers a function by a delay and hands back a cancel. The timer
// implementation backs production; tests substitute a manual one so firing
// order is driven explicitly.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

// NewTimerScheduler returns the real-time scheduler used outside tests.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}
