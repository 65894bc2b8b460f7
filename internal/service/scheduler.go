package service

import "time"

// Task is a pending delayed call
type Task interface {
	// Stop cancels the call. It reports false if the call already ran or
	// was already stopped.
	Stop() bool
}

// Scheduler runs functions after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type clockScheduler struct{}

// NewScheduler returns a Scheduler backed by the runtime timer
func NewScheduler() Scheduler {
	return clockScheduler{}
}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}
