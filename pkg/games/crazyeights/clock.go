package crazyeights

import "time"

// Timer is a scheduled call that can be cancelled
type Timer interface {
	Stop() bool
}

// Clock tells the time and schedules deferred calls
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// RealClock is the Clock backed by package time
var RealClock Clock = realClock{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
