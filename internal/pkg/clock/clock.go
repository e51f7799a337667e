// Package clock abstracts time access so coupon-window checks read the
// current instant through a seam instead of calling time.Now directly.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

func NewRealClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
