package services

import "time"

// Clock returns the current time. Lifecycle rules are evaluated against it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
