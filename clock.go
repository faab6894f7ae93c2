package layoutanim

import "time"

// Clock returns the current time in milliseconds. Successive calls must
// never go backwards.
type Clock func() int64

// SystemClock returns a monotonic Clock counting milliseconds from the call.
func SystemClock() Clock {
	base := time.Now()
	return func() int64 {
		return time.Since(base).Milliseconds()
	}
}
