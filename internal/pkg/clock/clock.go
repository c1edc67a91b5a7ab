package clock

import "time"

// Clock abstracts the current-time source so OTP expiry checks can be tested
// against a fixed instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }
