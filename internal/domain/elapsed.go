package domain

import (
	"fmt"
	"time"
)

// ElapsedStr renders a number of seconds as hh:mm:s.ss. Hours and minutes
// are truncated, seconds keep two decimals and are not zero padded.
func ElapsedStr(seconds float64) string {
	hrs := int(seconds / 3600)
	seconds -= float64(hrs * 3600)
	mins := int(seconds / 60)
	seconds -= float64(mins * 60)
	return fmt.Sprintf("%02d:%02d:%.2f", hrs, mins, seconds)
}

// ElapsedDuration is ElapsedStr for a time.Duration
func ElapsedDuration(d time.Duration) string {
	return ElapsedStr(d.Seconds())
}
