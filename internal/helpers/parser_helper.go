package helpers

import (
	"time"
)

const dateTimeLayout = "2006-01-02T15:04"

// CombineDateTime merges the submission's separate date ("2006-01-02")
// and time ("15:04") fields into a single timestamp.
func CombineDateTime(date, clock string) (time.Time, error) {
	return time.Parse(dateTimeLayout, date+"T"+clock)
}
