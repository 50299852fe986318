package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarLayout renders a date at day granularity, e.g. "Fri Jan 05 2024".
// Time of day and timezone do not survive the format.
const CalendarLayout = "Mon Jan 02 2006"

type Entry struct {
	ID          uuid.UUID
	Seq         int64 // insertion counter, breaks ties when entries share a date
	UserID      uuid.UUID
	Description string
	Duration    int32
	Date        time.Time
}

// DateString returns the entry date as a calendar string.
// The conversion is lossy and one-directional.
func (e Entry) DateString() string {
	return e.Date.Format(CalendarLayout)
}
