package allocator

import (
	"fmt"
)

// Time is the index of a value within a tile's value stream.  Cursor moves
// do not consume time.
type Time int

// TimeSpan is the half open interval [Begin, End).
type TimeSpan struct {
	Begin Time
	End   Time
}

func NewTimeSpan(begin Time, end Time) TimeSpan {
	if end < begin {
		panic(fmt.Sprintf("invalid time span [%d, %d)", begin, end))
	}
	return TimeSpan{
		Begin: begin,
		End:   end,
	}
}

func (span TimeSpan) Length() int {
	return int(span.End - span.Begin)
}

func (span TimeSpan) IsEmpty() bool {
	return span.End <= span.Begin
}

func (span TimeSpan) Contains(t Time) bool {
	return span.Begin <= t && t < span.End
}

func (span TimeSpan) Overlaps(other TimeSpan) bool {
	return span.Begin < other.End && other.Begin < span.End
}

func (span TimeSpan) String() string {
	return fmt.Sprintf("[%d, %d)", span.Begin, span.End)
}
