package kosmorrolib

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kosmorro/lib/internal/ephem"
)

// ErrInvalidPosition tags observer position validation failures.
var ErrInvalidPosition = errors.New("invalid observer position")

// ErrInvalidTimezone tags timezone offset validation failures.
var ErrInvalidTimezone = errors.New("invalid timezone offset")

// OutOfRangeDateError reports a query outside the span the ephemeris
// provider can evaluate. It is not recoverable: the library does not
// approximate outside its data range.
type OutOfRangeDateError struct {
	Min, Max time.Time
}

func (e *OutOfRangeDateError) Error() string {
	return fmt.Sprintf("the date must be between %s and %s",
		e.Min.Format("2006-01-02"), e.Max.Format("2006-01-02"))
}

// InvalidDateRangeError reports a search whose start date falls after
// its end date.
type InvalidDateRangeError struct {
	Start, End time.Time
}

func (e *InvalidDateRangeError) Error() string {
	return fmt.Sprintf("the start date (%s) must be before the end date (%s)",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

func newPositionError(field string, value, min, max float64) error {
	return fmt.Errorf("%w: %s %.4f out of range [%g, %g]", ErrInvalidPosition, field, value, min, max)
}

func validateTimezone(offsetHours float64) error {
	if offsetHours < -12 || offsetHours > 14 {
		return fmt.Errorf("%w: %+g not in [-12, +14]", ErrInvalidTimezone, offsetHours)
	}
	return nil
}

// wrapRange converts a provider range error into the public
// OutOfRangeDateError, shrunk by one day on each end so that a full
// margin-expanded local-day window always fits in the advertised range.
// Every other error passes through unchanged.
func wrapRange(err error) error {
	var re *ephem.RangeError
	if errors.As(err, &re) {
		return &OutOfRangeDateError{
			Min: re.Start.AddDate(0, 0, 1),
			Max: re.End.AddDate(0, 0, -1),
		}
	}
	return err
}
