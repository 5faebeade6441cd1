package stopwatch

import "github.com/pkg/errors"

var (
	// ErrTimerNameRequired is returned when a mark is requested without a timer name.
	ErrTimerNameRequired = errors.New("timer name required")

	// ErrTimerNotFound is returned when the current batch has no timer with the requested name.
	ErrTimerNotFound = errors.New("no timer with this name exists")
)

// IsInvalidArgument reports whether err was caused by a missing timer name.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrTimerNameRequired)
}

// IsNotFound reports whether err was caused by a lookup of an unknown timer.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTimerNotFound)
}
