package spaced_repetition

import (
	"time"

	"github.com/example/reviewtool/pkg/models"
)

// Clock supplies the current time to scheduling code. Injected everywhere a
// due-date comparison happens so tests can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

// Today returns the current calendar day of the given clock.
func Today(c Clock) models.Date {
	return models.NewDate(c.Now())
}
