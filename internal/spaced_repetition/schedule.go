package spaced_repetition

import (
	"time"

	"github.com/example/reviewtool/pkg/models"
)

// Schedule implements the fixed-progression spaced repetition algorithm.
// An item is due on creation (day 0); each completed scheduled review
// pushes it out by the next interval in the progression.
type Schedule struct {
	// Intervals in days, indexed by 1-based scheduled review number.
	// Reviews past the end of the table stay at the last interval.
	Intervals []int
}

// New creates a Schedule with the default progression.
func New() *Schedule {
	return &Schedule{
		Intervals: []int{1, 2, 4, 14, 30},
	}
}

// IntervalFor returns the interval applied by the nth scheduled review
// (1-based): 1st review -> 1 day, 2nd -> 2, 3rd -> 4, 4th -> 14, 5th and
// every later review -> 30.
func (s *Schedule) IntervalFor(reviewNumber int) int {
	idx := reviewNumber - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Intervals) {
		idx = len(s.Intervals) - 1
	}
	return s.Intervals[idx]
}

// NextReview computes the interval and due date produced by the nth
// scheduled review completed at reviewedAt.
func (s *Schedule) NextReview(reviewNumber int, reviewedAt time.Time) (models.Date, int) {
	interval := s.IntervalFor(reviewNumber)
	return models.NewDate(reviewedAt).AddDays(interval), interval
}
