package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reviewtool/pkg/models"
)

func TestSchedule_IntervalFor(t *testing.T) {
	tests := []struct {
		name         string
		reviewNumber int
		want         int
	}{
		{name: "first review is 1 day", reviewNumber: 1, want: 1},
		{name: "second review is 2 days", reviewNumber: 2, want: 2},
		{name: "third review is 4 days", reviewNumber: 3, want: 4},
		{name: "fourth review is 14 days", reviewNumber: 4, want: 14},
		{name: "fifth review is 30 days", reviewNumber: 5, want: 30},
		{name: "sixth review stays at 30 days", reviewNumber: 6, want: 30},
		{name: "hundredth review stays at 30 days", reviewNumber: 100, want: 30},
		{name: "zero clamps to first interval", reviewNumber: 0, want: 1},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IntervalFor(tt.reviewNumber))
		})
	}
}

func TestSchedule_NextReview(t *testing.T) {
	s := New()
	reviewedAt := time.Date(2026, 3, 15, 22, 45, 0, 0, time.UTC)

	nextDate, interval := s.NextReview(1, reviewedAt)
	require.Equal(t, 1, interval)
	assert.Equal(t, "2026-03-16", nextDate.String())

	nextDate, interval = s.NextReview(5, reviewedAt)
	require.Equal(t, 30, interval)
	assert.Equal(t, "2026-04-14", nextDate.String())
}

func TestSchedule_NextReviewIgnoresTimeOfDay(t *testing.T) {
	s := New()
	morning := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)
	night := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	dateA, _ := s.NextReview(2, morning)
	dateB, _ := s.NextReview(2, night)
	assert.Equal(t, dateA, dateB)
}

func TestToday(t *testing.T) {
	clock := FixedClock{Instant: time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)}
	assert.Equal(t, models.NewDate(clock.Instant), Today(clock))
}

func TestSystemClock(t *testing.T) {
	now := SystemClock().Now()
	assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
}
