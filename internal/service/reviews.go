package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/reviewtool/internal/spaced_repetition"
	"github.com/example/reviewtool/pkg/models"
)

// MarkReviewed records a scheduled review: advances the interval
// progression, moves next_review_date forward, bumps review_count and
// appends the history row. All of it commits together or not at all.
func (s *ReviewService) MarkReviewed(ctx context.Context, itemID string) (*models.ReviewHistory, error) {
	unlock := s.locks.acquire(itemID)
	defer unlock()

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	reviewedAt := s.clock.Now().UTC()
	reviewNumber := item.ReviewCount + 1
	nextDate, interval := s.schedule.NextReview(reviewNumber, reviewedAt)

	rev := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: itemID,
		ReviewedAt:     reviewedAt,
		IsManual:       false,
		ReviewNumber:   &reviewNumber,
		IntervalDays:   &interval,
		NextReviewDate: &nextDate,
	}
	if err := s.items.ApplyScheduledReview(ctx, rev, item.ReviewCount, reviewedAt); err != nil {
		return nil, err
	}

	s.log.Info("scheduled review recorded",
		"id", itemID, "review_number", reviewNumber,
		"interval_days", interval, "next_review_date", nextDate.String())
	return rev, nil
}

// ManualReview records an out-of-band review. Only manual_review_count
// moves; the schedule is untouched, so re-reading never games the
// progression.
func (s *ReviewService) ManualReview(ctx context.Context, itemID string) (*models.ReviewHistory, error) {
	unlock := s.locks.acquire(itemID)
	defer unlock()

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	reviewedAt := s.clock.Now().UTC()
	rev := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: itemID,
		ReviewedAt:     reviewedAt,
		IsManual:       true,
	}
	if err := s.items.ApplyManualReview(ctx, rev, reviewedAt); err != nil {
		return nil, err
	}

	s.log.Info("manual review recorded", "id", itemID)
	return rev, nil
}

// DueItems returns all items due on or before the target date (today by
// default), with the per-subject breakdown of the returned set.
func (s *ReviewService) DueItems(ctx context.Context, subject string, target *models.Date) (*models.DueItems, error) {
	due := spaced_repetition.Today(s.clock)
	if target != nil {
		due = *target
	}

	items, err := s.items.ListDue(ctx, due, subject)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[string]int)
	for _, item := range items {
		bySubject[item.Subject]++
	}

	return &models.DueItems{
		Items:     items,
		TotalDue:  len(items),
		BySubject: bySubject,
	}, nil
}

// Stats aggregates review state across all non-deleted items.
func (s *ReviewService) Stats(ctx context.Context) (*models.ReviewStats, error) {
	today := spaced_repetition.Today(s.clock)

	totalItems, err := s.items.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	totalReviews, err := s.items.SumReviewCounts(ctx)
	if err != nil {
		return nil, err
	}
	dueToday, err := s.items.CountDueOn(ctx, today)
	if err != nil {
		return nil, err
	}
	dueThisWeek, err := s.items.CountDueThrough(ctx, today.AddDays(7))
	if err != nil {
		return nil, err
	}
	histogram, err := s.items.IntervalHistogram(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ReviewStats{
		TotalItems:        totalItems,
		TotalReviews:      totalReviews,
		ItemsDueToday:     dueToday,
		ItemsDueThisWeek:  dueThisWeek,
		ReviewsByInterval: histogram,
	}, nil
}

// History returns every review event for an item, oldest first. The item
// only has to exist; soft-deleted items keep their history readable.
func (s *ReviewService) History(ctx context.Context, itemID string) ([]models.ReviewHistory, error) {
	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFoundItem(itemID)
	}
	return s.history.ListByItem(ctx, itemID)
}
