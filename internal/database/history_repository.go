package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/reviewtool/pkg/models"
)

// ReviewHistoryRepository handles database operations for review history
type ReviewHistoryRepository struct {
	db *sqlx.DB
}

// NewReviewHistoryRepository creates a new repository instance
func NewReviewHistoryRepository(db *sqlx.DB) *ReviewHistoryRepository {
	return &ReviewHistoryRepository{db: db}
}

// insertReviewHistory appends one history row. Shared with the item
// repository so review transactions can write both tables atomically.
func insertReviewHistory(ctx context.Context, q sqlx.ExtContext, rev *models.ReviewHistory) error {
	query := q.Rebind(`
		INSERT INTO review_history (
			id, learning_item_id, reviewed_at, is_manual,
			review_number, interval_days, next_review_date
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := q.ExecContext(ctx, query,
		rev.ID,
		rev.LearningItemID,
		rev.ReviewedAt,
		rev.IsManual,
		rev.ReviewNumber,
		rev.IntervalDays,
		rev.NextReviewDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create review history: %v", err)
	}
	return nil
}

// ListByItem returns all review events for an item, oldest first
func (r *ReviewHistoryRepository) ListByItem(ctx context.Context, itemID string) ([]models.ReviewHistory, error) {
	query := r.db.Rebind(`
		SELECT id, learning_item_id, reviewed_at, is_manual,
			review_number, interval_days, next_review_date
		FROM review_history
		WHERE learning_item_id = ?
		ORDER BY reviewed_at ASC, id ASC
	`)
	history := []models.ReviewHistory{}
	if err := r.db.SelectContext(ctx, &history, query, itemID); err != nil {
		return nil, fmt.Errorf("failed to get review history: %v", err)
	}
	return history, nil
}
