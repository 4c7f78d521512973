package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/reviewtool/internal/apperr"
	"github.com/example/reviewtool/pkg/models"
)

// LearningItemRepository handles database operations for learning items
type LearningItemRepository struct {
	db *sqlx.DB
}

// NewLearningItemRepository creates a new repository instance
func NewLearningItemRepository(db *sqlx.DB) *LearningItemRepository {
	return &LearningItemRepository{db: db}
}

const itemColumns = `id, subject, title, content, created_at, updated_at,
	review_count, manual_review_count, current_interval_days, next_review_date, is_deleted`

// Insert creates a new learning item row
func (r *LearningItemRepository) Insert(ctx context.Context, item *models.LearningItem) error {
	query := r.db.Rebind(`
		INSERT INTO learning_items (
			id, subject, title, content, created_at, updated_at,
			review_count, manual_review_count, current_interval_days,
			next_review_date, is_deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Subject,
		item.Title,
		item.Content,
		item.CreatedAt,
		item.UpdatedAt,
		item.ReviewCount,
		item.ManualReviewCount,
		item.CurrentIntervalDays,
		item.NextReviewDate,
		item.IsDeleted,
	)
	if err != nil {
		return fmt.Errorf("failed to create learning item: %v", err)
	}
	return nil
}

// GetByID returns a non-deleted item, or NotFound
func (r *LearningItemRepository) GetByID(ctx context.Context, id string) (*models.LearningItem, error) {
	query := r.db.Rebind(`
		SELECT ` + itemColumns + `
		FROM learning_items
		WHERE id = ? AND is_deleted = false
	`)
	var item models.LearningItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("learning item with ID %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learning item: %v", err)
	}
	return &item, nil
}

// Exists reports whether the item row exists at all, soft-deleted included.
// Used by history lookups, which stay addressable after deletion.
func (r *LearningItemRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := r.db.Rebind(`SELECT COUNT(*) FROM learning_items WHERE id = ?`)
	var n int
	if err := r.db.GetContext(ctx, &n, query, id); err != nil {
		return false, fmt.Errorf("failed to check learning item: %v", err)
	}
	return n > 0, nil
}

// List returns non-deleted items, newest first, optionally filtered by subject
func (r *LearningItemRepository) List(ctx context.Context, subject string, skip, limit int) ([]models.LearningItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM learning_items
		WHERE is_deleted = false
	`
	args := []interface{}{}
	if subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}
	query += " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, limit, skip)

	items := []models.LearningItem{}
	err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list learning items: %v", err)
	}
	return items, nil
}

// Count returns the number of non-deleted items, optionally per subject
func (r *LearningItemRepository) Count(ctx context.Context, subject string) (int, error) {
	query := "SELECT COUNT(*) FROM learning_items WHERE is_deleted = false"
	args := []interface{}{}
	if subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count learning items: %v", err)
	}
	return n, nil
}

// ListDue returns all non-deleted items due on or before the given date
func (r *LearningItemRepository) ListDue(ctx context.Context, due models.Date, subject string) ([]models.LearningItem, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM learning_items
		WHERE is_deleted = false AND next_review_date <= ?
	`
	args := []interface{}{due}
	if subject != "" {
		query += " AND subject = ?"
		args = append(args, subject)
	}
	query += " ORDER BY next_review_date ASC, created_at ASC"

	items := []models.LearningItem{}
	err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list due items: %v", err)
	}
	return items, nil
}

// UpdateContent applies a partial content update and refreshes updated_at.
// Values must already be trimmed and validated by the caller.
func (r *LearningItemRepository) UpdateContent(ctx context.Context, id string, patch models.ItemPatch, now time.Time) (*models.LearningItem, error) {
	sets := []string{}
	args := []interface{}{}
	if patch.Subject != nil {
		sets = append(sets, "subject = ?")
		args = append(args, *patch.Subject)
	}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)

	query := fmt.Sprintf(
		"UPDATE learning_items SET %s WHERE id = ? AND is_deleted = false",
		strings.Join(sets, ", "),
	)
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update learning item: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return nil, apperr.NotFoundf("learning item with ID %s not found", id)
	}
	return r.GetByID(ctx, id)
}

// SoftDelete marks an item deleted. Deleting an already-deleted item is a
// no-op success; an unknown id is NotFound.
func (r *LearningItemRepository) SoftDelete(ctx context.Context, id string, now time.Time) error {
	query := r.db.Rebind(`
		UPDATE learning_items
		SET is_deleted = true, updated_at = ?
		WHERE id = ? AND is_deleted = false
	`)
	result, err := r.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete learning item: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		exists, err := r.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFoundf("learning item with ID %s not found", id)
		}
	}
	return nil
}

// Subjects returns the distinct subjects across non-deleted items, sorted
func (r *LearningItemRepository) Subjects(ctx context.Context) ([]string, error) {
	subjects := []string{}
	query := `
		SELECT DISTINCT subject
		FROM learning_items
		WHERE is_deleted = false
		ORDER BY subject
	`
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("failed to get subjects: %v", err)
	}
	return subjects, nil
}

// ApplyScheduledReview advances the item's schedule state and appends the
// history row in one transaction. The UPDATE is guarded by the prior review
// count: a concurrent review that already advanced it turns into Conflict,
// so no two reviews ever advance from the same base value.
func (r *LearningItemRepository) ApplyScheduledReview(ctx context.Context, rev *models.ReviewHistory, priorCount int, updatedAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}

	query := tx.Rebind(`
		UPDATE learning_items SET
			review_count = ?,
			current_interval_days = ?,
			next_review_date = ?,
			updated_at = ?
		WHERE id = ? AND review_count = ? AND is_deleted = false
	`)
	result, err := tx.ExecContext(ctx, query,
		*rev.ReviewNumber,
		*rev.IntervalDays,
		*rev.NextReviewDate,
		updatedAt,
		rev.LearningItemID,
		priorCount,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update review tracking: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		tx.Rollback()
		return apperr.Conflictf("learning item %s was reviewed concurrently", rev.LearningItemID)
	}

	if err := insertReviewHistory(ctx, tx, rev); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// ApplyManualReview bumps manual_review_count and appends the manual history
// row in one transaction. Schedule fields are untouched.
func (r *LearningItemRepository) ApplyManualReview(ctx context.Context, rev *models.ReviewHistory, updatedAt time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %v", err)
	}

	query := tx.Rebind(`
		UPDATE learning_items SET
			manual_review_count = manual_review_count + 1,
			updated_at = ?
		WHERE id = ? AND is_deleted = false
	`)
	result, err := tx.ExecContext(ctx, query, updatedAt, rev.LearningItemID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update manual review count: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		tx.Rollback()
		return apperr.NotFoundf("learning item with ID %s not found", rev.LearningItemID)
	}

	if err := insertReviewHistory(ctx, tx, rev); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// SumReviewCounts returns the total of review_count across non-deleted items
func (r *LearningItemRepository) SumReviewCounts(ctx context.Context) (int, error) {
	var n int
	query := "SELECT COALESCE(SUM(review_count), 0) FROM learning_items WHERE is_deleted = false"
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("failed to sum review counts: %v", err)
	}
	return n, nil
}

// CountDueOn counts non-deleted items due exactly on the given date
func (r *LearningItemRepository) CountDueOn(ctx context.Context, date models.Date) (int, error) {
	var n int
	query := r.db.Rebind("SELECT COUNT(*) FROM learning_items WHERE is_deleted = false AND next_review_date = ?")
	if err := r.db.GetContext(ctx, &n, query, date); err != nil {
		return 0, fmt.Errorf("failed to count items due on date: %v", err)
	}
	return n, nil
}

// CountDueThrough counts non-deleted items due on or before the given date
func (r *LearningItemRepository) CountDueThrough(ctx context.Context, date models.Date) (int, error) {
	var n int
	query := r.db.Rebind("SELECT COUNT(*) FROM learning_items WHERE is_deleted = false AND next_review_date <= ?")
	if err := r.db.GetContext(ctx, &n, query, date); err != nil {
		return 0, fmt.Errorf("failed to count due items: %v", err)
	}
	return n, nil
}

// IntervalHistogram maps each current_interval_days value to the number of
// non-deleted items currently at that interval
func (r *LearningItemRepository) IntervalHistogram(ctx context.Context) (map[int]int, error) {
	rows := []struct {
		Interval int `db:"current_interval_days"`
		N        int `db:"n"`
	}{}
	query := `
		SELECT current_interval_days, COUNT(*) AS n
		FROM learning_items
		WHERE is_deleted = false
		GROUP BY current_interval_days
	`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to get interval histogram: %v", err)
	}
	hist := make(map[int]int, len(rows))
	for _, row := range rows {
		hist[row.Interval] = row.N
	}
	return hist, nil
}
