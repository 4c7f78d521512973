package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/reviewtool/internal/apperr"
	"github.com/example/reviewtool/pkg/models"
)

var testBase = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedItem inserts an item due on the given date. seq staggers created_at so
// ordering is deterministic.
func seedItem(t *testing.T, repo *LearningItemRepository, subject string, due models.Date, seq int) *models.LearningItem {
	t.Helper()
	createdAt := testBase.Add(time.Duration(seq) * time.Minute)
	item := &models.LearningItem{
		ID:             uuid.NewString(),
		Subject:        subject,
		Title:          fmt.Sprintf("title %d", seq),
		Content:        "content",
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
		NextReviewDate: due,
	}
	require.NoError(t, repo.Insert(context.Background(), item))
	return item
}

func TestLearningItemRepository_InsertAndGet(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()

	due := models.NewDate(testBase)
	item := seedItem(t, repo, "Math", due, 0)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, "Math", got.Subject)
	assert.Equal(t, "title 0", got.Title)
	assert.Equal(t, "content", got.Content)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, 0, got.ManualReviewCount)
	assert.Equal(t, 0, got.CurrentIntervalDays)
	assert.Equal(t, due.String(), got.NextReviewDate.String())
	assert.False(t, got.IsDeleted)
}

func TestLearningItemRepository_GetByID_NotFound(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "no-such-id")
	assert.True(t, apperr.IsNotFound(err))

	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)
	require.NoError(t, repo.SoftDelete(ctx, item.ID, testBase))

	_, err = repo.GetByID(ctx, item.ID)
	assert.True(t, apperr.IsNotFound(err), "soft-deleted item must be invisible to GetByID")
}

func TestLearningItemRepository_List(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()
	due := models.NewDate(testBase)

	first := seedItem(t, repo, "Math", due, 0)
	second := seedItem(t, repo, "History", due, 1)
	third := seedItem(t, repo, "Math", due, 2)

	all, err := repo.List(ctx, "", 0, 100)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	math, err := repo.List(ctx, "Math", 0, 100)
	require.NoError(t, err)
	require.Len(t, math, 2)
	for _, item := range math {
		assert.Equal(t, "Math", item.Subject)
	}

	page, err := repo.List(ctx, "", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, second.ID, page[0].ID)

	n, err := repo.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = repo.Count(ctx, "Math")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLearningItemRepository_ListDue(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()
	today := models.NewDate(testBase)

	overdue := seedItem(t, repo, "Math", today.AddDays(-3), 0)
	dueNow := seedItem(t, repo, "History", today, 1)
	seedItem(t, repo, "Math", today.AddDays(5), 2)

	due, err := repo.ListDue(ctx, today, "")
	require.NoError(t, err)
	require.Len(t, due, 2)
	// earliest due date first
	assert.Equal(t, overdue.ID, due[0].ID)
	assert.Equal(t, dueNow.ID, due[1].ID)

	mathDue, err := repo.ListDue(ctx, today, "Math")
	require.NoError(t, err)
	require.Len(t, mathDue, 1)
	assert.Equal(t, overdue.ID, mathDue[0].ID)
}

func TestLearningItemRepository_UpdateContent(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()
	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)

	newTitle := "Algebra II"
	updatedAt := testBase.Add(time.Hour)
	got, err := repo.UpdateContent(ctx, item.ID, models.ItemPatch{Title: &newTitle}, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, "Algebra II", got.Title)
	assert.Equal(t, "Math", got.Subject, "unpatched field must survive")
	assert.Equal(t, "content", got.Content)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	// schedule untouched
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, item.NextReviewDate.String(), got.NextReviewDate.String())

	_, err = repo.UpdateContent(ctx, "no-such-id", models.ItemPatch{Title: &newTitle}, updatedAt)
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, repo.SoftDelete(ctx, item.ID, updatedAt))
	_, err = repo.UpdateContent(ctx, item.ID, models.ItemPatch{Title: &newTitle}, updatedAt)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLearningItemRepository_SoftDelete(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()
	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)

	require.NoError(t, repo.SoftDelete(ctx, item.ID, testBase))

	// idempotent for an already-deleted item
	require.NoError(t, repo.SoftDelete(ctx, item.ID, testBase))

	// unknown ids are still NotFound
	err := repo.SoftDelete(ctx, "no-such-id", testBase)
	assert.True(t, apperr.IsNotFound(err))

	// the row itself survives for audit
	exists, err := repo.Exists(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLearningItemRepository_Subjects(t *testing.T) {
	repo := NewLearningItemRepository(newTestDB(t))
	ctx := context.Background()
	due := models.NewDate(testBase)

	seedItem(t, repo, "Math", due, 0)
	seedItem(t, repo, "Math", due, 1)
	seedItem(t, repo, "Biology", due, 2)
	deleted := seedItem(t, repo, "Chemistry", due, 3)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID, testBase))

	subjects, err := repo.Subjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Biology", "Math"}, subjects)
}

func TestLearningItemRepository_ApplyScheduledReview(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearningItemRepository(db)
	history := NewReviewHistoryRepository(db)
	ctx := context.Background()

	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)

	reviewedAt := testBase.Add(2 * time.Hour)
	number, interval := 1, 1
	nextDate := models.NewDate(reviewedAt).AddDays(interval)
	rev := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: item.ID,
		ReviewedAt:     reviewedAt,
		ReviewNumber:   &number,
		IntervalDays:   &interval,
		NextReviewDate: &nextDate,
	}
	require.NoError(t, repo.ApplyScheduledReview(ctx, rev, 0, reviewedAt))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ReviewCount)
	assert.Equal(t, 1, got.CurrentIntervalDays)
	assert.Equal(t, nextDate.String(), got.NextReviewDate.String())

	rows, err := history.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsManual)
	require.NotNil(t, rows[0].ReviewNumber)
	assert.Equal(t, 1, *rows[0].ReviewNumber)
}

func TestLearningItemRepository_ApplyScheduledReview_Conflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearningItemRepository(db)
	history := NewReviewHistoryRepository(db)
	ctx := context.Background()

	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)

	number, interval := 1, 1
	nextDate := models.NewDate(testBase).AddDays(interval)
	rev := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: item.ID,
		ReviewedAt:     testBase,
		ReviewNumber:   &number,
		IntervalDays:   &interval,
		NextReviewDate: &nextDate,
	}

	// a stale prior count must not advance the schedule
	err := repo.ApplyScheduledReview(ctx, rev, 7, testBase)
	assert.True(t, apperr.IsConflict(err))

	got, getErr := repo.GetByID(ctx, item.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 0, got.ReviewCount, "conflicting review must not partially apply")

	rows, histErr := history.ListByItem(ctx, item.ID)
	require.NoError(t, histErr)
	assert.Empty(t, rows, "conflicting review must not append history")
}

func TestLearningItemRepository_ApplyManualReview(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearningItemRepository(db)
	history := NewReviewHistoryRepository(db)
	ctx := context.Background()

	item := seedItem(t, repo, "Math", models.NewDate(testBase), 0)

	rev := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: item.ID,
		ReviewedAt:     testBase,
		IsManual:       true,
	}
	require.NoError(t, repo.ApplyManualReview(ctx, rev, testBase))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ManualReviewCount)
	assert.Equal(t, 0, got.ReviewCount)
	assert.Equal(t, item.NextReviewDate.String(), got.NextReviewDate.String())

	rows, err := history.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsManual)
	assert.Nil(t, rows[0].ReviewNumber)
	assert.Nil(t, rows[0].IntervalDays)
	assert.Nil(t, rows[0].NextReviewDate)

	// deleted items can no longer be reviewed
	require.NoError(t, repo.SoftDelete(ctx, item.ID, testBase))
	rev2 := &models.ReviewHistory{
		ID:             uuid.NewString(),
		LearningItemID: item.ID,
		ReviewedAt:     testBase,
		IsManual:       true,
	}
	err = repo.ApplyManualReview(ctx, rev2, testBase)
	assert.True(t, apperr.IsNotFound(err))
}

func TestLearningItemRepository_Aggregations(t *testing.T) {
	db := newTestDB(t)
	repo := NewLearningItemRepository(db)
	ctx := context.Background()
	today := models.NewDate(testBase)

	seedItem(t, repo, "Math", today.AddDays(-1), 0)
	seedItem(t, repo, "Math", today, 1)
	seedItem(t, repo, "History", today.AddDays(3), 2)
	seedItem(t, repo, "History", today.AddDays(10), 3)
	deleted := seedItem(t, repo, "Math", today, 4)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID, testBase))

	dueToday, err := repo.CountDueOn(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 1, dueToday)

	dueThisWeek, err := repo.CountDueThrough(ctx, today.AddDays(7))
	require.NoError(t, err)
	assert.Equal(t, 3, dueThisWeek, "overdue and this-week items count, the 10-day one doesn't")

	sum, err := repo.SumReviewCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sum)

	hist, err := repo.IntervalHistogram(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: 4}, hist)
}
