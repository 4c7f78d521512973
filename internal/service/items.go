package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/example/reviewtool/internal/apperr"
	"github.com/example/reviewtool/internal/database"
	"github.com/example/reviewtool/internal/logger"
	"github.com/example/reviewtool/internal/spaced_repetition"
	"github.com/example/reviewtool/pkg/models"
)

// ReviewService is the business layer over the item and history
// repositories: item lifecycle, review recording, and read aggregations.
type ReviewService struct {
	items    *database.LearningItemRepository
	history  *database.ReviewHistoryRepository
	schedule *spaced_repetition.Schedule
	clock    spaced_repetition.Clock
	log      *logger.Logger
	locks    *itemLocks
}

// New creates a ReviewService.
func New(items *database.LearningItemRepository, history *database.ReviewHistoryRepository, clock spaced_repetition.Clock, log *logger.Logger) *ReviewService {
	return &ReviewService{
		items:    items,
		history:  history,
		schedule: spaced_repetition.New(),
		clock:    clock,
		log:      log,
		locks:    newItemLocks(),
	}
}

// CreateItem stores a new learning item, due for its first review today.
func (s *ReviewService) CreateItem(ctx context.Context, subject, title, content string) (*models.LearningItem, error) {
	subject = strings.TrimSpace(subject)
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if subject == "" {
		return nil, apperr.Validationf("subject is required")
	}
	if title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if content == "" {
		return nil, apperr.Validationf("content is required")
	}

	now := s.clock.Now().UTC()
	item := &models.LearningItem{
		ID:                  uuid.NewString(),
		Subject:             subject,
		Title:               title,
		Content:             content,
		CreatedAt:           now,
		UpdatedAt:           now,
		ReviewCount:         0,
		ManualReviewCount:   0,
		CurrentIntervalDays: 0,
		NextReviewDate:      models.NewDate(now),
	}
	if err := s.items.Insert(ctx, item); err != nil {
		return nil, err
	}
	s.log.Info("learning item created", "id", item.ID, "subject", item.Subject)
	return item, nil
}

// GetItem returns a single non-deleted item.
func (s *ReviewService) GetItem(ctx context.Context, id string) (*models.LearningItem, error) {
	return s.items.GetByID(ctx, id)
}

// ListItems returns non-deleted items plus the unpaginated total,
// optionally filtered by exact subject.
func (s *ReviewService) ListItems(ctx context.Context, subject string, skip, limit int) (*models.ItemList, error) {
	items, err := s.items.List(ctx, subject, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.items.Count(ctx, subject)
	if err != nil {
		return nil, err
	}
	return &models.ItemList{Items: items, Total: total}, nil
}

// UpdateItem applies a partial content update. Provided fields are trimmed
// and must be non-empty; schedule state is never touched.
func (s *ReviewService) UpdateItem(ctx context.Context, id string, patch models.ItemPatch) (*models.LearningItem, error) {
	if patch.Subject != nil {
		trimmed := strings.TrimSpace(*patch.Subject)
		if trimmed == "" {
			return nil, apperr.Validationf("subject cannot be empty")
		}
		patch.Subject = &trimmed
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, apperr.Validationf("title cannot be empty")
		}
		patch.Title = &trimmed
	}
	if patch.Content != nil {
		trimmed := strings.TrimSpace(*patch.Content)
		if trimmed == "" {
			return nil, apperr.Validationf("content cannot be empty")
		}
		patch.Content = &trimmed
	}
	return s.items.UpdateContent(ctx, id, patch, s.clock.Now().UTC())
}

// DeleteItem soft-deletes an item. The id and its history stay addressable.
func (s *ReviewService) DeleteItem(ctx context.Context, id string) error {
	if err := s.items.SoftDelete(ctx, id, s.clock.Now().UTC()); err != nil {
		return err
	}
	s.log.Info("learning item deleted", "id", id)
	return nil
}

// Subjects returns the distinct subjects across non-deleted items.
func (s *ReviewService) Subjects(ctx context.Context) ([]string, error) {
	return s.items.Subjects(ctx)
}

func notFoundItem(id string) error {
	return apperr.NotFoundf("learning item with ID %s not found", id)
}
