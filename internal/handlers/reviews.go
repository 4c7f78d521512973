package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/reviewtool/internal/apperr"
	"github.com/example/reviewtool/internal/logger"
	"github.com/example/reviewtool/internal/service"
	"github.com/example/reviewtool/pkg/models"
)

// ReviewHandler serves the /reviews endpoints.
type ReviewHandler struct {
	svc *service.ReviewService
	log *logger.Logger
}

// NewReviewHandler creates a new handler instance.
func NewReviewHandler(svc *service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: log}
}

// Due handles GET /reviews/due with optional subject filter and
// target_date override (YYYY-MM-DD).
func (h *ReviewHandler) Due(c *gin.Context) {
	var target *models.Date
	if raw := c.Query("target_date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			RespondValidation(c, "target_date must be YYYY-MM-DD")
			return
		}
		target = &parsed
	}

	due, err := h.svc.DueItems(c.Request.Context(), c.Query("subject"), target)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

// MarkReviewed handles POST /reviews/:id, recording a scheduled review.
func (h *ReviewHandler) MarkReviewed(c *gin.Context) {
	rev, err := h.svc.MarkReviewed(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// ManualReview handles POST /reviews/:id/manual, recording a
// schedule-neutral review.
func (h *ReviewHandler) ManualReview(c *gin.Context) {
	rev, err := h.svc.ManualReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// History handles GET /reviews/history/:id, oldest event first.
func (h *ReviewHandler) History(c *gin.Context) {
	history, err := h.svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Stats handles GET /reviews/stats.
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReviewHandler) respond(c *gin.Context, err error) {
	logUnexpected(h.log, c, err)
	RespondError(c, err)
}

// logUnexpected logs errors that will surface as 500s; client errors are
// already described by their kind.
func logUnexpected(log *logger.Logger, c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		log.Error("request failed", "path", c.FullPath(), "error", err)
	}
}
