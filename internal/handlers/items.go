package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/reviewtool/internal/logger"
	"github.com/example/reviewtool/internal/service"
	"github.com/example/reviewtool/pkg/models"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ItemHandler serves the /learning-items endpoints.
type ItemHandler struct {
	svc *service.ReviewService
	log *logger.Logger
}

// NewItemHandler creates a new handler instance.
func NewItemHandler(svc *service.ReviewService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: log}
}

type createItemRequest struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create handles POST /learning-items/. The new item is due today.
func (h *ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	item, err := h.svc.CreateItem(c.Request.Context(), req.Subject, req.Title, req.Content)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// List handles GET /learning-items/ with subject filter and skip/limit
// pagination.
func (h *ItemHandler) List(c *gin.Context) {
	skip := intQuery(c, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit := intQuery(c, "limit", defaultListLimit)
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	list, err := h.svc.ListItems(c.Request.Context(), c.Query("subject"), skip, limit)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles GET /learning-items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Update handles PUT /learning-items/:id. Only provided fields change.
func (h *ItemHandler) Update(c *gin.Context) {
	var patch models.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondValidation(c, "invalid request body")
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /learning-items/:id (soft delete).
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subjects handles GET /learning-items/subjects.
func (h *ItemHandler) Subjects(c *gin.Context) {
	subjects, err := h.svc.Subjects(c.Request.Context())
	if err != nil {
		h.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *ItemHandler) respond(c *gin.Context, err error) {
	logUnexpected(h.log, c, err)
	RespondError(c, err)
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
