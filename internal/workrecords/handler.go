package workrecords

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/bonsai"
	"bonsai-backend/internal/shared/server/middleware"
	"bonsai-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches work-record routes to the router group. Records are
// nested under their bonsai for create/list; update/delete address the record
// directly.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bonsai/:id/records", h.create)
	rg.GET("/bonsai/:id/records", h.list)
	rg.PUT("/records/:id", h.update)
	rg.DELETE("/records/:id", h.delete)
}

type recordRequest struct {
	WorkTypes   []WorkType `json:"workTypes"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	ImageURLs   []string   `json:"imageUrls"`
}

func (req recordRequest) toModel() (WorkRecord, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return WorkRecord{}, err
	}
	return WorkRecord{
		WorkTypes:   req.WorkTypes,
		Date:        date,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	}, nil
}

// parseDate accepts RFC3339 timestamps or plain calendar dates.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	rec, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid date", nil)
		return
	}
	rec.BonsaiID = c.Param("id")

	created, err := h.Svc.Create(c.Request.Context(), userID, rec)
	if err != nil {
		writeError(c, err, "failed to create work record")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to list work records")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	rec, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid date", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), rec)
	if err != nil {
		writeError(c, err, "failed to update work record")
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "failed to delete work record")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "work record not found", nil)
	case errors.Is(err, bonsai.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "bonsai not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
