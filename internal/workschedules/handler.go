package workschedules

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/bonsai"
	"bonsai-backend/internal/shared/server/middleware"
	"bonsai-backend/internal/shared/server/respond"
	"bonsai-backend/internal/workrecords"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches work-schedule routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bonsai/:id/schedules", h.create)
	rg.GET("/bonsai/:id/schedules", h.list)
	rg.PUT("/schedules/:id", h.update)
	rg.DELETE("/schedules/:id", h.delete)
}

type scheduleRequest struct {
	WorkTypes     []workrecords.WorkType `json:"workTypes"`
	ScheduledDate string                 `json:"scheduledDate"`
	Note          string                 `json:"note"`
	Completed     bool                   `json:"completed"`
}

func (req scheduleRequest) toModel() (WorkSchedule, error) {
	var date time.Time
	if req.ScheduledDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledDate)
		if err != nil {
			parsed, err = time.ParseInLocation("2006-01-02", req.ScheduledDate, time.Local)
			if err != nil {
				return WorkSchedule{}, err
			}
		}
		date = parsed
	}
	return WorkSchedule{
		WorkTypes:     req.WorkTypes,
		ScheduledDate: date,
		Note:          req.Note,
		Completed:     req.Completed,
	}, nil
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ws, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid scheduledDate", nil)
		return
	}
	ws.BonsaiID = c.Param("id")

	created, err := h.Svc.Create(c.Request.Context(), userID, ws)
	if err != nil {
		writeError(c, err, "failed to create work schedule")
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to list work schedules")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ws, err := req.toModel()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid scheduledDate", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), ws)
	if err != nil {
		writeError(c, err, "failed to update work schedule")
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "failed to delete work schedule")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "work schedule not found", nil)
	case errors.Is(err, bonsai.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "bonsai not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
