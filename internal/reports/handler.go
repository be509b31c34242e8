package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bonsai-backend/internal/shared/server/middleware"
	"bonsai-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the report service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports/generate", h.generate)
	rg.GET("/reports", h.list)
	rg.GET("/reports/:year/:month", h.get)
	rg.POST("/reports/:id/refresh", h.refresh)
}

type generateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "month must be 1 through 12", nil)
		return
	}

	rep, err := h.Svc.Generate(c.Request.Context(), userID, req.Year, req.Month)
	if err != nil {
		writeError(c, err, "failed to generate report")
		return
	}
	respond.OK(c, rep)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	page, next, err := h.Svc.List(c.Request.Context(), userID, c.Query("cursor"), limit)
	if err != nil {
		writeError(c, err, "failed to list reports")
		return
	}
	items := make([]MonthlyReportListItem, 0, len(page))
	for _, rep := range page {
		items = append(items, rep.ListItem())
	}
	body := gin.H{"items": items}
	if next != "" {
		body["nextCursor"] = next
	}
	respond.OK(c, body)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid year", nil)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid month", nil)
		return
	}

	rep, err := h.Svc.Get(c.Request.Context(), userID, year, month)
	if err != nil {
		writeError(c, err, "failed to load report")
		return
	}
	respond.OK(c, rep)
}

func (h *Handler) refresh(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rep, err := h.Svc.Refresh(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to refresh report")
		return
	}
	respond.OK(c, rep)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "report not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
