package bonsai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterRoutes attaches bonsai routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bonsai", h.create)
	rg.GET("/bonsai", h.list)
	rg.GET("/bonsai/:id", h.get)
	rg.PUT("/bonsai/:id", h.update)
	rg.DELETE("/bonsai/:id", h.delete)
}

type bonsaiRequest struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Description string   `json:"description"`
	ImageURLs   []string `json:"imageUrls"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req bonsaiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	b, err := h.Svc.Create(c.Request.Context(), userID, Bonsai{
		Name:        req.Name,
		Species:     req.Species,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		writeError(c, err, "failed to create bonsai")
		return
	}
	c.Set("bonsaiId", b.ID)
	respond.JSON(c, http.StatusCreated, b)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "failed to list bonsai")
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	b, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch bonsai")
		return
	}
	respond.OK(c, b)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req bonsaiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	b, err := h.Svc.Update(c.Request.Context(), userID, c.Param("id"), Bonsai{
		Name:        req.Name,
		Species:     req.Species,
		Description: req.Description,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		writeError(c, err, "failed to update bonsai")
		return
	}
	respond.OK(c, b)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "failed to delete bonsai")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "bonsai not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
