package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/service"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

type createInteractionRequest struct {
	CustomerID uint64     `json:"customer_id" binding:"required"`
	Kind       string     `json:"kind" binding:"required"`
	Summary    string     `json:"summary"`
	Notes      string     `json:"notes"`
	OccurredAt *time.Time `json:"occurred_at"`
}

func (h *InteractionHandler) Create(c *gin.Context) {
	var req createInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	occurred := time.Now()
	if req.OccurredAt != nil {
		occurred = *req.OccurredAt
	}
	in := &model.Interaction{
		CustomerID: req.CustomerID,
		Kind:       model.InteractionKind(req.Kind),
		Summary:    req.Summary,
		Notes:      req.Notes,
		OccurredAt: occurred,
	}
	if err := h.svc.Create(c.Request.Context(), in); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create interaction"})
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h *InteractionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	in, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *InteractionHandler) List(c *gin.Context) {
	var customerID uint64
	if v := c.Query("customer_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		customerID = parsed
	}
	items, err := h.svc.List(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interactions": items,
		"total":        len(items),
	})
}

type updateInteractionRequest struct {
	Kind       *string    `json:"kind,omitempty"`
	Summary    *string    `json:"summary,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

func (h *InteractionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Kind != nil {
		changes["kind"] = *req.Kind
	}
	if req.Summary != nil {
		changes["summary"] = *req.Summary
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if req.OccurredAt != nil {
		changes["occurred_at"] = *req.OccurredAt
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	in, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (h *InteractionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
