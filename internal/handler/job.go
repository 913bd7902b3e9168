package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/service"
)

type JobHandler struct {
	svc *service.JobService
}

func NewJobHandler(svc *service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

type createJobRequest struct {
	CustomerID   uint64     `json:"customer_id" binding:"required"`
	Title        string     `json:"title" binding:"required"`
	Details      string     `json:"details"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	j := &model.Job{
		CustomerID:   req.CustomerID,
		Title:        req.Title,
		Details:      req.Details,
		Status:       model.JobStatus(req.Status),
		ScheduledFor: req.ScheduledFor,
	}
	if err := h.svc.Create(c.Request.Context(), j); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	j, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) List(c *gin.Context) {
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
		"jobs":  items,
		"total": len(items),
	})
}

type updateJobRequest struct {
	Title        *string    `json:"title,omitempty"`
	Details      *string    `json:"details,omitempty"`
	Status       *string    `json:"status,omitempty"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Details != nil {
		changes["details"] = *req.Details
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.ScheduledFor != nil {
		changes["scheduled_for"] = *req.ScheduledFor
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	j, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) Delete(c *gin.Context) {
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
