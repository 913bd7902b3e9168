package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/searchindex"
	"github.com/psds-microservice/crm-service/internal/service"
	"github.com/psds-microservice/crm-service/internal/workflow"
)

type SuggestionHandler struct {
	svc    *service.SuggestionService
	search *searchindex.Client
}

func NewSuggestionHandler(svc *service.SuggestionService, search *searchindex.Client) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, search: search}
}

type createSuggestionRequest struct {
	Type           string           `json:"type" binding:"required"`
	Status         string           `json:"status"`
	Priority       string           `json:"priority"`
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description"`
	SubmitterEmail string           `json:"submitter_email"`
	SubmitterName  string           `json:"submitter_name"`
	SubmitterRole  string           `json:"submitter_role"`
	Attachments    []string         `json:"attachments"`
	SystemMeta     model.SystemMeta `json:"system_meta"`
}

func (h *SuggestionHandler) Create(c *gin.Context) {
	var req createSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	sg := &model.Suggestion{
		Type:           model.FeedbackType(req.Type),
		Status:         model.SuggestionStatus(req.Status),
		Priority:       model.Priority(req.Priority),
		Title:          req.Title,
		Description:    req.Description,
		SubmitterEmail: req.SubmitterEmail,
		SubmitterName:  req.SubmitterName,
		SubmitterRole:  req.SubmitterRole,
		Attachments:    pq.StringArray(req.Attachments),
		SystemMeta:     req.SystemMeta,
	}
	if err := h.svc.Create(c.Request.Context(), sg); err != nil {
		respondError(c, err)
		return
	}
	h.search.IndexSuggestionAsync(sg)
	c.JSON(http.StatusCreated, sg)
}

// Get открывает карточку записи: помимо чтения помечает её выбранной, чтобы
// последующая смена статуса отразилась и в списке, и в карточке.
func (h *SuggestionHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	sg, err := h.svc.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sg)
}

// List отдаёт видимое подмножество очереди. Query-фасеты: search, status,
// type, priority; отсутствующий фасет эквивалентен "all".
func (h *SuggestionHandler) List(c *gin.Context) {
	f := filter.NewSuggestionFilter()
	for _, name := range []string{filter.FacetStatus, filter.FacetType, filter.FacetPriority} {
		if v := c.Query(name); v != "" {
			if err := f.Set(name, v); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
	}
	items, err := h.svc.List(c.Request.Context(), f, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestions": items,
		"total":       len(items),
	})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus проводит смену статуса через координатор. При провале записи
// в хранилище прежний статус остаётся видимым.
func (h *SuggestionHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	sg, err := h.svc.UpdateStatus(c.Request.Context(), id, model.SuggestionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	h.search.IndexSuggestionAsync(sg)
	c.JSON(http.StatusOK, sg)
}

// Refresh — ручной триггер перечитывания снапшота очереди.
func (h *SuggestionHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

func (h *SuggestionHandler) Delete(c *gin.Context) {
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

// Workflows отдаёт упорядоченный список статусов для типа фидбека.
func (h *SuggestionHandler) Workflows(c *gin.Context) {
	statuses, err := workflow.StatusesFor(model.FeedbackType(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":     c.Param("type"),
		"statuses": statuses,
	})
}
