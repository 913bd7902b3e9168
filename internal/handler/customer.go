package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/kafka"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/searchindex"
	"github.com/psds-microservice/crm-service/internal/service"
)

type CustomerHandler struct {
	svc    *service.CustomerService
	search *searchindex.Client
	events kafka.RecordEventProducer
}

func NewCustomerHandler(svc *service.CustomerService, search *searchindex.Client, events kafka.RecordEventProducer) *CustomerHandler {
	return &CustomerHandler{svc: svc, search: search, events: events}
}

type createCustomerRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
	Company  string     `json:"company"`
	Notes    string     `json:"notes"`
	Status   string     `json:"status"`
	Price    float64    `json:"price"`
	HasPaid  bool       `json:"has_paid"`
	PaidDate *time.Time `json:"paid_date"`
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
		return
	}
	customer := &model.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Notes:    req.Notes,
		Status:   model.CustomerStatus(req.Status),
		Price:    req.Price,
		HasPaid:  req.HasPaid,
		PaidDate: req.PaidDate,
	}
	if err := h.svc.Create(c.Request.Context(), customer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}
	h.search.IndexCustomerAsync(customer)
	if h.events != nil {
		h.events.ProduceRecordEvent(c.Request.Context(), "customer.created", map[string]interface{}{
			"customer_id": int64(customer.ID),
			"name":        customer.Name,
			"status":      string(customer.Status),
		})
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	customer, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// List отдаёт видимое подмножество клиентов. Фасеты приходят в query:
// search, status, price_range, date_added, paid; отсутствующий фасет
// эквивалентен "all".
func (h *CustomerHandler) List(c *gin.Context) {
	f := filter.NewCustomerFilter()
	for _, name := range []string{filter.FacetStatus, filter.FacetPriceRange, filter.FacetDateAdded, filter.FacetPaid} {
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
		"customers": items,
		"total":     len(items),
	})
}

type updateCustomerRequest struct {
	Name     *string    `json:"name,omitempty"`
	Email    *string    `json:"email,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Company  *string    `json:"company,omitempty"`
	Notes    *string    `json:"notes,omitempty"`
	Status   *string    `json:"status,omitempty"`
	Price    *float64   `json:"price,omitempty"`
	HasPaid  *bool      `json:"has_paid,omitempty"`
	PaidDate *time.Time `json:"paid_date,omitempty"`
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	changes := make(map[string]interface{})
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		changes["email"] = *req.Email
	}
	if req.Phone != nil {
		changes["phone"] = *req.Phone
	}
	if req.Company != nil {
		changes["company"] = *req.Company
	}
	if req.Notes != nil {
		changes["notes"] = *req.Notes
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be non-negative"})
			return
		}
		changes["price"] = *req.Price
	}
	if req.HasPaid != nil {
		changes["has_paid"] = *req.HasPaid
	}
	if req.PaidDate != nil {
		changes["paid_date"] = *req.PaidDate
	}
	if len(changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no changes"})
		return
	}
	customer, err := h.svc.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	// Перечитываем полную сущность для индексации (Updates не освежает все поля)
	if full, _ := h.svc.GetByID(c.Request.Context(), id); full != nil {
		h.search.IndexCustomerAsync(full)
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	if h.events != nil {
		h.events.ProduceRecordEvent(c.Request.Context(), "customer.deleted", map[string]interface{}{
			"customer_id": int64(id),
		})
	}
	c.Status(http.StatusNoContent)
}
