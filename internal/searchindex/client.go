package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/psds-microservice/crm-service/internal/model"
)

// Client отправляет записи CRM в search-service для индексации (best-effort,
// не блокирует API).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient возвращает клиент. Если baseURL пустой, вызовы Index* — no-op.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// IndexCustomerPayload — тело POST /search/index/customer.
type IndexCustomerPayload struct {
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
}

// IndexSuggestionPayload — тело POST /search/index/suggestion.
type IndexSuggestionPayload struct {
	SuggestionID   int64  `json:"suggestion_id"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SubmitterName  string `json:"submitter_name"`
	SubmitterEmail string `json:"submitter_email"`
}

// IndexCustomer отправляет клиента в search-service. Вызывать в goroutine после Create/Update.
func (c *Client) IndexCustomer(ctx context.Context, cu *model.Customer) {
	payload := IndexCustomerPayload{
		CustomerID: int64(cu.ID),
		Name:       cu.Name,
		Email:      cu.Email,
		Phone:      cu.Phone,
		Company:    cu.Company,
		Notes:      cu.Notes,
		Status:     string(cu.Status),
	}
	c.post(ctx, "/search/index/customer", payload)
}

// IndexSuggestion отправляет запись фидбека в search-service.
func (c *Client) IndexSuggestion(ctx context.Context, sg *model.Suggestion) {
	payload := IndexSuggestionPayload{
		SuggestionID:   int64(sg.ID),
		Type:           string(sg.Type),
		Status:         string(sg.Status),
		Priority:       string(sg.Priority),
		Title:          sg.Title,
		Description:    sg.Description,
		SubmitterName:  sg.SubmitterName,
		SubmitterEmail: sg.SubmitterEmail,
	}
	c.post(ctx, "/search/index/suggestion", payload)
}

// IndexCustomerAsync вызывает IndexCustomer в отдельной горутине (не блокирует ответ API).
func (c *Client) IndexCustomerAsync(cu *model.Customer) {
	if c.baseURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.IndexCustomer(ctx, cu)
	}()
}

// IndexSuggestionAsync — то же для записи фидбека.
func (c *Client) IndexSuggestionAsync(sg *model.Suggestion) {
	if c.baseURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.IndexSuggestion(ctx, sg)
	}()
}

func (c *Client) post(ctx context.Context, path string, payload any) {
	if c.baseURL == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("searchindex: marshal: %v", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		log.Printf("searchindex: new request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("searchindex: request: %v", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("searchindex: status %d for %s", resp.StatusCode, path)
		return
	}
}
