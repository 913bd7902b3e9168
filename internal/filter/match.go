package filter

import (
	"strings"
	"time"

	"github.com/psds-microservice/crm-service/internal/model"
)

// MatchCustomer — чистый предикат: проходит ли клиент активные фасеты и поиск.
// Конъюнкция с коротким замыканием на первом непройденном условии; запись
// никогда не мутируется. now нужен корзине давности.
func MatchCustomer(c *model.Customer, f CustomerFilter, tokens []string, now time.Time) bool {
	if !searchMatches(tokens, c.Name, c.Email, c.Phone, c.Company, c.Notes) {
		return false
	}
	if f.Status != All && string(c.Status) != f.Status {
		return false
	}
	if f.Paid != All && c.PaymentStatus() != f.Paid {
		return false
	}
	if f.PriceRange != All && PriceBucket(c.Price) != f.PriceRange {
		return false
	}
	if f.DateAdded != All && RecencyBucket(c.CreatedAt, now) != f.DateAdded {
		return false
	}
	return true
}

// MatchSuggestion — предикат очереди фидбека. Поисковые поля: заголовок,
// описание, имя и почта отправителя.
func MatchSuggestion(s *model.Suggestion, f SuggestionFilter, tokens []string) bool {
	if !searchMatches(tokens, s.Title, s.Description, s.SubmitterName, s.SubmitterEmail) {
		return false
	}
	if f.Status != All && string(s.Status) != f.Status {
		return false
	}
	if f.Type != All && string(s.Type) != f.Type {
		return false
	}
	if f.Priority != All && string(s.Priority) != f.Priority {
		return false
	}
	return true
}

// searchMatches: каждый токен должен быть подстрокой хотя бы одного поля
// (AND по токенам, OR по полям). Отсутствующие необязательные поля приходят
// пустыми строками и просто ни с чем не совпадают.
func searchMatches(tokens []string, fields ...string) bool {
	if len(tokens) == 0 {
		return true
	}
	lowered := make([]string, len(fields))
	for i, f := range fields {
		lowered[i] = strings.ToLower(f)
	}
nextToken:
	for _, tok := range tokens {
		for _, f := range lowered {
			if strings.Contains(f, tok) {
				continue nextToken
			}
		}
		return false
	}
	return true
}
