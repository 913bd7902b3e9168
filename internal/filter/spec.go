package filter

import (
	"fmt"
	"strings"
)

// All — значение фасета «без ограничения».
const All = "all"

// Имена фасетов списка клиентов.
const (
	FacetStatus     = "status"
	FacetPriceRange = "price_range"
	FacetDateAdded  = "date_added"
	FacetPaid       = "paid"
)

// Имена фасетов очереди фидбека (FacetStatus общий).
const (
	FacetType     = "type"
	FacetPriority = "priority"
)

// CustomerFilter — активные фасеты списка клиентов. Каждый фасет — либо All,
// либо одно конкретное значение/метка корзины.
type CustomerFilter struct {
	Status     string `json:"status"`
	PriceRange string `json:"price_range"`
	DateAdded  string `json:"date_added"`
	Paid       string `json:"paid"`
}

func NewCustomerFilter() CustomerFilter {
	return CustomerFilter{Status: All, PriceRange: All, DateAdded: All, Paid: All}
}

// Set устанавливает фасет по имени. Пустое значение эквивалентно All.
// Неизвестное имя — ошибка: множество фасетов закрыто.
func (f *CustomerFilter) Set(name, value string) error {
	if value == "" {
		value = All
	}
	switch name {
	case FacetStatus:
		f.Status = value
	case FacetPriceRange:
		f.PriceRange = value
	case FacetDateAdded:
		f.DateAdded = value
	case FacetPaid:
		f.Paid = value
	default:
		return fmt.Errorf("unknown customer facet %q", name)
	}
	return nil
}

func (f *CustomerFilter) Reset() {
	*f = NewCustomerFilter()
}

// SuggestionFilter — активные фасеты очереди фидбека.
type SuggestionFilter struct {
	Status   string `json:"status"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

func NewSuggestionFilter() SuggestionFilter {
	return SuggestionFilter{Status: All, Type: All, Priority: All}
}

func (f *SuggestionFilter) Set(name, value string) error {
	if value == "" {
		value = All
	}
	switch name {
	case FacetStatus:
		f.Status = value
	case FacetType:
		f.Type = value
	case FacetPriority:
		f.Priority = value
	default:
		return fmt.Errorf("unknown suggestion facet %q", name)
	}
	return nil
}

func (f *SuggestionFilter) Reset() {
	*f = NewSuggestionFilter()
}

// Tokenize приводит строку поиска к нижнему регистру и режет по пробельным
// символам. Пустая строка даёт пустой список токенов (совпадает всё).
func Tokenize(search string) []string {
	return strings.Fields(strings.ToLower(search))
}
