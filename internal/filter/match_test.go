package filter

import (
	"testing"
	"time"

	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/stretchr/testify/assert"
)

var matchNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCustomer() *model.Customer {
	return &model.Customer{
		ID:        1,
		Name:      "John Smith",
		Email:     "john@techcorp.io",
		Company:   "Tech Corp",
		Status:    model.CustomerStatusActive,
		Price:     300,
		HasPaid:   true,
		CreatedAt: matchNow.AddDate(0, 0, -3),
	}
}

// AND по токенам, OR по полям: каждый токен обязан найтись хотя бы в одном
// поисковом поле.
func TestMatchCustomerSearch(t *testing.T) {
	c := testCustomer()
	f := NewCustomerFilter()

	assert.True(t, MatchCustomer(c, f, Tokenize("john corp"), matchNow))
	assert.False(t, MatchCustomer(c, f, Tokenize("john nomatch"), matchNow))
	assert.True(t, MatchCustomer(c, f, Tokenize("JOHN"), matchNow))
	assert.True(t, MatchCustomer(c, f, Tokenize(""), matchNow))
	assert.True(t, MatchCustomer(c, f, Tokenize("   "), matchNow))
}

// Отсутствующие необязательные поля — пустые строки: не падают и не дают
// ложного совпадения.
func TestMatchCustomerMissingFields(t *testing.T) {
	c := &model.Customer{Name: "Ann", CreatedAt: matchNow}
	f := NewCustomerFilter()

	assert.True(t, MatchCustomer(c, f, Tokenize("ann"), matchNow))
	assert.False(t, MatchCustomer(c, f, Tokenize("corp"), matchNow))
}

func TestMatchCustomerFacets(t *testing.T) {
	c := testCustomer()

	f := NewCustomerFilter()
	f.Status = "active"
	assert.True(t, MatchCustomer(c, f, nil, matchNow))
	f.Status = "inactive"
	assert.False(t, MatchCustomer(c, f, nil, matchNow))

	// фасет оплаты — производный от has_paid
	f = NewCustomerFilter()
	f.Paid = model.PaymentPaid
	assert.True(t, MatchCustomer(c, f, nil, matchNow))
	c.HasPaid = false
	assert.False(t, MatchCustomer(c, f, nil, matchNow))
	f.Paid = model.PaymentPending
	assert.True(t, MatchCustomer(c, f, nil, matchNow))

	// корзина цены
	f = NewCustomerFilter()
	f.PriceRange = PriceBucketMid
	assert.True(t, MatchCustomer(c, f, nil, matchNow))
	f.PriceRange = PriceBucketTop
	assert.False(t, MatchCustomer(c, f, nil, matchNow))

	// корзина давности
	f = NewCustomerFilter()
	f.DateAdded = BucketThisWeek
	assert.True(t, MatchCustomer(c, f, nil, matchNow))
	f.DateAdded = BucketToday
	assert.False(t, MatchCustomer(c, f, nil, matchNow))
}

func TestMatchCustomerIdempotent(t *testing.T) {
	c := testCustomer()
	f := NewCustomerFilter()
	f.Status = "active"
	tokens := Tokenize("john")

	first := MatchCustomer(c, f, tokens, matchNow)
	second := MatchCustomer(c, f, tokens, matchNow)
	assert.Equal(t, first, second)
	assert.Equal(t, "John Smith", c.Name, "предикат не должен мутировать запись")
}

func TestMatchSuggestion(t *testing.T) {
	sg := &model.Suggestion{
		ID:            7,
		Type:          model.FeedbackTypeBug,
		Status:        "pending",
		Priority:      model.PriorityHigh,
		Title:         "Crash on login",
		Description:   "App crashes when password contains emoji",
		SubmitterName: "Maria",
	}

	f := NewSuggestionFilter()
	assert.True(t, MatchSuggestion(sg, f, Tokenize("crash emoji")))
	assert.False(t, MatchSuggestion(sg, f, Tokenize("crash billing")))

	f.Status = "pending"
	f.Type = "bug_report"
	f.Priority = "high"
	assert.True(t, MatchSuggestion(sg, f, nil))

	f.Priority = "low"
	assert.False(t, MatchSuggestion(sg, f, nil))
}

func TestFilterSetAndReset(t *testing.T) {
	f := NewCustomerFilter()
	assert.NoError(t, f.Set(FacetStatus, "active"))
	assert.NoError(t, f.Set(FacetPaid, "")) // пустое значение = all
	assert.Equal(t, All, f.Paid)
	assert.Error(t, f.Set("region", "emea"))

	f.Reset()
	assert.Equal(t, NewCustomerFilter(), f)
	f.Reset() // повторный сброс эквивалентен одному
	assert.Equal(t, NewCustomerFilter(), f)

	sf := NewSuggestionFilter()
	assert.NoError(t, sf.Set(FacetType, "bug_report"))
	assert.Error(t, sf.Set(FacetPriceRange, PriceBucketLow))
}
