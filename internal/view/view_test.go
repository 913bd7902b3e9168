package view

import (
	"testing"
	"time"

	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var viewNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testCustomers() []model.Customer {
	return []model.Customer{
		{ID: 1, Name: "Alice", Price: 50, Status: model.CustomerStatusActive, CreatedAt: viewNow.AddDate(0, 0, -2)},
		{ID: 2, Name: "Bob", Price: 300, Status: model.CustomerStatusActive, CreatedAt: viewNow.AddDate(0, 0, -20)},
		{ID: 3, Name: "Carol", Price: 1500, Status: model.CustomerStatusInactive, CreatedAt: viewNow.AddDate(0, 0, -200)},
	}
}

// Все фасеты all и пустой поиск — тождественная проекция: тот же состав,
// тот же порядок.
func TestVisibleCustomersIdentity(t *testing.T) {
	records := testCustomers()
	got := VisibleCustomers(records, filter.NewCustomerFilter(), "", viewNow)
	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i].ID, got[i].ID)
	}
}

func TestVisibleCustomersPriceRange(t *testing.T) {
	f := filter.NewCustomerFilter()
	f.PriceRange = filter.PriceBucketMid

	got := VisibleCustomers(testCustomers(), f, "", viewNow)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)
}

func TestVisibleCustomersEmptyInput(t *testing.T) {
	got := VisibleCustomers(nil, filter.NewCustomerFilter(), "", viewNow)
	assert.Empty(t, got)
}

// Фильтрация не пересортировывает: видимое подмножество идёт в порядке
// исходного снапшота.
func TestVisibleCustomersPreservesOrder(t *testing.T) {
	f := filter.NewCustomerFilter()
	f.Status = "active"

	got := VisibleCustomers(testCustomers(), f, "", viewNow)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].ID)
	assert.Equal(t, uint64(2), got[1].ID)
}

func TestCustomerViewRecompute(t *testing.T) {
	v := NewCustomerView()
	v.now = func() time.Time { return viewNow }
	v.Replace(testCustomers())

	require.NoError(t, v.SetFacet(filter.FacetStatus, "active"))
	v.SetSearchText("bob")
	got := v.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)

	// сброс возвращает полное множество в исходном порядке
	v.ResetFacets()
	got = v.Visible()
	require.Len(t, got, 3)
	assert.Equal(t, uint64(1), got[0].ID)

	assert.Error(t, v.SetFacet("tier", "gold"))
}

func testSuggestions() []model.Suggestion {
	return []model.Suggestion{
		{ID: 10, Type: model.FeedbackTypeBug, Status: "pending", Priority: model.PriorityHigh, Title: "Crash on login"},
		{ID: 11, Type: model.FeedbackTypeFeature, Status: "planned", Priority: model.PriorityLow, Title: "Dark mode"},
		{ID: 12, Type: model.FeedbackTypeGeneral, Status: "under_review", Priority: model.PriorityMedium, Title: "Love the app"},
	}
}

func TestSuggestionViewFacets(t *testing.T) {
	v := NewSuggestionView()
	v.Replace(testSuggestions())

	require.NoError(t, v.SetFacet(filter.FacetType, "bug_report"))
	got := v.Visible()
	require.Len(t, got, 1)
	assert.Equal(t, uint64(10), got[0].ID)

	v.ResetFacets()
	assert.Len(t, v.Visible(), 3)
}

// После ApplyStatus список и открытая карточка видят один и тот же статус.
func TestSuggestionViewApplyStatusReconciles(t *testing.T) {
	v := NewSuggestionView()
	v.Replace(testSuggestions())
	require.True(t, v.Select(10))

	updatedAt := viewNow.Add(time.Minute)
	require.True(t, v.ApplyStatus(10, "fixed", updatedAt))

	rec, ok := v.Find(10)
	require.True(t, ok)
	assert.Equal(t, model.SuggestionStatus("fixed"), rec.Status)

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, model.SuggestionStatus("fixed"), sel.Status)
	assert.Equal(t, updatedAt, sel.UpdatedAt)

	assert.False(t, v.ApplyStatus(999, "fixed", updatedAt))
}

func TestSuggestionViewReplaceDropsStaleSelection(t *testing.T) {
	v := NewSuggestionView()
	v.Replace(testSuggestions())
	require.True(t, v.Select(12))

	// свежий снапшот без записи 12 — выбор сбрасывается
	v.Replace(testSuggestions()[:2])
	_, ok := v.Selected()
	assert.False(t, ok)
}

func TestSuggestionViewUpsertAndRemove(t *testing.T) {
	v := NewSuggestionView()
	v.Replace(testSuggestions())

	v.Upsert(model.Suggestion{ID: 13, Type: model.FeedbackTypeBug, Status: "pending", Title: "New one"})
	assert.Len(t, v.Visible(), 4)

	v.Upsert(model.Suggestion{ID: 13, Type: model.FeedbackTypeBug, Status: "in_progress", Title: "New one"})
	rec, ok := v.Find(13)
	require.True(t, ok)
	assert.Equal(t, model.SuggestionStatus("in_progress"), rec.Status)

	require.True(t, v.Select(13))
	v.Remove(13)
	assert.Len(t, v.Visible(), 3)
	_, ok = v.Selected()
	assert.False(t, ok)
}

func TestSuggestionViewSelectUnknown(t *testing.T) {
	v := NewSuggestionView()
	v.Replace(testSuggestions())
	assert.False(t, v.Select(404))
	_, ok := v.Selected()
	assert.False(t, ok)
}
