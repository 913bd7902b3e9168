// Package view держит отображаемое множество записей в памяти и пересчитывает
// видимое подмножество из актуальной тройки (записи, фасеты, строка поиска).
// Пересчёт всегда полный — состояние между вызовами не накапливается, поэтому
// «протухший» фильтр невозможен. Порядок записей снапшота сохраняется.
package view

import (
	"sync"
	"time"

	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/model"
)

// VisibleCustomers — чистая проекция: подмножество records, проходящее фасеты
// и поиск, в исходном порядке. Записи не копируются вглубь и не мутируются.
func VisibleCustomers(records []model.Customer, f filter.CustomerFilter, search string, now time.Time) []model.Customer {
	tokens := filter.Tokenize(search)
	out := make([]model.Customer, 0, len(records))
	for i := range records {
		if filter.MatchCustomer(&records[i], f, tokens, now) {
			out = append(out, records[i])
		}
	}
	return out
}

// VisibleSuggestions — то же для очереди фидбека.
func VisibleSuggestions(records []model.Suggestion, f filter.SuggestionFilter, search string) []model.Suggestion {
	tokens := filter.Tokenize(search)
	out := make([]model.Suggestion, 0, len(records))
	for i := range records {
		if filter.MatchSuggestion(&records[i], f, tokens) {
			out = append(out, records[i])
		}
	}
	return out
}

// CustomerView — список клиентов: снапшот записей плюс активная спецификация
// фильтра. Мьютекс сериализует замену снапшота и чтения из HTTP-хэндлеров.
type CustomerView struct {
	mu      sync.RWMutex
	records []model.Customer
	filter  filter.CustomerFilter
	search  string
	now     func() time.Time
}

func NewCustomerView() *CustomerView {
	return &CustomerView{filter: filter.NewCustomerFilter(), now: time.Now}
}

// Replace подменяет снапшот целиком (свежая выборка из хранилища).
func (v *CustomerView) Replace(records []model.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = records
}

func (v *CustomerView) SetSearchText(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = s
}

func (v *CustomerView) SetFacet(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter.Set(name, value)
}

func (v *CustomerView) ResetFacets() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Reset()
	v.search = ""
}

// Visible пересчитывает видимое подмножество по текущему состоянию.
func (v *CustomerView) Visible() []model.Customer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return VisibleCustomers(v.records, v.filter, v.search, v.now())
}

// SuggestionView — очередь фидбека. Помимо фильтрации держит ссылку на
// «открытую» запись: после успешной смены статуса список и открытая карточка
// не должны расходиться.
type SuggestionView struct {
	mu         sync.RWMutex
	records    []model.Suggestion
	filter     filter.SuggestionFilter
	search     string
	selectedID uint64 // 0 — ничего не открыто
}

func NewSuggestionView() *SuggestionView {
	return &SuggestionView{filter: filter.NewSuggestionFilter()}
}

// Replace подменяет снапшот; выбор сбрасывается, если записи больше нет.
func (v *SuggestionView) Replace(records []model.Suggestion) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = records
	if v.selectedID != 0 && v.index(v.selectedID) < 0 {
		v.selectedID = 0
	}
}

func (v *SuggestionView) SetSearchText(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = s
}

func (v *SuggestionView) SetFacet(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter.Set(name, value)
}

func (v *SuggestionView) ResetFacets() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter.Reset()
	v.search = ""
}

func (v *SuggestionView) Visible() []model.Suggestion {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return VisibleSuggestions(v.records, v.filter, v.search)
}

// Find возвращает копию записи по id.
func (v *SuggestionView) Find(id uint64) (model.Suggestion, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if i := v.index(id); i >= 0 {
		return v.records[i], true
	}
	return model.Suggestion{}, false
}

// Select помечает запись открытой. Неизвестный id — false, выбор не меняется.
func (v *SuggestionView) Select(id uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.index(id) < 0 {
		return false
	}
	v.selectedID = id
	return true
}

// Selected возвращает копию открытой записи, если выбор есть.
func (v *SuggestionView) Selected() (model.Suggestion, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.selectedID == 0 {
		return model.Suggestion{}, false
	}
	if i := v.index(v.selectedID); i >= 0 {
		return v.records[i], true
	}
	return model.Suggestion{}, false
}

// ApplyStatus меняет статус записи на месте: та же идентичность, то же
// положение в списке. Открытая карточка видит то же значение автоматически,
// потому что читается из того же слайса.
func (v *SuggestionView) ApplyStatus(id uint64, status model.SuggestionStatus, updatedAt time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.index(id)
	if i < 0 {
		return false
	}
	v.records[i].Status = status
	v.records[i].UpdatedAt = updatedAt
	return true
}

// Upsert обновляет запись по id или добавляет её в конец (создание).
func (v *SuggestionView) Upsert(rec model.Suggestion) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if i := v.index(rec.ID); i >= 0 {
		v.records[i] = rec
		return
	}
	v.records = append(v.records, rec)
}

// Remove убирает запись из множества (хранилище сообщило об удалении).
func (v *SuggestionView) Remove(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := v.index(id)
	if i < 0 {
		return
	}
	v.records = append(v.records[:i], v.records[i+1:]...)
	if v.selectedID == id {
		v.selectedID = 0
	}
}

func (v *SuggestionView) index(id uint64) int {
	for i := range v.records {
		if v.records[i].ID == id {
			return i
		}
	}
	return -1
}
