package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/kafka"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/store"
	"github.com/psds-microservice/crm-service/internal/triage"
	"github.com/psds-microservice/crm-service/internal/view"
	"github.com/psds-microservice/crm-service/internal/workflow"
	"gorm.io/gorm"
)

// SuggestionServicer — интерфейс для хэндлеров.
type SuggestionServicer interface {
	Create(ctx context.Context, sg *model.Suggestion) error
	Open(ctx context.Context, id uint64) (*model.Suggestion, error)
	List(ctx context.Context, f filter.SuggestionFilter, search string) ([]model.Suggestion, error)
	UpdateStatus(ctx context.Context, id uint64, status model.SuggestionStatus) (*model.Suggestion, error)
	Delete(ctx context.Context, id uint64) error
	Refresh(ctx context.Context) error
}

// SuggestionService держит очередь фидбека в памяти (one-shot выборка с
// ручным Refresh) и проводит смены статусов через координатор triage.
type SuggestionService struct {
	db      *gorm.DB
	adapter *store.Adapter
	events  kafka.RecordEventProducer

	mu     sync.Mutex
	view   *view.SuggestionView
	coord  *triage.Coordinator
	loaded bool
}

func NewSuggestionService(db *gorm.DB, adapter *store.Adapter, events kafka.RecordEventProducer) *SuggestionService {
	v := view.NewSuggestionView()
	return &SuggestionService{
		db:      db,
		adapter: adapter,
		events:  events,
		view:    v,
		coord:   triage.NewCoordinator(adapter, v, events),
	}
}

// Refresh перечитывает снапшот очереди из хранилища. При сбое выборки
// последнее удачное множество остаётся на месте.
func (s *SuggestionService) Refresh(ctx context.Context) error {
	var records []model.Suggestion
	if err := s.adapter.Snapshot(ctx, &records, store.TableSuggestions, "created_at", true); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Replace(records)
	s.loaded = true
	return nil
}

func (s *SuggestionService) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if loaded {
		return nil
	}
	return s.Refresh(ctx)
}

// Create валидирует тип и статус по реестру workflow. Пустой статус — стартовый
// шаг workflow типа, пустой приоритет — medium.
func (s *SuggestionService) Create(ctx context.Context, sg *model.Suggestion) error {
	if sg.Status == "" {
		initial, err := workflow.Initial(sg.Type)
		if err != nil {
			return err
		}
		sg.Status = initial
	} else if !workflow.IsValid(sg.Type, sg.Status) {
		if _, err := workflow.StatusesFor(sg.Type); err != nil {
			return err
		}
		return fmt.Errorf("%w: %q not in %s workflow", errs.ErrInvalidStatus, sg.Status, sg.Type)
	}
	if sg.Priority == "" {
		sg.Priority = model.PriorityMedium
	}
	if err := s.db.WithContext(ctx).Create(sg).Error; err != nil {
		return err
	}
	s.mu.Lock()
	if s.loaded {
		s.view.Upsert(*sg)
	}
	s.mu.Unlock()
	if s.events != nil {
		s.events.ProduceRecordEvent(ctx, "suggestion.created", map[string]interface{}{
			"suggestion_id": int64(sg.ID),
			"type":          string(sg.Type),
			"status":        string(sg.Status),
			"title":         sg.Title,
		})
	}
	return nil
}

// Open возвращает запись и помечает её «открытой» во view: после успешного
// перехода статус в списке и в открытой карточке обязан совпадать.
func (s *SuggestionService) Open(ctx context.Context, id uint64) (*model.Suggestion, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.view.Select(id) {
		return nil, errs.ErrRecordNotFound
	}
	rec, _ := s.view.Selected()
	return &rec, nil
}

// List применяет фасеты и поиск запроса к текущему множеству в памяти.
func (s *SuggestionService) List(ctx context.Context, f filter.SuggestionFilter, search string) ([]model.Suggestion, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ResetFacets()
	s.view.SetSearchText(search)
	for name, value := range map[string]string{
		filter.FacetStatus:   f.Status,
		filter.FacetType:     f.Type,
		filter.FacetPriority: f.Priority,
	} {
		if err := s.view.SetFacet(name, value); err != nil {
			return nil, err
		}
	}
	return s.view.Visible(), nil
}

// UpdateStatus проводит переход через координатор. Тип берётся из записи в
// памяти — он неизменяем с момента создания.
func (s *SuggestionService) UpdateStatus(ctx context.Context, id uint64, status model.SuggestionStatus) (*model.Suggestion, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	rec, ok := s.view.Find(id)
	s.mu.Unlock()
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	return s.coord.ApplyTransition(ctx, id, status, rec.Type)
}

func (s *SuggestionService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Suggestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	s.mu.Lock()
	s.view.Remove(id)
	s.mu.Unlock()
	if s.events != nil {
		s.events.ProduceRecordEvent(ctx, "suggestion.deleted", map[string]interface{}{
			"suggestion_id": int64(id),
		})
	}
	return nil
}
