package service

import (
	"context"
	"errors"
	"sync"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/filter"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/store"
	"github.com/psds-microservice/crm-service/internal/view"
	"gorm.io/gorm"
)

// CustomerServicer — интерфейс для хэндлеров (Dependency Inversion).
type CustomerServicer interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByID(ctx context.Context, id uint64) (*model.Customer, error)
	List(ctx context.Context, f filter.CustomerFilter, search string) ([]model.Customer, error)
	Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Customer, error)
	Delete(ctx context.Context, id uint64) error
}

type CustomerService struct {
	db      *gorm.DB
	adapter *store.Adapter

	// mu сериализует пару «выставить фасеты — снять видимое» на общем view.
	mu   sync.Mutex
	view *view.CustomerView
}

func NewCustomerService(db *gorm.DB, adapter *store.Adapter) *CustomerService {
	return &CustomerService{db: db, adapter: adapter, view: view.NewCustomerView()}
}

func (s *CustomerService) Create(ctx context.Context, c *model.Customer) error {
	if c.Status == "" {
		c.Status = model.CustomerStatusActive
	}
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *CustomerService) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	var c model.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List делает одноразовую выборку всей коллекции (порядок — created_at DESC,
// как назначает хранилище) и пересчитывает видимое подмножество по фасетам и
// строке поиска. Фильтрация порядок не меняет.
func (s *CustomerService) List(ctx context.Context, f filter.CustomerFilter, search string) ([]model.Customer, error) {
	var records []model.Customer
	if err := s.adapter.Snapshot(ctx, &records, store.TableCustomers, "created_at", true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Replace(records)
	s.view.ResetFacets()
	s.view.SetSearchText(search)
	for name, value := range map[string]string{
		filter.FacetStatus:     f.Status,
		filter.FacetPriceRange: f.PriceRange,
		filter.FacetDateAdded:  f.DateAdded,
		filter.FacetPaid:       f.Paid,
	} {
		if err := s.view.SetFacet(name, value); err != nil {
			return nil, err
		}
	}
	return s.view.Visible(), nil
}

func (s *CustomerService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Customer, error) {
	var c model.Customer
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&c).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	return nil
}
