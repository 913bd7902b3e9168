package service

import (
	"context"
	"errors"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/model"
	"gorm.io/gorm"
)

// InteractionService — сквозной CRUD журнала контактов с клиентом.
type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

func (s *InteractionService) Create(ctx context.Context, in *model.Interaction) error {
	return s.db.WithContext(ctx).Create(in).Error
}

func (s *InteractionService) GetByID(ctx context.Context, id uint64) (*model.Interaction, error) {
	var in model.Interaction
	if err := s.db.WithContext(ctx).First(&in, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	return &in, nil
}

func (s *InteractionService) List(ctx context.Context, customerID uint64) ([]model.Interaction, error) {
	var items []model.Interaction
	tx := s.db.WithContext(ctx).Model(&model.Interaction{})
	if customerID != 0 {
		tx = tx.Where("customer_id = ?", customerID)
	}
	if err := tx.Order("occurred_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InteractionService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Interaction, error) {
	var in model.Interaction
	if err := s.db.WithContext(ctx).First(&in, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&in).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *InteractionService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Interaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	return nil
}
