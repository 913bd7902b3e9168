package service

import (
	"context"
	"errors"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/model"
	"gorm.io/gorm"
)

// JobService — сквозной CRUD работ по клиентам.
type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func (s *JobService) Create(ctx context.Context, j *model.Job) error {
	if j.Status == "" {
		j.Status = model.JobStatusScheduled
	}
	return s.db.WithContext(ctx).Create(j).Error
}

func (s *JobService) GetByID(ctx context.Context, id uint64) (*model.Job, error) {
	var j model.Job
	if err := s.db.WithContext(ctx).First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (s *JobService) List(ctx context.Context, customerID uint64) ([]model.Job, error) {
	var items []model.Job
	tx := s.db.WithContext(ctx).Model(&model.Job{})
	if customerID != 0 {
		tx = tx.Where("customer_id = ?", customerID)
	}
	if err := tx.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *JobService) Update(ctx context.Context, id uint64, changes map[string]interface{}) (*model.Job, error) {
	var j model.Job
	if err := s.db.WithContext(ctx).First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRecordNotFound
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&j).Updates(changes).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (s *JobService) Delete(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Delete(&model.Job{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	return nil
}
