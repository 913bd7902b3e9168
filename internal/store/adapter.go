// Package store — адаптер хранилища записей поверх GORM: упорядоченный
// снапшот коллекции и точечное обновление одного поля. Всё остальное CRUD
// сервисы делают напрямую через *gorm.DB.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/psds-microservice/crm-service/internal/errs"
	"gorm.io/gorm"
)

// Имена коллекций (таблиц) в терминах адаптера.
const (
	TableCustomers   = "customers"
	TableSuggestions = "suggestions"
)

type Adapter struct {
	db *gorm.DB
}

func NewAdapter(db *gorm.DB) *Adapter {
	return &Adapter{db: db}
}

// Snapshot читает коллекцию целиком в dest (указатель на слайс сущностей),
// упорядочив по orderBy. Сбой БД заворачивается в errs.ErrStoreUnavailable —
// вызывающий обязан оставить последний удачный снапшот на месте.
func (a *Adapter) Snapshot(ctx context.Context, dest any, table, orderBy string, desc bool) error {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	if err := a.db.WithContext(ctx).Table(table).Order(orderBy + " " + dir).Find(dest).Error; err != nil {
		return fmt.Errorf("%w: snapshot %s: %v", errs.ErrStoreUnavailable, table, err)
	}
	return nil
}

// UpdateField записывает одно поле записи и штампует updated_at на стороне
// сервиса. Ноль затронутых строк — запись исчезла между чтением и записью.
func (a *Adapter) UpdateField(ctx context.Context, table string, id uint64, field string, value any) error {
	res := a.db.WithContext(ctx).Table(table).Where("id = ?", id).
		Updates(map[string]any{field: value, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("%w: update %s.%s: %v", errs.ErrStoreUnavailable, table, field, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrRecordNotFound
	}
	return nil
}
