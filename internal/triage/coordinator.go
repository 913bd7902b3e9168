// Package triage валидирует и применяет смену статуса записи фидбека:
// проверка по реестру workflow, сквозная запись в хранилище и согласование
// с множеством записей в памяти.
package triage

import (
	"context"
	"fmt"
	"time"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/kafka"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/store"
	"github.com/psds-microservice/crm-service/internal/view"
	"github.com/psds-microservice/crm-service/internal/workflow"
)

// StatusStore — срез адаптера хранилища, нужный координатору.
type StatusStore interface {
	UpdateField(ctx context.Context, table string, id uint64, field string, value any) error
}

// Coordinator применяет переходы статусов. Либо запись в хранилище и
// обновление памяти проходят вместе, либо не происходит ничего: никакого
// оптимистичного обновления до подтверждения записи. Повторы — забота
// вызывающего, координатор не ретраит.
type Coordinator struct {
	store  StatusStore
	view   *view.SuggestionView
	events kafka.RecordEventProducer // может быть nil
	now    func() time.Time
}

func NewCoordinator(st StatusStore, v *view.SuggestionView, events kafka.RecordEventProducer) *Coordinator {
	return &Coordinator{store: st, view: v, events: events, now: time.Now}
}

// ApplyTransition переводит запись id в newStatus в рамках workflow типа typ.
// Порядок проверок фиксирован: сначала легальность статуса (при провале запись
// в БД не выполняется вовсе), затем существование записи.
func (c *Coordinator) ApplyTransition(ctx context.Context, id uint64, newStatus model.SuggestionStatus, typ model.FeedbackType) (*model.Suggestion, error) {
	if _, err := workflow.StatusesFor(typ); err != nil {
		return nil, err
	}
	if !workflow.IsValid(typ, newStatus) {
		return nil, fmt.Errorf("%w: %q not in %s workflow", errs.ErrInvalidStatus, newStatus, typ)
	}

	rec, ok := c.view.Find(id)
	if !ok {
		return nil, errs.ErrRecordNotFound
	}
	// Тип неизменяем после создания; расхождение с переданным typ означает,
	// что статус валидировался против чужого workflow.
	if rec.Type != typ {
		return nil, fmt.Errorf("%w: record %d has type %s, not %s", errs.ErrInvalidStatus, id, rec.Type, typ)
	}

	if err := c.store.UpdateField(ctx, store.TableSuggestions, id, "status", string(newStatus)); err != nil {
		// Память не трогаем: прежний статус остаётся видимым.
		return nil, err
	}

	updatedAt := c.now()
	c.view.ApplyStatus(id, newStatus, updatedAt)
	rec.Status = newStatus
	rec.UpdatedAt = updatedAt

	if c.events != nil {
		c.events.ProduceRecordEvent(ctx, "suggestion.status_changed", map[string]interface{}{
			"suggestion_id": int64(rec.ID),
			"type":          string(rec.Type),
			"status":        string(rec.Status),
			"title":         rec.Title,
		})
	}
	return &rec, nil
}
