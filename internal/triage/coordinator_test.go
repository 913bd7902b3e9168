package triage

import (
	"context"
	"testing"
	"time"

	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/model"
	"github.com/psds-microservice/crm-service/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore считает записи и умеет имитировать сбой хранилища.
type fakeStore struct {
	calls   int
	failErr error
}

func (f *fakeStore) UpdateField(ctx context.Context, table string, id uint64, field string, value any) error {
	f.calls++
	return f.failErr
}

type fakeProducer struct {
	events []string
}

func (f *fakeProducer) ProduceRecordEvent(ctx context.Context, event string, payload map[string]interface{}) {
	f.events = append(f.events, event)
}

func newTestView() *view.SuggestionView {
	v := view.NewSuggestionView()
	v.Replace([]model.Suggestion{
		{ID: 1, Type: model.FeedbackTypeBug, Status: "pending", Title: "Crash on login"},
		{ID: 2, Type: model.FeedbackTypeFeature, Status: "pending", Title: "Dark mode"},
	})
	return v
}

func TestApplyTransitionSuccess(t *testing.T) {
	st := &fakeStore{}
	v := newTestView()
	require.True(t, v.Select(1))
	events := &fakeProducer{}
	c := NewCoordinator(st, v, events)
	c.now = func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }

	rec, err := c.ApplyTransition(context.Background(), 1, "fixed", model.FeedbackTypeBug)
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionStatus("fixed"), rec.Status)
	assert.Equal(t, 1, st.calls)

	// память согласована: и список, и открытая карточка видят новый статус
	inList, ok := v.Find(1)
	require.True(t, ok)
	assert.Equal(t, model.SuggestionStatus("fixed"), inList.Status)
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, model.SuggestionStatus("fixed"), sel.Status)

	assert.Equal(t, []string{"suggestion.status_changed"}, events.events)
}

// Каждый статус из реестра применим к записи своего типа.
func TestApplyTransitionAcceptsAllWorkflowStatuses(t *testing.T) {
	for _, status := range []model.SuggestionStatus{
		"pending", "under_investigation", "in_progress", "fixed", "wont_fix", "cannot_reproduce",
	} {
		st := &fakeStore{}
		c := NewCoordinator(st, newTestView(), nil)
		_, err := c.ApplyTransition(context.Background(), 1, status, model.FeedbackTypeBug)
		assert.NoError(t, err, "status %s", status)
	}
}

// Чужой статус отклоняется до какого-либо обращения к хранилищу.
func TestApplyTransitionInvalidStatus(t *testing.T) {
	st := &fakeStore{}
	v := newTestView()
	c := NewCoordinator(st, v, nil)

	// "fixed" принадлежит workflow bug_report, не feature_request
	_, err := c.ApplyTransition(context.Background(), 2, "fixed", model.FeedbackTypeFeature)
	require.ErrorIs(t, err, errs.ErrInvalidStatus)
	assert.Equal(t, 0, st.calls)

	rec, _ := v.Find(2)
	assert.Equal(t, model.SuggestionStatus("pending"), rec.Status)
}

func TestApplyTransitionUnknownWorkflow(t *testing.T) {
	st := &fakeStore{}
	c := NewCoordinator(st, newTestView(), nil)

	_, err := c.ApplyTransition(context.Background(), 1, "pending", "complaint")
	require.ErrorIs(t, err, errs.ErrUnknownWorkflow)
	assert.Equal(t, 0, st.calls)
}

func TestApplyTransitionRecordNotFound(t *testing.T) {
	st := &fakeStore{}
	c := NewCoordinator(st, newTestView(), nil)

	_, err := c.ApplyTransition(context.Background(), 404, "fixed", model.FeedbackTypeBug)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
	assert.Equal(t, 0, st.calls)
}

// Переданный тип обязан совпадать с типом записи: статус нельзя провалидировать
// по чужому workflow.
func TestApplyTransitionTypeMismatch(t *testing.T) {
	st := &fakeStore{}
	c := NewCoordinator(st, newTestView(), nil)

	// запись 2 — feature_request; "in_progress" валиден для bug_report
	_, err := c.ApplyTransition(context.Background(), 2, "in_progress", model.FeedbackTypeBug)
	require.ErrorIs(t, err, errs.ErrInvalidStatus)
	assert.Equal(t, 0, st.calls)
}

// Провал записи в хранилище не оставляет следов в памяти: прежний статус
// остаётся видимым и в списке, и в открытой карточке.
func TestApplyTransitionStoreFailure(t *testing.T) {
	st := &fakeStore{failErr: errs.ErrStoreUnavailable}
	v := newTestView()
	require.True(t, v.Select(1))
	events := &fakeProducer{}
	c := NewCoordinator(st, v, events)

	_, err := c.ApplyTransition(context.Background(), 1, "fixed", model.FeedbackTypeBug)
	require.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.Equal(t, 1, st.calls)

	rec, _ := v.Find(1)
	assert.Equal(t, model.SuggestionStatus("pending"), rec.Status)
	sel, _ := v.Selected()
	assert.Equal(t, model.SuggestionStatus("pending"), sel.Status)
	assert.Empty(t, events.events)
}

// Запись могла исчезнуть между чтением и записью: хранилище сообщает
// RowsAffected==0, координатор транслирует ErrRecordNotFound.
func TestApplyTransitionVanishedRecord(t *testing.T) {
	st := &fakeStore{failErr: errs.ErrRecordNotFound}
	v := newTestView()
	c := NewCoordinator(st, v, nil)

	_, err := c.ApplyTransition(context.Background(), 1, "fixed", model.FeedbackTypeBug)
	require.ErrorIs(t, err, errs.ErrRecordNotFound)

	rec, _ := v.Find(1)
	assert.Equal(t, model.SuggestionStatus("pending"), rec.Status)
}
