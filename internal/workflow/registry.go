package workflow

import (
	"github.com/psds-microservice/crm-service/internal/errs"
	"github.com/psds-microservice/crm-service/internal/model"
)

// Status — один шаг workflow: машинное значение, подпись для UI и признак
// терминальности. Терминальных шагов в workflow несколько — это взаимо-
// исключающие исходы, а не единственное конечное состояние.
type Status struct {
	Value    model.SuggestionStatus `json:"value"`
	Label    string                 `json:"label"`
	Terminal bool                   `json:"terminal"`
}

// Порядок в списках — порядок показа, а не строгая линейная прогрессия.
var workflows = map[model.FeedbackType][]Status{
	model.FeedbackTypeBug: {
		{Value: "pending", Label: "Pending"},
		{Value: "under_investigation", Label: "Under Investigation"},
		{Value: "in_progress", Label: "In Progress"},
		{Value: "fixed", Label: "Fixed", Terminal: true},
		{Value: "wont_fix", Label: "Won't Fix", Terminal: true},
		{Value: "cannot_reproduce", Label: "Cannot Reproduce", Terminal: true},
	},
	model.FeedbackTypeFeature: {
		{Value: "pending", Label: "Pending"},
		{Value: "under_review", Label: "Under Review"},
		{Value: "planned", Label: "Planned"},
		{Value: "in_development", Label: "In Development"},
		{Value: "completed", Label: "Completed", Terminal: true},
		{Value: "declined", Label: "Declined", Terminal: true},
	},
	model.FeedbackTypeGeneral: {
		{Value: "pending", Label: "Pending"},
		{Value: "under_review", Label: "Under Review"},
		{Value: "acknowledged", Label: "Acknowledged", Terminal: true},
		{Value: "addressed", Label: "Addressed", Terminal: true},
		{Value: "declined", Label: "Declined", Terminal: true},
	},
}

// StatusesFor возвращает упорядоченный workflow для типа фидбека.
// Для неизвестного типа — errs.ErrUnknownWorkflow, никогда не пустой список.
func StatusesFor(t model.FeedbackType) ([]Status, error) {
	wf, ok := workflows[t]
	if !ok {
		return nil, errs.ErrUnknownWorkflow
	}
	out := make([]Status, len(wf))
	copy(out, wf)
	return out, nil
}

// IsValid сообщает, входит ли статус в workflow типа t. Совпадение написания
// со статусом другого workflow значения не имеет.
func IsValid(t model.FeedbackType, s model.SuggestionStatus) bool {
	for _, st := range workflows[t] {
		if st.Value == s {
			return true
		}
	}
	return false
}

// Initial возвращает первый статус workflow (стартовое состояние новой записи).
func Initial(t model.FeedbackType) (model.SuggestionStatus, error) {
	wf, ok := workflows[t]
	if !ok {
		return "", errs.ErrUnknownWorkflow
	}
	return wf[0].Value, nil
}
