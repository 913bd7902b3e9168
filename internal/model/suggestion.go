package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// FeedbackType выбирает workflow статусов и неизменяем после создания записи.
type FeedbackType string

const (
	FeedbackTypeBug     FeedbackType = "bug_report"
	FeedbackTypeFeature FeedbackType = "feature_request"
	FeedbackTypeGeneral FeedbackType = "general_feedback"
)

// SuggestionStatus — статус внутри workflow. Допустимые значения задаёт
// реестр workflow по типу записи; одинаковое написание ("pending", "declined")
// в разных workflow — это разные значения, скоупленные типом.
type SuggestionStatus string

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Suggestion — запись пользовательского фидбека в очереди разбора.
type Suggestion struct {
	ID          uint64           `gorm:"primaryKey" json:"id"`
	Type        FeedbackType     `gorm:"type:varchar(32);index;not null" json:"type"`
	Status      SuggestionStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	Priority    Priority         `gorm:"type:varchar(32);index" json:"priority,omitempty"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`

	SubmitterEmail string `gorm:"type:varchar(255)" json:"submitter_email,omitempty"`
	SubmitterName  string `gorm:"type:varchar(255)" json:"submitter_name,omitempty"`
	SubmitterRole  string `gorm:"type:varchar(64)" json:"submitter_role,omitempty"`

	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments,omitempty"`
	// SystemMeta — сведения об окружении отправителя (браузер, ОС, версия приложения).
	// Только для чтения: ядро их не фильтрует и не валидирует.
	SystemMeta SystemMeta `gorm:"type:jsonb" json:"system_meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SystemMeta map[string]any

func (m SystemMeta) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SystemMeta) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("system_meta: unsupported source type %T", src)
	}
}
