package model

import "time"

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Производные значения фасета «оплата» (paid). Не хранятся в БД — выводятся из HasPaid.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
)

type Customer struct {
	ID      uint64         `gorm:"primaryKey" json:"id"`
	Name    string         `gorm:"type:varchar(255);not null" json:"name"`
	Email   string         `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone   string         `gorm:"type:varchar(64)" json:"phone,omitempty"`
	Company string         `gorm:"type:varchar(255)" json:"company,omitempty"`
	Notes   string         `gorm:"type:text" json:"notes,omitempty"`
	Status  CustomerStatus `gorm:"type:varchar(32);index;not null" json:"status"`
	Price   float64        `gorm:"not null;default:0" json:"price"`
	HasPaid bool           `gorm:"not null;default:false" json:"has_paid"`
	// PaidDate осмысленна только вместе с HasPaid; связка не форсируется как инвариант.
	PaidDate *time.Time `json:"paid_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentStatus возвращает значение фасета «оплата»: paid | pending.
func (c *Customer) PaymentStatus() string {
	if c.HasPaid {
		return PaymentPaid
	}
	return PaymentPending
}

type InteractionKind string

const (
	InteractionCall    InteractionKind = "call"
	InteractionEmail   InteractionKind = "email"
	InteractionMeeting InteractionKind = "meeting"
	InteractionNote    InteractionKind = "note"
)

type Interaction struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	CustomerID uint64          `gorm:"index;not null" json:"customer_id"`
	Kind       InteractionKind `gorm:"type:varchar(32);index;not null" json:"kind"`
	Summary    string          `gorm:"type:varchar(255)" json:"summary,omitempty"`
	Notes      string          `gorm:"type:text" json:"notes,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

type Job struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	CustomerID   uint64     `gorm:"index;not null" json:"customer_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Details      string     `gorm:"type:text" json:"details,omitempty"`
	Status       JobStatus  `gorm:"type:varchar(32);index;not null" json:"status"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
