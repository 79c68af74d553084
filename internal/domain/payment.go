package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Terminal reports whether no further status transition is allowed.
func (s PaymentStatus) Terminal() bool { return s == PaymentPaid || s == PaymentFailed }

type PaymentType string

const (
	PaymentDonation PaymentType = "DONATION"
	PaymentOffering PaymentType = "OFFERING"
)

type Payment struct {
	ID        PaymentID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID        `gorm:"type:uuid;index;not null" json:"userId"`
	Type      PaymentType   `gorm:"type:text;not null" json:"type"`
	Category  string        `gorm:"type:text;not null" json:"category"`
	// Amount is in minor currency units (kobo).
	Amount    int64         `gorm:"not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:text;not null;default:'PENDING';index" json:"status"`
	// Reference is nil until initiation assigns one; unique across payments.
	Reference *string       `gorm:"type:text;uniqueIndex:ux_payments_reference" json:"reference,omitempty"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`
	CreatedAt time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }

type PaymentGoal struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"type:text;not null" json:"title"`
	Category      string     `gorm:"type:text;not null;index" json:"category"`
	TargetAmount  int64      `gorm:"not null" json:"targetAmount"`
	CurrentAmount int64      `gorm:"not null;default:0" json:"currentAmount"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updatedAt"`
}

func (PaymentGoal) TableName() string { return "payment_goals" }
