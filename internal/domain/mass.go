package domain

import (
	"time"

	"github.com/google/uuid"
)

// MassStatus is a cached projection of the two slot counters. FULL iff
// both remaining counts are <= 0. It is recomputed inside the same
// transaction as any counter mutation, never asynchronously.
type MassStatus string

const (
	MassAvailable MassStatus = "AVAILABLE"
	MassFull      MassStatus = "FULL"
)

type Mass struct {
	ID                          MassID     `gorm:"type:uuid;primaryKey" json:"id"`
	Title                       string     `gorm:"type:text;not null" json:"title"`
	ScheduledAt                 time.Time  `gorm:"not null;index" json:"scheduledAt"`
	AvailableIntentionsSlots    int        `gorm:"not null" json:"availableIntentionsSlots"`
	AvailableThanksgivingsSlots int        `gorm:"not null" json:"availableThanksgivingsSlots"`
	Status                      MassStatus `gorm:"type:text;not null;default:'AVAILABLE'" json:"status"`
	CreatedByID                 UserID     `gorm:"type:uuid;index" json:"createdById"`
	CreatedAt                   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt                   time.Time  `gorm:"not null" json:"updatedAt"`
}

func (Mass) TableName() string { return "masses" }

type MassIntention struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MassID    MassID    `gorm:"type:uuid;index;not null" json:"massId"`
	UserID    UserID    `gorm:"type:uuid;index;not null" json:"userId"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Intention string    `gorm:"type:text;not null" json:"intention"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (MassIntention) TableName() string { return "mass_intentions" }

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type Thanksgiving struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MassID      MassID         `gorm:"type:uuid;index;not null" json:"massId"`
	UserID      UserID         `gorm:"type:uuid;index;not null" json:"userId"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      ApprovalStatus `gorm:"type:text;not null;default:'PENDING'" json:"status"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
}

func (Thanksgiving) TableName() string { return "thanksgivings" }
