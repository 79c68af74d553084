package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChurchInfo is a single-row table of parish contact details.
type ChurchInfo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Phone     string    `gorm:"type:text" json:"phone"`
	Email     string    `gorm:"type:text" json:"email"`
	About     string    `gorm:"type:text" json:"about"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ChurchInfo) TableName() string { return "church_info" }

// Service is a recurring weekly service slot (e.g. Sunday 9am Mass).
type Service struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"`
	StartTime string    `gorm:"type:text;not null" json:"startTime"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Service) TableName() string { return "services" }
