package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType controls visibility: ADMIN rows are only shown to
// admins/superadmins; the filter is applied at query time.
type ActivityType string

const (
	ActivityParishioner ActivityType = "PARISHIONER"
	ActivityAdmin       ActivityType = "ADMIN"
)

// ActivityLog is append-only. Rows are only ever flipped to read.
type ActivityLog struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID       `gorm:"type:uuid;index;not null" json:"userId"`
	Type      ActivityType `gorm:"type:text;not null;index" json:"type"`
	Action    string       `gorm:"type:text;not null" json:"action"`
	Detail    string       `gorm:"type:text" json:"detail"`
	Read      bool         `gorm:"not null;default:false;index" json:"read"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

// SystemNotification is the site-wide banner. Active while ExpiresAt is
// nil or in the future; dismissal is client-local by id.
type SystemNotification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	// Audience limits the banner to a role; empty means everyone.
	Audience  Role       `gorm:"type:text" json:"audience,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
}

func (SystemNotification) TableName() string { return "system_notifications" }
