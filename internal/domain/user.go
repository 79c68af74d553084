package domain

import "time"

type User struct {
	ID           UserID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:text;not null" json:"name"`
	Email        string    `gorm:"type:text;uniqueIndex:ux_users_email;not null" json:"email"`
	Phone        string    `gorm:"type:text" json:"phone"`
	PasswordHash []byte    `gorm:"type:bytea;not null" json:"-"`
	PasswordSalt []byte    `gorm:"type:bytea;not null" json:"-"`
	ParamsJSON   []byte    `gorm:"type:bytea" json:"-"`
	PasswordVer  int       `gorm:"not null;default:1" json:"-"`
	Role         Role      `gorm:"type:text;not null;default:'PARISHIONER'" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// PasswordReset holds the single active reset token for a user.
// Repeated requests upsert the row; consumption deletes it.
type PasswordReset struct {
	UserID    UserID    `gorm:"type:uuid;primaryKey" json:"-"`
	Token     string    `gorm:"type:text;uniqueIndex:ux_password_resets_token;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (PasswordReset) TableName() string { return "password_resets" }
