// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Accounts are archived, never deleted,
// so username and email uniqueness holds even across removed accounts.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:32;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:64;not null" json:"-"`
	// ForgetPasswordToken is set by the forgot-password flow and cleared when
	// consumed. Nullable so the unique index only applies to live tokens.
	ForgetPasswordToken *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"-"`
	Archivable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
