package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the presentational fields of a user. It is created together
// with its User at registration and mirrors the owning account's archive flag.
type Profile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user"`
	FirstName  string    `gorm:"size:30" json:"first_name"`
	LastName   string    `gorm:"size:30" json:"last_name"`
	Bio        string    `gorm:"size:255" json:"bio"`
	ProfilePic string    `gorm:"size:500" json:"profile_pic"`
	Archivable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns a UUID primary key when none was set.
func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
