package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an append-only per-user message. Only the read flag is ever
// mutated after creation.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user"`
	Msg         string    `gorm:"size:500" json:"msg"`
	Read        bool      `gorm:"not null;default:false" json:"read"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns a UUID primary key and stamps the publish time.
func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.PublishedAt.IsZero() {
		n.PublishedAt = time.Now()
	}
	return nil
}
