package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostType is a controlled-vocabulary entry for Post.PostType. Not archivable.
type PostType struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (PostType) TableName() string {
	return "post_types"
}

// BeforeCreate assigns a UUID primary key when none was set.
func (t *PostType) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
