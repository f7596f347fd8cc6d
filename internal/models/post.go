package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostTypeText is the one post type with enforced semantics: text posts may
// never carry a URL, regardless of client input.
const PostTypeText = "text"

// Post is a piece of content published by a user. PostType references a
// PostType by name; Tags is a free-text comma-separated list.
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID uuid.UUID `gorm:"type:uuid;not null;index" json:"creator"`
	Title     string    `gorm:"size:50" json:"title"`
	URL       *string   `gorm:"size:500" json:"url"`
	Content   string    `gorm:"type:text" json:"content"`
	Tags      string    `gorm:"size:500" json:"tags"`
	PostType  string    `gorm:"size:50;not null;index" json:"post_type"`
	PubDate   time.Time `gorm:"not null" json:"pub_date"`
	Archivable

	Creator User `gorm:"foreignKey:CreatorID" json:"-"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// BeforeCreate assigns a UUID primary key and stamps the publish time.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}
