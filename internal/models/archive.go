package models

import "gorm.io/gorm"

// Archivable is embedded by every soft-deletable entity. Archived rows are
// never physically removed; they are hidden from active queries instead so
// that uniqueness (usernames, emails) keeps holding across deleted accounts.
type Archivable struct {
	Archive bool `gorm:"not null;default:false" json:"archive"`
}

// Active is a GORM scope selecting only non-archived rows.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("archive = ?", false)
}
