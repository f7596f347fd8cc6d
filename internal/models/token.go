package models

import "time"

// RevokedToken is a denylist entry for a session credential. Rows are written
// on logout and on account archival; expired rows can be pruned since the
// token they block would no longer validate anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	JTI       string    `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
