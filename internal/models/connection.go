package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Connection represents a directed follow relationship between two users.
// It is created pending (accepted=false) by the sender, accepted or deleted
// by the receiver, and archived when either participant's account is archived.
//
// At most one connection may exist between any unordered pair of users. The
// composite unique index below collapses same-direction duplicates under
// concurrent submission; the opposite direction cannot be expressed as an
// index, so the pair lookup runs inside the same transaction as the insert.
type Connection struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"-"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"-"`
	Accepted   bool      `gorm:"not null;default:false" json:"accepted"`
	Archivable
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate assigns a UUID primary key when none was set.
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Involves reports whether the given user is a participant of the connection.
func (c *Connection) Involves(userID uuid.UUID) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}

// PeerID returns the other participant's id relative to the given user.
func (c *Connection) PeerID(userID uuid.UUID) uuid.UUID {
	if c.SenderID == userID {
		return c.ReceiverID
	}
	return c.SenderID
}

// PeerConnection is a Connection presented from one participant's point of
// view: the caller's side is normalized away and only the peer is reported.
type PeerConnection struct {
	ID       uuid.UUID `json:"id"`
	User     string    `json:"user"`
	Accepted bool      `json:"accepted"`
	Archive  bool      `json:"archive"`
}

// ViewFor renders the connection from the given participant's point of view.
// Sender and Receiver must be preloaded.
func (c *Connection) ViewFor(userID uuid.UUID) PeerConnection {
	peer := c.Sender.Username
	if c.SenderID == userID {
		peer = c.Receiver.Username
	}
	return PeerConnection{
		ID:       c.ID,
		User:     peer,
		Accepted: c.Accepted,
		Archive:  c.Archive,
	}
}
