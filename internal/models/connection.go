package models

import (
	"time"
)

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case ConnectionPending, ConnectionAccepted, ConnectionDeclined:
		return true
	}
	return false
}

const MaxRelationshipNoteLen = 160

// UserConnection links a supporter to a recovery user. A given pair maps
// to at most one row; redemption updates in place rather than inserting a
// duplicate, and the unique index enforces that under races.
type UserConnection struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	SupporterID      uint             `gorm:"not null;uniqueIndex:uidx_supporter_recovery" json:"supporter_id"`
	Supporter        User             `gorm:"foreignKey:SupporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RecoveryUserID   uint             `gorm:"not null;uniqueIndex:uidx_supporter_recovery" json:"recovery_user_id"`
	RecoveryUser     User             `gorm:"foreignKey:RecoveryUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Status           ConnectionStatus `gorm:"size:20;default:'pending';not null" json:"status"`
	RelationshipNote string           `gorm:"size:160" json:"relationship_note,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	AcceptedAt       *time.Time       `json:"accepted_at,omitempty"`
}

func (UserConnection) TableName() string {
	return "user_connections"
}
