package models

import (
	"time"
)

const MaxMessageLen = 200

// MessageKindNudge marks a system-generated reminder in message metadata.
const MessageKindNudge = "nudge"

// allowedEmojis is the fixed set a sender may attach to an encouragement.
var allowedEmojis = map[string]bool{
	"💙": true, "💪": true, "🌟": true, "🙌": true, "🤗": true,
	"🌱": true, "☀️": true, "🔥": true, "👏": true, "🫶": true,
}

// EmojiAllowed reports whether e is in the fixed allow-set. The empty
// string is allowed (no emoji attached).
func EmojiAllowed(e string) bool {
	return e == "" || allowedEmojis[e]
}

// AllowedEmojis returns the allow-set for clients to render as a picker.
func AllowedEmojis() []string {
	out := make([]string, 0, len(allowedEmojis))
	for e := range allowedEmojis {
		out = append(out, e)
	}
	return out
}

// SupportMessage is an encouragement note or a system nudge. Rows are
// append-only; ReadAt is the only mutable field and only the recipient
// sets it.
type SupportMessage struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FromUserID uint           `gorm:"not null;index" json:"from_user_id"`
	FromUser   User           `gorm:"foreignKey:FromUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ToUserID   uint           `gorm:"not null;index" json:"to_user_id"`
	ToUser     User           `gorm:"foreignKey:ToUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Message    string         `gorm:"size:200;not null" json:"message"`
	Emoji      string         `gorm:"size:16" json:"emoji,omitempty"`
	Metadata   map[string]any `gorm:"serializer:json;type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
	ReadAt     *time.Time     `json:"read_at,omitempty"`
}
