package models

import (
	"time"
)

type BadgeType string

const (
	BadgeFirstLog   BadgeType = "first_log"
	BadgeStreak3    BadgeType = "streak_3"
	BadgeStreak7    BadgeType = "streak_7"
	BadgeStreak14   BadgeType = "streak_14"
	BadgeStreak30   BadgeType = "streak_30"
	BadgeBraveryLog BadgeType = "bravery_log"
)

// BadgeInfo is the static display data for a badge type.
type BadgeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var badgeCatalog = map[BadgeType]BadgeInfo{
	BadgeFirstLog:   {"First Step", "Logged your very first check-in", "👣"},
	BadgeStreak3:    {"Three Days Strong", "Kept a 3-day streak going", "🌱"},
	BadgeStreak7:    {"One Week In", "Kept a 7-day streak going", "🌿"},
	BadgeStreak14:   {"Two Weeks Deep", "Kept a 14-day streak going", "🌳"},
	BadgeStreak30:   {"One Month Milestone", "Kept a 30-day streak going", "🏔️"},
	BadgeBraveryLog: {"Brave Honesty", "Logged a hard moment honestly", "💙"},
}

// Info returns the display data for a badge type.
func (t BadgeType) Info() (BadgeInfo, bool) {
	info, ok := badgeCatalog[t]
	return info, ok
}

func (t BadgeType) Valid() bool {
	_, ok := badgeCatalog[t]
	return ok
}

// Badge is an awarded achievement. The composite unique index is the
// backstop that makes the check-then-insert award path safe under
// concurrent check-ins.
type Badge struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:uidx_user_badge" json:"user_id"`
	User      User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	BadgeType BadgeType      `gorm:"size:20;not null;uniqueIndex:uidx_user_badge" json:"badge_type"`
	Metadata  map[string]any `gorm:"serializer:json;type:jsonb" json:"metadata,omitempty"`
	EarnedAt  time.Time      `gorm:"autoCreateTime" json:"earned_at"`
}
