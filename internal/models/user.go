package models

import (
	"time"
)

type Role string

const (
	RoleUnset      Role = "unset"
	RoleRecovery   Role = "recovery"
	RoleStillUsing Role = "still_using"
	RoleSupporter  Role = "supporter"
)

// Valid reports whether r is one of the assignable roles.
// RoleUnset is the signup default and cannot be chosen during onboarding.
func (r Role) Valid() bool {
	switch r {
	case RoleRecovery, RoleStillUsing, RoleSupporter:
		return true
	}
	return false
}

// PrivacySettings are the per-user sharing toggles a supporter's insight
// view is filtered by. Fields are pointers so a toggle the user never
// touched falls back to its default instead of reading as false.
type PrivacySettings struct {
	ShowMoodTrends    *bool `json:"show_mood_trends,omitempty"`
	ShowCravingLevels *bool `json:"show_craving_levels,omitempty"`
	ShowNotes         *bool `json:"show_notes,omitempty"`
	ShowStreak        *bool `json:"show_streak,omitempty"`
	ShowBadges        *bool `json:"show_badges,omitempty"`
}

// EffectivePrivacy is PrivacySettings with defaults applied.
type EffectivePrivacy struct {
	ShowMoodTrends    bool `json:"show_mood_trends"`
	ShowCravingLevels bool `json:"show_craving_levels"`
	ShowNotes         bool `json:"show_notes"`
	ShowStreak        bool `json:"show_streak"`
	ShowBadges        bool `json:"show_badges"`
}

// Merged resolves the stored toggles against the defaults. Everything a
// supporter can see defaults to shared except free-text notes; the
// connection itself is already opt-in via invite code. Defaults live
// here only. Callers must never read the raw pointers.
func (p *PrivacySettings) Merged() EffectivePrivacy {
	eff := EffectivePrivacy{
		ShowMoodTrends:    true,
		ShowCravingLevels: true,
		ShowNotes:         false,
		ShowStreak:        true,
		ShowBadges:        true,
	}
	if p == nil {
		return eff
	}
	if p.ShowMoodTrends != nil {
		eff.ShowMoodTrends = *p.ShowMoodTrends
	}
	if p.ShowCravingLevels != nil {
		eff.ShowCravingLevels = *p.ShowCravingLevels
	}
	if p.ShowNotes != nil {
		eff.ShowNotes = *p.ShowNotes
	}
	if p.ShowStreak != nil {
		eff.ShowStreak = *p.ShowStreak
	}
	if p.ShowBadges != nil {
		eff.ShowBadges = *p.ShowBadges
	}
	return eff
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // Hash

	Role              Role       `gorm:"size:20;default:'unset';not null" json:"role"`
	SobrietyStartDate *time.Time `json:"sobriety_start_date"` // recovery role only, day granularity

	// Invite fields are owned by the invite lifecycle; at most one
	// unexpired code per recovery user.
	PendingSupportInviteCode      *string    `gorm:"size:6;index" json:"-"`
	PendingSupportInviteExpiresAt *time.Time `json:"-"`

	PrivacySettings *PrivacySettings `gorm:"serializer:json" json:"privacy_settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}
