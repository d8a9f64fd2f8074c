package models

import (
	"time"
)

type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodLow      Mood = "low"
	MoodAnxious  Mood = "anxious"
	MoodAngry    Mood = "angry"
	MoodHopeless Mood = "hopeless"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodLow, MoodAnxious, MoodAngry, MoodHopeless:
		return true
	}
	return false
}

type CravingLevel string

const (
	CravingNone      CravingLevel = "none"
	CravingMild      CravingLevel = "mild"
	CravingStrong    CravingLevel = "strong"
	CravingAtRisk    CravingLevel = "at_risk"
	CravingUsedToday CravingLevel = "used_today"
)

func (c CravingLevel) Valid() bool {
	switch c {
	case CravingNone, CravingMild, CravingStrong, CravingAtRisk, CravingUsedToday:
		return true
	}
	return false
}

// HighRisk reports whether logging this level takes real honesty: these
// are the levels that qualify for the bravery badge.
func (c CravingLevel) HighRisk() bool {
	switch c {
	case CravingStrong, CravingAtRisk, CravingUsedToday:
		return true
	}
	return false
}

const (
	MaxNoteLen          = 500
	MaxStressTriggerLen = 120
)

// MoodEntry is one check-in. Entries are append-only; there is no update
// path once a row is written.
type MoodEntry struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	UserID        uint         `gorm:"not null;index" json:"user_id"`
	User          User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Mood          Mood         `gorm:"size:20;not null" json:"mood"`
	CravingLevel  CravingLevel `gorm:"size:20;not null;index" json:"craving_level"`
	StressLevel   *int         `json:"stress_level,omitempty"`
	SleepQuality  *int         `json:"sleep_quality,omitempty"`
	Note          string       `gorm:"size:500" json:"note,omitempty"`
	StressTrigger string       `gorm:"size:120" json:"stress_trigger,omitempty"`
	CreatedAt     time.Time    `gorm:"index" json:"created_at"`
}
