package services

import (
	"errors"
	"fmt"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"

	"gorm.io/gorm"
)

const (
	// NudgeCooldownHours is the minimum spacing between nudges from one
	// supporter to one recipient.
	NudgeCooldownHours = 18

	// nudgeOverdueDays is how many whole days without a shared entry
	// make a reminder appropriate.
	nudgeOverdueDays = 3
)

type NudgeReason string

const (
	NudgeReasonNoSharedData NudgeReason = "no_shared_data"
	NudgeReasonNeverLogged  NudgeReason = "never_logged"
	NudgeReasonOverdue      NudgeReason = "overdue"
	NudgeReasonRecent       NudgeReason = "recent"
)

// ErrNudgeForbidden covers a sender without the supporter role or
// without an accepted connection to the recipient.
var ErrNudgeForbidden = errors.New("nudge: no accepted supporter connection")

// ErrNudgeRecent rejects reminders right after genuine activity.
var ErrNudgeRecent = errors.New("nudge: recipient logged recently")

// NudgeCooldownError carries the retry timing for a too-soon attempt.
type NudgeCooldownError struct {
	CooldownHours   int
	NextAvailableAt time.Time
}

func (e *NudgeCooldownError) Error() string {
	return fmt.Sprintf("nudge: cooldown active until %s", e.NextAvailableAt.Format(time.RFC3339))
}

// NudgeResult is the success payload of a sent nudge.
type NudgeResult struct {
	Reason          NudgeReason            `json:"reason"`
	CooldownHours   int                    `json:"cooldown_hours"`
	NextAvailableAt time.Time              `json:"next_available_at"`
	Message         *models.SupportMessage `json:"-"`
}

// ClassifyNudgeReason decides how a reminder should be framed. lastEntry
// is the recipient's most recent check-in time, nil when none exists.
// The returned day count is meaningful only when known is true.
func ClassifyNudgeReason(privacy models.EffectivePrivacy, lastEntry *time.Time, now time.Time) (reason NudgeReason, daysSince int, known bool) {
	if !privacy.ShowMoodTrends && !privacy.ShowCravingLevels {
		return NudgeReasonNoSharedData, 0, false
	}
	if lastEntry == nil {
		return NudgeReasonNeverLogged, 0, false
	}
	days := daysBetween(dateOnly(*lastEntry), dateOnly(now))
	if days >= nudgeOverdueDays {
		return NudgeReasonOverdue, days, true
	}
	return NudgeReasonRecent, days, true
}

// NextNudgeAllowed applies the cooldown to the previous nudge time. When
// blocked, the next-eligible timestamp is now plus the remaining hours
// rounded up to whole hours.
func NextNudgeAllowed(lastNudge time.Time, now time.Time) (time.Time, bool) {
	elapsed := now.Sub(lastNudge)
	cooldown := time.Duration(NudgeCooldownHours) * time.Hour
	if elapsed >= cooldown {
		return now, true
	}
	remaining := cooldown - elapsed
	wholeHours := remaining / time.Hour
	if remaining%time.Hour != 0 {
		wholeHours++
	}
	return now.Add(wholeHours * time.Hour), false
}

// nudgeMessage picks the reminder template. A recipient sharing nothing
// gets a softer, no-pressure note; everyone else gets a check-in prompt.
func nudgeMessage(reason NudgeReason) string {
	if reason == NudgeReasonNoSharedData {
		return "Thinking of you today. No pressure at all. Just know someone is in your corner."
	}
	return "It's been a little while since your last check-in. Whenever you're ready, I'm cheering for you."
}

// SendNudge gates and sends an automated reminder from a supporter to a
// connected recovery user.
func SendNudge(sender *models.User, recipientID uint, now time.Time) (*NudgeResult, error) {
	if sender.Role != models.RoleSupporter {
		return nil, ErrNudgeForbidden
	}

	var conn models.UserConnection
	err := db.DB.
		Where("supporter_id = ? AND recovery_user_id = ? AND status = ?",
			sender.ID, recipientID, models.ConnectionAccepted).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNudgeForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("looking up connection: %w", err)
	}

	var recipient models.User
	if err := db.DB.First(&recipient, recipientID).Error; err != nil {
		return nil, fmt.Errorf("loading recipient: %w", err)
	}
	privacy := recipient.PrivacySettings.Merged()

	var lastEntryAt *time.Time
	var lastEntry models.MoodEntry
	err = db.DB.
		Where("user_id = ?", recipientID).
		Order("created_at DESC").
		First(&lastEntry).Error
	if err == nil {
		lastEntryAt = &lastEntry.CreatedAt
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading latest entry: %w", err)
	}

	reason, daysSince, daysKnown := ClassifyNudgeReason(privacy, lastEntryAt, now)

	// Cooldown gate: the sender's previous nudge to this recipient.
	var lastNudge models.SupportMessage
	err = db.DB.
		Where("from_user_id = ? AND to_user_id = ? AND metadata ->> 'kind' = ?",
			sender.ID, recipientID, models.MessageKindNudge).
		Order("created_at DESC").
		First(&lastNudge).Error
	if err == nil {
		if nextAt, ok := NextNudgeAllowed(lastNudge.CreatedAt, now); !ok {
			return nil, &NudgeCooldownError{
				CooldownHours:   NudgeCooldownHours,
				NextAvailableAt: nextAt,
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("loading previous nudge: %w", err)
	}

	if reason == NudgeReasonRecent {
		return nil, ErrNudgeRecent
	}

	metadata := map[string]any{
		"kind":           models.MessageKindNudge,
		"reason":         string(reason),
		"sent_at":        now.Format(time.RFC3339),
		"cooldown_hours": NudgeCooldownHours,
	}
	if daysKnown {
		metadata["days_since_last_shared"] = daysSince
	}

	msg := models.SupportMessage{
		FromUserID: sender.ID,
		ToUserID:   recipientID,
		Message:    nudgeMessage(reason),
		Metadata:   metadata,
	}
	if err := db.DB.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("sending nudge: %w", err)
	}

	return &NudgeResult{
		Reason:          reason,
		CooldownHours:   NudgeCooldownHours,
		NextAvailableAt: now.Add(NudgeCooldownHours * time.Hour),
		Message:         &msg,
	}, nil
}
