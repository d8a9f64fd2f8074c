package services

import (
	"testing"
	"time"

	"anchor/internal/models"
)

func privacy(moodTrends, cravings bool) models.EffectivePrivacy {
	return models.EffectivePrivacy{
		ShowMoodTrends:    moodTrends,
		ShowCravingLevels: cravings,
		ShowStreak:        true,
		ShowBadges:        true,
	}
}

func TestClassifyNudgeReasonNoSharedData(t *testing.T) {
	last := day(-10)
	reason, _, known := ClassifyNudgeReason(privacy(false, false), &last, testNow)
	if reason != NudgeReasonNoSharedData {
		t.Errorf("reason = %s, want no_shared_data", reason)
	}
	if known {
		t.Error("day count should not be reported when nothing is shared")
	}
}

func TestClassifyNudgeReasonOneToggleIsEnough(t *testing.T) {
	// Sharing either trend kind keeps the normal classification path.
	reason, _, _ := ClassifyNudgeReason(privacy(false, true), nil, testNow)
	if reason != NudgeReasonNeverLogged {
		t.Errorf("reason = %s, want never_logged", reason)
	}
}

func TestClassifyNudgeReasonNeverLogged(t *testing.T) {
	reason, _, known := ClassifyNudgeReason(privacy(true, true), nil, testNow)
	if reason != NudgeReasonNeverLogged {
		t.Errorf("reason = %s, want never_logged", reason)
	}
	if known {
		t.Error("day count should not be reported without an entry")
	}
}

func TestClassifyNudgeReasonOverdue(t *testing.T) {
	last := day(-3)
	reason, days, known := ClassifyNudgeReason(privacy(true, true), &last, testNow)
	if reason != NudgeReasonOverdue {
		t.Errorf("reason = %s, want overdue", reason)
	}
	if !known || days != 3 {
		t.Errorf("days = %d (known=%v), want 3", days, known)
	}
}

func TestClassifyNudgeReasonRecent(t *testing.T) {
	last := day(-1)
	reason, days, known := ClassifyNudgeReason(privacy(true, true), &last, testNow)
	if reason != NudgeReasonRecent {
		t.Errorf("reason = %s, want recent", reason)
	}
	if !known || days != 1 {
		t.Errorf("days = %d (known=%v), want 1", days, known)
	}
}

func TestNextNudgeAllowedAfterCooldown(t *testing.T) {
	lastNudge := testNow.Add(-19 * time.Hour)
	next, ok := NextNudgeAllowed(lastNudge, testNow)
	if !ok {
		t.Fatal("19h since last nudge should be allowed")
	}
	if !next.Equal(testNow) {
		t.Errorf("next = %v, want now", next)
	}
}

func TestNextNudgeBlockedMidCooldown(t *testing.T) {
	// Nudged at T, retried at T+10h: blocked until T+18h.
	lastNudge := testNow.Add(-10 * time.Hour)
	next, ok := NextNudgeAllowed(lastNudge, testNow)
	if ok {
		t.Fatal("10h since last nudge should be blocked")
	}
	if want := testNow.Add(8 * time.Hour); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNextNudgeRoundsUpPartialHours(t *testing.T) {
	lastNudge := testNow.Add(-10*time.Hour - 30*time.Minute)
	next, ok := NextNudgeAllowed(lastNudge, testNow)
	if ok {
		t.Fatal("10.5h since last nudge should be blocked")
	}
	// 7h30m remaining rounds up to 8 whole hours.
	if want := testNow.Add(8 * time.Hour); !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}
}

func TestNudgeMessageFraming(t *testing.T) {
	soft := nudgeMessage(NudgeReasonNoSharedData)
	prompt := nudgeMessage(NudgeReasonOverdue)
	if soft == prompt {
		t.Error("no_shared_data should use the softer template")
	}
	if nudgeMessage(NudgeReasonNeverLogged) != prompt {
		t.Error("never_logged should use the check-in prompt template")
	}
}
