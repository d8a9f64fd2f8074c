package services

import (
	"fmt"
	"math"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"
)

// streakMilestones is the fixed ascending milestone ladder shared by both
// streak variants.
var streakMilestones = []int{1, 3, 5, 7, 10, 14, 21, 30, 45, 60, 90, 120, 180, 270, 365}

// logStreakWindow caps how many recent entries the log-based streak scans.
const logStreakWindow = 30

// StreakResult is what the streak engine reports for a user.
type StreakResult struct {
	Current         int    `json:"current"`
	NextMilestone   int    `json:"next_milestone"`
	DaysToMilestone int    `json:"days_to_milestone"`
	Message         string `json:"message"`
	// RelapseToday distinguishes "streak 0 because of an honest relapse
	// log today" from a plain zero streak. Presentation hint only.
	RelapseToday bool `json:"relapse_today"`
}

// dateOnly truncates t to its calendar day in t's location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole days from day a to day b. Both arguments must
// already be midnight-normalized; rounding absorbs DST offsets.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// NextMilestone returns the smallest milestone strictly greater than
// current, or current+1 once the ladder is exhausted.
func NextMilestone(current int) int {
	for _, m := range streakMilestones {
		if m > current {
			return m
		}
	}
	return current + 1
}

// DateAnchoredStreak computes the sobriety streak for a recovery user:
// whole days from the sobriety start date (or the day after the most
// recent relapse on/after it) through today. relapses are the timestamps
// of the user's used_today entries; only their calendar day matters.
func DateAnchoredStreak(start time.Time, relapses []time.Time, now time.Time) StreakResult {
	today := dateOnly(now)
	effective := dateOnly(start)

	var lastRelapse time.Time
	for _, r := range relapses {
		day := dateOnly(r)
		if day.Before(effective) {
			continue
		}
		if lastRelapse.IsZero() || day.After(lastRelapse) {
			lastRelapse = day
		}
	}

	relapseToday := false
	if !lastRelapse.IsZero() {
		relapseToday = lastRelapse.Equal(today)
		effective = lastRelapse.AddDate(0, 0, 1)
	}

	current := 0
	if !effective.After(today) {
		current = daysBetween(effective, today) + 1
	}
	if current < 0 {
		current = 0
	}

	res := StreakResult{
		Current:      current,
		RelapseToday: relapseToday,
	}
	res.NextMilestone = NextMilestone(current)
	res.DaysToMilestone = res.NextMilestone - current

	switch {
	case relapseToday:
		res.Message = "You checked in honestly today. Tomorrow can be day 1."
	case current == 0:
		res.Message = "Every recovery starts somewhere. Today can be day 1."
	default:
		res.Message = fmt.Sprintf("%d days strong. Keep going.", current)
	}
	return res
}

// LogBasedStreak computes the consistency streak for non-recovery roles:
// the run of consecutive calendar days with at least one entry, counting
// backward from today. Any used_today entry in the window zeroes the
// streak, including one logged earlier today. A missing entry today just
// ends the scan at zero.
func LogBasedStreak(entries []models.MoodEntry, now time.Time) StreakResult {
	today := dateOnly(now)

	days := make(map[string]bool, len(entries))
	usedToday := false
	for _, e := range entries {
		if e.CravingLevel == models.CravingUsedToday {
			usedToday = true
			break
		}
		days[dateOnly(e.CreatedAt).Format("2006-01-02")] = true
	}

	current := 0
	if !usedToday {
		for day := today; days[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
			current++
		}
	}

	res := StreakResult{Current: current}
	res.NextMilestone = NextMilestone(current)
	res.DaysToMilestone = res.NextMilestone - current

	if current == 0 {
		res.Message = "Log a check-in today to start a streak."
	} else {
		res.Message = fmt.Sprintf("%d-day check-in streak. Keep showing up.", current)
	}
	return res
}

// StreakForUser loads the entry history and computes the streak variant
// for the user's role. Read failures propagate; the badge engine must
// never mistake "data unavailable" for "no data".
func StreakForUser(user *models.User, now time.Time) (StreakResult, error) {
	if user.Role == models.RoleRecovery && user.SobrietyStartDate != nil {
		var relapseEntries []models.MoodEntry
		err := db.DB.
			Where("user_id = ? AND craving_level = ?", user.ID, models.CravingUsedToday).
			Order("created_at ASC").
			Find(&relapseEntries).Error
		if err != nil {
			return StreakResult{}, fmt.Errorf("loading relapse history: %w", err)
		}
		relapses := make([]time.Time, 0, len(relapseEntries))
		for _, e := range relapseEntries {
			relapses = append(relapses, e.CreatedAt)
		}
		return DateAnchoredStreak(*user.SobrietyStartDate, relapses, now), nil
	}

	// Recovery users without a start date fall back to the log-based
	// variant so they still see something meaningful.
	var entries []models.MoodEntry
	err := db.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(logStreakWindow).
		Find(&entries).Error
	if err != nil {
		return StreakResult{}, fmt.Errorf("loading entry history: %w", err)
	}
	return LogBasedStreak(entries, now), nil
}
