package services

import (
	"strings"
	"testing"
	"time"

	"anchor/internal/models"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return testNow.AddDate(0, 0, offset)
}

func checkInvariants(t *testing.T, res StreakResult) {
	t.Helper()
	if res.Current < 0 {
		t.Errorf("Current streak is negative: %d", res.Current)
	}
	if res.NextMilestone <= res.Current {
		t.Errorf("NextMilestone %d not greater than Current %d", res.NextMilestone, res.Current)
	}
	if res.DaysToMilestone != res.NextMilestone-res.Current {
		t.Errorf("DaysToMilestone %d, want %d", res.DaysToMilestone, res.NextMilestone-res.Current)
	}
}

func TestDateAnchoredStreakNoRelapse(t *testing.T) {
	// Started 9 days ago, clean since: today is day 10.
	res := DateAnchoredStreak(day(-9), nil, testNow)
	checkInvariants(t, res)
	if res.Current != 10 {
		t.Errorf("Current = %d, want 10", res.Current)
	}
	if res.RelapseToday {
		t.Error("RelapseToday should be false with no relapses")
	}
	if res.NextMilestone != 14 {
		t.Errorf("NextMilestone = %d, want 14", res.NextMilestone)
	}
}

func TestDateAnchoredStreakStartToday(t *testing.T) {
	res := DateAnchoredStreak(day(0), nil, testNow)
	checkInvariants(t, res)
	if res.Current != 1 {
		t.Errorf("Current = %d, want 1", res.Current)
	}
}

func TestDateAnchoredStreakFutureStart(t *testing.T) {
	res := DateAnchoredStreak(day(2), nil, testNow)
	checkInvariants(t, res)
	if res.Current != 0 {
		t.Errorf("Current = %d, want 0 for future start date", res.Current)
	}
}

func TestDateAnchoredStreakRelapseResetsAnchor(t *testing.T) {
	// Start 10 days ago, relapse 2 days after that: effective start is
	// start+3, so today is day 8.
	start := day(-10)
	relapse := start.AddDate(0, 0, 2)
	res := DateAnchoredStreak(start, []time.Time{relapse}, testNow)
	checkInvariants(t, res)
	if res.Current != 8 {
		t.Errorf("Current = %d, want 8", res.Current)
	}
}

func TestDateAnchoredStreakRelapseToday(t *testing.T) {
	res := DateAnchoredStreak(day(-30), []time.Time{testNow.Add(-2 * time.Hour)}, testNow)
	checkInvariants(t, res)
	if res.Current != 0 {
		t.Errorf("Current = %d, want 0", res.Current)
	}
	if !res.RelapseToday {
		t.Error("RelapseToday should be true")
	}
	if !strings.Contains(res.Message, "Tomorrow can be day 1") {
		t.Errorf("Message %q should carry the honest-check-in variant", res.Message)
	}
}

func TestDateAnchoredStreakRelapseBeforeStartIgnored(t *testing.T) {
	// Relapses before the start date don't move the anchor.
	res := DateAnchoredStreak(day(-4), []time.Time{day(-20)}, testNow)
	checkInvariants(t, res)
	if res.Current != 5 {
		t.Errorf("Current = %d, want 5", res.Current)
	}
}

func TestDateAnchoredStreakPicksLatestRelapse(t *testing.T) {
	start := day(-20)
	relapses := []time.Time{day(-15), day(-5), day(-12)}
	res := DateAnchoredStreak(start, relapses, testNow)
	checkInvariants(t, res)
	// Latest relapse 5 days ago: effective start 4 days ago, day 5 today.
	if res.Current != 5 {
		t.Errorf("Current = %d, want 5", res.Current)
	}
}

func entryOn(offset int) models.MoodEntry {
	return models.MoodEntry{Mood: models.MoodOkay, CravingLevel: models.CravingNone, CreatedAt: day(offset)}
}

func TestLogBasedStreakConsecutiveDays(t *testing.T) {
	entries := []models.MoodEntry{entryOn(0), entryOn(-1), entryOn(-2), entryOn(-4)}
	res := LogBasedStreak(entries, testNow)
	checkInvariants(t, res)
	// The gap at day -3 stops the run at 3; the day -4 entry doesn't count.
	if res.Current != 3 {
		t.Errorf("Current = %d, want 3", res.Current)
	}
}

func TestLogBasedStreakNoEntryToday(t *testing.T) {
	entries := []models.MoodEntry{entryOn(-1), entryOn(-2)}
	res := LogBasedStreak(entries, testNow)
	checkInvariants(t, res)
	if res.Current != 0 {
		t.Errorf("Current = %d, want 0 when today has no entry", res.Current)
	}
}

func TestLogBasedStreakMultipleEntriesSameDay(t *testing.T) {
	entries := []models.MoodEntry{entryOn(0), entryOn(0), entryOn(-1)}
	res := LogBasedStreak(entries, testNow)
	checkInvariants(t, res)
	if res.Current != 2 {
		t.Errorf("Current = %d, want 2", res.Current)
	}
}

func TestLogBasedStreakUsedTodayShortCircuits(t *testing.T) {
	entries := []models.MoodEntry{entryOn(0), entryOn(-1), entryOn(-2)}
	entries = append(entries, models.MoodEntry{
		Mood:         models.MoodLow,
		CravingLevel: models.CravingUsedToday,
		CreatedAt:    day(0),
	})
	res := LogBasedStreak(entries, testNow)
	checkInvariants(t, res)
	if res.Current != 0 {
		t.Errorf("Current = %d, want 0 when a used_today entry is in the window", res.Current)
	}
}

func TestLogBasedStreakEmpty(t *testing.T) {
	res := LogBasedStreak(nil, testNow)
	checkInvariants(t, res)
	if res.Current != 0 {
		t.Errorf("Current = %d, want 0", res.Current)
	}
}

func TestNextMilestone(t *testing.T) {
	cases := []struct {
		current int
		want    int
	}{
		{0, 1},
		{1, 3},
		{3, 5},
		{10, 14},
		{29, 30},
		{30, 45},
		{365, 366},
		{400, 401},
	}
	for _, tc := range cases {
		if got := NextMilestone(tc.current); got != tc.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", tc.current, got, tc.want)
		}
	}
}
