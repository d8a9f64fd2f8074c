package services

import (
	"testing"

	"anchor/internal/models"
)

func typeSet(types ...models.BadgeType) map[models.BadgeType]bool {
	set := make(map[models.BadgeType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

func TestStreakBadgesForRecovery(t *testing.T) {
	cases := []struct {
		name   string
		streak int
		have   map[models.BadgeType]bool
		want   []models.BadgeType
	}{
		{
			name:   "below first threshold",
			streak: 2,
			have:   typeSet(),
			want:   nil,
		},
		{
			name:   "ten days earns 3 and 7 but not 14",
			streak: 10,
			have:   typeSet(),
			want:   []models.BadgeType{models.BadgeStreak3, models.BadgeStreak7},
		},
		{
			name:   "backdated start earns all four in one pass",
			streak: 45,
			have:   typeSet(),
			want: []models.BadgeType{
				models.BadgeStreak3, models.BadgeStreak7,
				models.BadgeStreak14, models.BadgeStreak30,
			},
		},
		{
			name:   "already-granted types are skipped",
			streak: 14,
			have:   typeSet(models.BadgeStreak3, models.BadgeStreak7),
			want:   []models.BadgeType{models.BadgeStreak14},
		},
		{
			name:   "everything granted yields nothing",
			streak: 100,
			have: typeSet(models.BadgeStreak3, models.BadgeStreak7,
				models.BadgeStreak14, models.BadgeStreak30),
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := streakBadgesFor(models.RoleRecovery, tc.streak, tc.have)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("badge %d: got %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestStreakBadgesForStillUsingCapsAtSeven(t *testing.T) {
	got := streakBadgesFor(models.RoleStillUsing, 31, typeSet())
	want := []models.BadgeType{models.BadgeStreak3, models.BadgeStreak7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("badge %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestHighRiskCravingLevels(t *testing.T) {
	cases := map[models.CravingLevel]bool{
		models.CravingNone:      false,
		models.CravingMild:      false,
		models.CravingStrong:    true,
		models.CravingAtRisk:    true,
		models.CravingUsedToday: true,
	}
	for level, want := range cases {
		if got := level.HighRisk(); got != want {
			t.Errorf("%s.HighRisk() = %v, want %v", level, got, want)
		}
	}
}
