package services

import (
	"fmt"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"

	"gorm.io/gorm/clause"
)

// streakBadgeThresholds maps each streak badge to the streak length that
// earns it. Recovery users are eligible for all four; still-using users
// only for the first two.
var streakBadgeThresholds = []struct {
	Type models.BadgeType
	Min  int
}{
	{models.BadgeStreak3, 3},
	{models.BadgeStreak7, 7},
	{models.BadgeStreak14, 14},
	{models.BadgeStreak30, 30},
}

// streakBadgesFor returns the streak badges a user newly qualifies for.
// Thresholds are independent: a first streak of 30+ earns all of them in
// one pass.
func streakBadgesFor(role models.Role, streak int, have map[models.BadgeType]bool) []models.BadgeType {
	limit := len(streakBadgeThresholds)
	if role == models.RoleStillUsing {
		limit = 2 // streak_3 and streak_7 only
	}

	var out []models.BadgeType
	for _, t := range streakBadgeThresholds[:limit] {
		if streak >= t.Min && !have[t.Type] {
			out = append(out, t.Type)
		}
	}
	return out
}

// EvaluateCheckIn runs the badge pass for a just-created entry and
// returns the badges granted, in evaluation order. The caller presents a
// celebration when the result is non-empty.
func EvaluateCheckIn(user *models.User, entry *models.MoodEntry, now time.Time) ([]models.Badge, error) {
	have, err := existingBadgeTypes(user.ID)
	if err != nil {
		return nil, err
	}

	var granted []models.Badge

	if !have[models.BadgeFirstLog] {
		var total int64
		err := db.DB.Model(&models.MoodEntry{}).Where("user_id = ?", user.ID).Count(&total).Error
		if err != nil {
			return nil, fmt.Errorf("counting entries: %w", err)
		}
		if total == 1 {
			granted, err = grant(granted, user.ID, models.BadgeFirstLog, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	if user.Role == models.RoleRecovery || user.Role == models.RoleStillUsing {
		streak, err := StreakForUser(user, now)
		if err != nil {
			// Never award (or skip awards) off a failed read.
			return nil, err
		}
		for _, btype := range streakBadgesFor(user.Role, streak.Current, have) {
			granted, err = grant(granted, user.ID, btype, map[string]any{"streak": streak.Current})
			if err != nil {
				return nil, err
			}
		}
	}

	if entry.CravingLevel.HighRisk() && !have[models.BadgeBraveryLog] {
		granted, err = grant(granted, user.ID, models.BadgeBraveryLog, map[string]any{
			"craving_level": string(entry.CravingLevel),
		})
		if err != nil {
			return nil, err
		}
	}

	return granted, nil
}

func existingBadgeTypes(userID uint) (map[models.BadgeType]bool, error) {
	var types []models.BadgeType
	err := db.DB.Model(&models.Badge{}).
		Where("user_id = ?", userID).
		Pluck("badge_type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("loading badges: %w", err)
	}
	have := make(map[models.BadgeType]bool, len(types))
	for _, t := range types {
		have[t] = true
	}
	return have, nil
}

// grant inserts one badge. The unique index plus DoNothing makes the
// insert a no-op when a concurrent check-in got there first, so the badge
// is only reported as new when this pass actually created it.
func grant(granted []models.Badge, userID uint, btype models.BadgeType, metadata map[string]any) ([]models.Badge, error) {
	badge := models.Badge{
		UserID:    userID,
		BadgeType: btype,
		Metadata:  metadata,
	}
	result := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge)
	if result.Error != nil {
		return granted, fmt.Errorf("granting %s: %w", btype, result.Error)
	}
	if result.RowsAffected == 0 {
		return granted, nil
	}
	return append(granted, badge), nil
}
