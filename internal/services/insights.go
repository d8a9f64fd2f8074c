package services

import (
	"errors"
	"fmt"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"
	"anchor/internal/utils"

	"gorm.io/gorm"
)

const insightsCacheTTL = 60 * time.Second

// MoodPoint is one day of a shared mood trend.
type MoodPoint struct {
	Date string      `json:"date"` // YYYY-MM-DD
	Mood models.Mood `json:"mood"`
}

// ConnectionInsight is what a supporter sees for one connected recovery
// user, filtered by that user's privacy toggles. A nil section means the
// recipient does not share it.
type ConnectionInsight struct {
	ConnectionID   uint   `json:"connection_id"`
	RecoveryUserID uint   `json:"recovery_user_id"`
	Username       string `json:"username"`

	Streak             *StreakResult     `json:"streak,omitempty"`
	MoodTrend          []MoodPoint       `json:"mood_trend,omitempty"`
	LatestCraving      *string           `json:"latest_craving,omitempty"`
	DaysSinceLastEntry *int              `json:"days_since_last_entry,omitempty"`
	LatestNote         *string           `json:"latest_note,omitempty"`
	BadgeCount         *int              `json:"badge_count,omitempty"`
	LatestBadge        *models.BadgeInfo `json:"latest_badge,omitempty"`
}

func insightsCacheKey(supporterID uint) string {
	return fmt.Sprintf("insights:%d", supporterID)
}

// InvalidateInsights drops a supporter's cached snapshot, called when
// their connection set changes.
func InvalidateInsights(supporterID uint) {
	utils.GetCache().Delete(insightsCacheKey(supporterID))
}

// SupporterInsights builds a per-connection snapshot for each accepted
// connection of the supporter. Snapshots are cached briefly since they
// fan out into several queries per connection.
func SupporterInsights(supporter *models.User, now time.Time) ([]ConnectionInsight, error) {
	cache := utils.GetCache()
	if cached := cache.Get(insightsCacheKey(supporter.ID)); cached != nil {
		if insights, ok := cached.([]ConnectionInsight); ok {
			return insights, nil
		}
	}

	var conns []models.UserConnection
	err := db.DB.Preload("RecoveryUser").
		Where("supporter_id = ? AND status = ?", supporter.ID, models.ConnectionAccepted).
		Order("created_at ASC").
		Find(&conns).Error
	if err != nil {
		return nil, fmt.Errorf("loading connections: %w", err)
	}

	insights := make([]ConnectionInsight, 0, len(conns))
	for _, conn := range conns {
		insight, err := buildInsight(conn, now)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}

	cache.Set(insightsCacheKey(supporter.ID), insights, insightsCacheTTL)
	return insights, nil
}

func buildInsight(conn models.UserConnection, now time.Time) (ConnectionInsight, error) {
	user := conn.RecoveryUser
	privacy := user.PrivacySettings.Merged()

	insight := ConnectionInsight{
		ConnectionID:   conn.ID,
		RecoveryUserID: user.ID,
		Username:       user.Username,
	}

	if privacy.ShowStreak {
		streak, err := StreakForUser(&user, now)
		if err != nil {
			return insight, err
		}
		insight.Streak = &streak
	}

	if privacy.ShowMoodTrends {
		weekAgo := dateOnly(now).AddDate(0, 0, -6)
		var entries []models.MoodEntry
		err := db.DB.
			Where("user_id = ? AND created_at >= ?", user.ID, weekAgo).
			Order("created_at ASC").
			Find(&entries).Error
		if err != nil {
			return insight, fmt.Errorf("loading mood trend: %w", err)
		}
		trend := make([]MoodPoint, 0, len(entries))
		for _, e := range entries {
			trend = append(trend, MoodPoint{
				Date: dateOnly(e.CreatedAt).Format("2006-01-02"),
				Mood: e.Mood,
			})
		}
		insight.MoodTrend = trend
	}

	if privacy.ShowCravingLevels || privacy.ShowNotes {
		var latest models.MoodEntry
		err := db.DB.
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			First(&latest).Error
		if err == nil {
			if privacy.ShowCravingLevels {
				craving := string(latest.CravingLevel)
				days := daysBetween(dateOnly(latest.CreatedAt), dateOnly(now))
				insight.LatestCraving = &craving
				insight.DaysSinceLastEntry = &days
			}
			if privacy.ShowNotes && latest.Note != "" {
				insight.LatestNote = &latest.Note
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return insight, fmt.Errorf("loading latest entry: %w", err)
		}
	}

	if privacy.ShowBadges {
		var count int64
		err := db.DB.Model(&models.Badge{}).Where("user_id = ?", user.ID).Count(&count).Error
		if err != nil {
			return insight, fmt.Errorf("counting badges: %w", err)
		}
		n := int(count)
		insight.BadgeCount = &n

		if count > 0 {
			var latest models.Badge
			err := db.DB.
				Where("user_id = ?", user.ID).
				Order("earned_at DESC").
				First(&latest).Error
			if err != nil {
				return insight, fmt.Errorf("loading latest badge: %w", err)
			}
			if info, ok := latest.BadgeType.Info(); ok {
				insight.LatestBadge = &info
			}
		}
	}

	return insight, nil
}
