package handlers

import (
	"net/http"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"
	"anchor/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the caller's profile plus the streak summary and badges the
// dashboard is built from.
func (h *UserHandler) Me(c *gin.Context) {
	user := CurrentUser(c)

	streak, err := services.StreakForUser(user, time.Now())
	if err != nil {
		FailStorage(c, err)
		return
	}

	var badges []models.Badge
	if err := db.DB.Where("user_id = ?", user.ID).Order("earned_at ASC").Find(&badges).Error; err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"privacy":      user.PrivacySettings.Merged(),
		"streak":       streak,
		"badges":       decorateBadges(badges),
		"unread_count": UnreadCount(c),
	})
}

type onboardingRequest struct {
	Role              models.Role `json:"role"`
	SobrietyStartDate string      `json:"sobriety_start_date"` // YYYY-MM-DD
}

// SetRole handles onboarding. The role can be changed later; the
// sobriety start date only applies to the recovery role.
func (h *UserHandler) SetRole(c *gin.Context) {
	user := CurrentUser(c)

	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Role.Valid() {
		Fail(c, http.StatusBadRequest, "Unknown role")
		return
	}

	updates := map[string]interface{}{"role": req.Role}

	if req.Role == models.RoleRecovery && req.SobrietyStartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", req.SobrietyStartDate, time.Local)
		if err != nil {
			Fail(c, http.StatusBadRequest, "Sobriety start date must be YYYY-MM-DD")
			return
		}
		if start.After(time.Now()) {
			Fail(c, http.StatusBadRequest, "Sobriety start date cannot be in the future")
			return
		}
		updates["sobriety_start_date"] = start
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "role": req.Role})
}

// UpdatePrivacy replaces the caller's sharing toggles. Only the fields
// present in the body change; the rest keep their stored (or default)
// values.
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	user := CurrentUser(c)

	var req models.PrivacySettings
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings := user.PrivacySettings
	if settings == nil {
		settings = &models.PrivacySettings{}
	}
	if req.ShowMoodTrends != nil {
		settings.ShowMoodTrends = req.ShowMoodTrends
	}
	if req.ShowCravingLevels != nil {
		settings.ShowCravingLevels = req.ShowCravingLevels
	}
	if req.ShowNotes != nil {
		settings.ShowNotes = req.ShowNotes
	}
	if req.ShowStreak != nil {
		settings.ShowStreak = req.ShowStreak
	}
	if req.ShowBadges != nil {
		settings.ShowBadges = req.ShowBadges
	}

	if err := db.DB.Model(user).Update("privacy_settings", settings).Error; err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "privacy": settings.Merged()})
}

// DeleteAccount hard-deletes the caller and everything hanging off them.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := CurrentUser(c)

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.MoodEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Badge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("supporter_id = ? OR recovery_user_id = ?", user.ID, user.ID).
			Delete(&models.UserConnection{}).Error; err != nil {
			return err
		}
		if err := tx.Where("from_user_id = ? OR to_user_id = ?", user.ID, user.ID).
			Delete(&models.SupportMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, user.ID).Error
	})
	if err != nil {
		FailStorage(c, err)
		return
	}

	services.InvalidateInsights(user.ID)

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AllowedEmojis exposes the emoji allow-set for message composers.
func (h *UserHandler) AllowedEmojis(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"emojis": models.AllowedEmojis()})
}

// decoratedBadge pairs an awarded badge with its static display data.
type decoratedBadge struct {
	models.Badge
	models.BadgeInfo
}

func decorateBadges(badges []models.Badge) []decoratedBadge {
	out := make([]decoratedBadge, 0, len(badges))
	for _, b := range badges {
		info, _ := b.BadgeType.Info()
		out = append(out, decoratedBadge{Badge: b, BadgeInfo: info})
	}
	return out
}
