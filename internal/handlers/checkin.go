package handlers

import (
	"net/http"
	"time"
	"unicode/utf8"

	"anchor/internal/db"
	"anchor/internal/models"
	"anchor/internal/services"
	"anchor/internal/utils"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct{}

func NewCheckInHandler() *CheckInHandler {
	return &CheckInHandler{}
}

type checkInRequest struct {
	Mood          models.Mood         `json:"mood"`
	CravingLevel  models.CravingLevel `json:"craving_level"`
	StressLevel   *int                `json:"stress_level"`
	SleepQuality  *int                `json:"sleep_quality"`
	Note          string              `json:"note"`
	StressTrigger string              `json:"stress_trigger"`
}

// Create logs a mood entry, then runs the streak and badge pass. Newly
// granted badges come back in the response so the client can celebrate.
func (h *CheckInHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.Mood.Valid() {
		Fail(c, http.StatusBadRequest, "Unknown mood")
		return
	}
	if !req.CravingLevel.Valid() {
		Fail(c, http.StatusBadRequest, "Unknown craving level")
		return
	}

	note := utils.CleanText(req.Note)
	if utf8.RuneCountInString(note) > models.MaxNoteLen {
		Fail(c, http.StatusBadRequest, "Note is too long (500 characters max)")
		return
	}
	trigger := utils.CleanText(req.StressTrigger)
	if utf8.RuneCountInString(trigger) > models.MaxStressTriggerLen {
		Fail(c, http.StatusBadRequest, "Stress trigger is too long (120 characters max)")
		return
	}

	entry := models.MoodEntry{
		UserID:        user.ID,
		Mood:          req.Mood,
		CravingLevel:  req.CravingLevel,
		StressLevel:   req.StressLevel,
		SleepQuality:  req.SleepQuality,
		Note:          note,
		StressTrigger: trigger,
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		FailStorage(c, err)
		return
	}

	now := time.Now()
	newBadges, err := services.EvaluateCheckIn(user, &entry, now)
	if err != nil {
		FailStorage(c, err)
		return
	}

	streak, err := services.StreakForUser(user, now)
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"entry":      entry,
		"streak":     streak,
		"new_badges": decorateBadges(newBadges),
	})
}

// List returns the caller's most recent check-ins, newest first.
func (h *CheckInHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var entries []models.MoodEntry
	err := db.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(30).
		Find(&entries).Error
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Streak returns the caller's streak result on its own, for lightweight
// dashboard polling.
func (h *CheckInHandler) Streak(c *gin.Context) {
	user := CurrentUser(c)

	streak, err := services.StreakForUser(user, time.Now())
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, streak)
}

// Badges lists everything the caller has earned.
func (h *CheckInHandler) Badges(c *gin.Context) {
	user := CurrentUser(c)

	var badges []models.Badge
	if err := db.DB.Where("user_id = ?", user.ID).Order("earned_at ASC").Find(&badges).Error; err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": decorateBadges(badges)})
}
