package handlers

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"anchor/internal/db"
	"anchor/internal/models"
	"anchor/internal/services"
	"anchor/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct{}

func NewMessageHandler() *MessageHandler {
	return &MessageHandler{}
}

type sendMessageRequest struct {
	ToUserID uint   `json:"to_user_id"`
	Message  string `json:"message"`
	Emoji    string `json:"emoji"`
}

// Send delivers an encouragement note from a supporter to a connected
// recovery user.
func (h *MessageHandler) Send(c *gin.Context) {
	user := CurrentUser(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	message := utils.CleanText(req.Message)
	if message == "" {
		Fail(c, http.StatusBadRequest, "Message cannot be empty")
		return
	}
	if utf8.RuneCountInString(message) > models.MaxMessageLen {
		Fail(c, http.StatusBadRequest, "Message is too long (200 characters max)")
		return
	}
	if !models.EmojiAllowed(req.Emoji) {
		Fail(c, http.StatusBadRequest, "That emoji isn't in the allowed set")
		return
	}

	if user.Role != models.RoleSupporter {
		Fail(c, http.StatusForbidden, "Only supporters can send encouragements")
		return
	}

	var conn models.UserConnection
	err := db.DB.
		Where("supporter_id = ? AND recovery_user_id = ? AND status = ?",
			user.ID, req.ToUserID, models.ConnectionAccepted).
		First(&conn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Fail(c, http.StatusForbidden, "You can only message people you're connected with")
		return
	}
	if err != nil {
		FailStorage(c, err)
		return
	}

	msg := models.SupportMessage{
		FromUserID: user.ID,
		ToUserID:   req.ToUserID,
		Message:    message,
		Emoji:      req.Emoji,
	}
	if err := db.DB.Create(&msg).Error; err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": msg})
}

// List returns the caller's received messages, newest first.
func (h *MessageHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var messages []models.SupportMessage
	err := db.DB.Preload("FromUser").
		Where("to_user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&messages).Error
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "unread_count": UnreadCount(c)})
}

type markReadRequest struct {
	IDs []uint `json:"ids"`
}

// MarkRead stamps read_at on the caller's received messages. Only the
// recipient can mark a message read; ids belonging to others are
// silently skipped by the ownership filter.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	user := CurrentUser(c)

	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		Fail(c, http.StatusBadRequest, "No message ids given")
		return
	}

	readAt := time.Now()
	err := db.DB.Model(&models.SupportMessage{}).
		Where("id IN ? AND to_user_id = ? AND read_at IS NULL", req.IDs, user.ID).
		Update("read_at", readAt).Error
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "read_at": readAt})
}

type nudgeRequest struct {
	ToUserID uint `json:"to_user_id"`
}

// Nudge sends an automated check-in reminder, subject to the cooldown
// and recent-activity gates.
func (h *MessageHandler) Nudge(c *gin.Context) {
	user := CurrentUser(c)

	var req nudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := services.SendNudge(user, req.ToUserID, time.Now())

	var cooldownErr *services.NudgeCooldownError
	switch {
	case errors.Is(err, services.ErrNudgeForbidden):
		Fail(c, http.StatusForbidden, "You can only nudge people you're connected with")
	case errors.As(err, &cooldownErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "You nudged them recently, give it a little time",
			"cooldown_hours":    cooldownErr.CooldownHours,
			"next_available_at": cooldownErr.NextAvailableAt,
		})
	case errors.Is(err, services.ErrNudgeRecent):
		Fail(c, http.StatusBadRequest, "They checked in recently, no reminder needed")
	case err != nil:
		FailStorage(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"reason":            result.Reason,
			"cooldown_hours":    result.CooldownHours,
			"next_available_at": result.NextAvailableAt,
		})
	}
}
