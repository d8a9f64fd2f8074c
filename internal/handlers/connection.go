package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"
	"anchor/internal/services"
	"anchor/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ConnectionHandler struct {
	mailService *services.MailService
}

func NewConnectionHandler() *ConnectionHandler {
	return &ConnectionHandler{
		mailService: services.NewMailService(),
	}
}

// GenerateInvite issues (or re-returns) the caller's shareable code.
func (h *ConnectionHandler) GenerateInvite(c *gin.Context) {
	user := CurrentUser(c)

	code, expires, err := services.GenerateInvite(user, time.Now())
	if errors.Is(err, services.ErrInviteWrongRole) {
		Fail(c, http.StatusForbidden, "Only recovery users can invite supporters")
		return
	}
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       code,
		"display":    services.FormatInviteCode(code),
		"expires_at": expires,
	})
}

type emailInviteRequest struct {
	Email string `json:"email"`
}

// EmailInvite sends the caller's pending code to a supporter's address.
// Generates a code first when none is pending.
func (h *ConnectionHandler) EmailInvite(c *gin.Context) {
	user := CurrentUser(c)

	var req emailInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		Fail(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	code, expires, err := services.GenerateInvite(user, time.Now())
	if errors.Is(err, services.ErrInviteWrongRole) {
		Fail(c, http.StatusForbidden, "Only recovery users can invite supporters")
		return
	}
	if err != nil {
		FailStorage(c, err)
		return
	}

	h.mailService.SendInviteCodeEmail(email, user.Username, code, expires)
	c.JSON(http.StatusOK, gin.H{"success": true, "expires_at": expires})
}

type redeemRequest struct {
	Code             string `json:"code"`
	RelationshipNote string `json:"relationship_note"`
}

// Redeem exchanges an invite code for an accepted connection.
func (h *ConnectionHandler) Redeem(c *gin.Context) {
	user := CurrentUser(c)

	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	note := utils.CleanText(req.RelationshipNote)
	conn, err := services.RedeemInvite(user, req.Code, note, time.Now())
	switch {
	case errors.Is(err, services.ErrInviteWrongRole):
		Fail(c, http.StatusForbidden, "Only supporters can redeem invite codes")
	case errors.Is(err, services.ErrInviteMalformed):
		Fail(c, http.StatusBadRequest, "Invite codes are 6 characters")
	case errors.Is(err, services.ErrInviteNotFound):
		Fail(c, http.StatusNotFound, "That code doesn't match an active invite")
	case errors.Is(err, services.ErrInviteExpired):
		Fail(c, http.StatusGone, "That code has expired, ask for a new one")
	case err != nil:
		FailStorage(c, err)
	default:
		services.InvalidateInsights(user.ID)
		c.JSON(http.StatusOK, gin.H{"success": true, "connection": conn})
	}
}

// List returns the caller's connections from whichever side they're on.
func (h *ConnectionHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var conns []models.UserConnection
	err := db.DB.
		Where("supporter_id = ? OR recovery_user_id = ?", user.ID, user.ID).
		Order("created_at DESC").
		Find(&conns).Error
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// Remove deletes a connection. Either party may do it; anyone else gets
// a 403.
func (h *ConnectionHandler) Remove(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var conn models.UserConnection
	if err := db.DB.First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Fail(c, http.StatusNotFound, "Connection not found")
			return
		}
		FailStorage(c, err)
		return
	}

	if conn.SupporterID != user.ID && conn.RecoveryUserID != user.ID {
		Fail(c, http.StatusForbidden, "You're not part of this connection")
		return
	}

	if err := db.DB.Delete(&conn).Error; err != nil {
		FailStorage(c, err)
		return
	}

	services.InvalidateInsights(conn.SupporterID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
