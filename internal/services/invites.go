package services

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"anchor/internal/db"
	"anchor/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// inviteAlphabet avoids look-alike characters (I, O, 0, 1).
const inviteAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	inviteCodeLen = 6
	inviteTTL     = 24 * time.Hour
)

var (
	ErrInviteWrongRole = errors.New("invite: wrong role")
	ErrInviteMalformed = errors.New("invite: malformed code")
	ErrInviteNotFound  = errors.New("invite: code not found or inactive")
	ErrInviteExpired   = errors.New("invite: code expired")
)

// generateInviteCode draws a 6-character code from the unambiguous
// alphabet. Uses a crypto source, falling back to math/rand if it is
// unavailable; the code is short-lived and rate-limited, not a secret.
func generateInviteCode() string {
	buf := make([]byte, inviteCodeLen)
	if _, err := crand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = byte(rand.Intn(256))
		}
	}
	code := make([]byte, inviteCodeLen)
	for i, b := range buf {
		code[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(code)
}

// NormalizeInviteCode uppercases a raw code and strips surrounding
// whitespace. Comparison and storage both use the normalized form.
func NormalizeInviteCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// FormatInviteCode chunks a stored code into groups of 3 for display,
// e.g. "ABCDEF" -> "ABC-DEF".
func FormatInviteCode(code string) string {
	if len(code) != inviteCodeLen {
		return code
	}
	return code[:3] + "-" + code[3:]
}

// TruncateRelationshipNote trims a note and truncates it to the storage
// limit, marking the cut with an ellipsis.
func TruncateRelationshipNote(note string) string {
	note = strings.TrimSpace(note)
	runes := []rune(note)
	if len(runes) <= models.MaxRelationshipNoteLen {
		return note
	}
	return string(runes[:models.MaxRelationshipNoteLen-3]) + "…"
}

// GenerateInvite returns the user's shareable code. While an unexpired
// code exists it is returned unchanged, so a code already shared is never
// invalidated; otherwise a fresh one is drawn with a 24h expiry.
func GenerateInvite(user *models.User, now time.Time) (string, time.Time, error) {
	if user.Role != models.RoleRecovery {
		return "", time.Time{}, ErrInviteWrongRole
	}

	if user.PendingSupportInviteCode != nil &&
		user.PendingSupportInviteExpiresAt != nil &&
		user.PendingSupportInviteExpiresAt.After(now) {
		return *user.PendingSupportInviteCode, *user.PendingSupportInviteExpiresAt, nil
	}

	code := generateInviteCode()
	expires := now.Add(inviteTTL)
	err := db.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"pending_support_invite_code":       code,
			"pending_support_invite_expires_at": expires,
		}).Error
	if err != nil {
		return "", time.Time{}, fmt.Errorf("storing invite code: %w", err)
	}
	user.PendingSupportInviteCode = &code
	user.PendingSupportInviteExpiresAt = &expires
	return code, expires, nil
}

// RedeemInvite validates a raw code for a supporter and establishes (or
// re-activates) the connection to the recovery user who issued it.
func RedeemInvite(supporter *models.User, rawCode, note string, now time.Time) (*models.UserConnection, error) {
	if supporter.Role != models.RoleSupporter {
		return nil, ErrInviteWrongRole
	}

	code := NormalizeInviteCode(rawCode)
	if len(code) != inviteCodeLen {
		return nil, ErrInviteMalformed
	}

	var owner models.User
	err := db.DB.Where("pending_support_invite_code = ?", code).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up invite code: %w", err)
	}
	if owner.PendingSupportInviteExpiresAt == nil || !owner.PendingSupportInviteExpiresAt.After(now) {
		return nil, ErrInviteExpired
	}

	conn, err := upsertConnection(supporter.ID, owner.ID, TruncateRelationshipNote(note), now)
	if err != nil {
		return nil, err
	}

	// The connection is committed; clearing the one-shot code is
	// best-effort and failure only gets logged.
	err = db.DB.Model(&models.User{}).
		Where("id = ?", owner.ID).
		Updates(map[string]interface{}{
			"pending_support_invite_code":       nil,
			"pending_support_invite_expires_at": nil,
		}).Error
	if err != nil {
		log.Printf("Failed to clear invite code for user %d: %v", owner.ID, err)
	}

	return conn, nil
}

// upsertConnection resolves the (supporter, recovery user) pair to a
// single accepted connection: already accepted is a no-op success, a
// pending/declined row transitions to accepted, and a missing row is
// inserted accepted. The unique index backstops concurrent redemptions.
func upsertConnection(supporterID, recoveryUserID uint, note string, now time.Time) (*models.UserConnection, error) {
	var conn models.UserConnection
	err := db.DB.
		Where("supporter_id = ? AND recovery_user_id = ?", supporterID, recoveryUserID).
		First(&conn).Error
	if err == nil {
		if conn.Status == models.ConnectionAccepted {
			return &conn, nil
		}
		conn.Status = models.ConnectionAccepted
		conn.AcceptedAt = &now
		if note != "" {
			conn.RelationshipNote = note
		}
		if err := db.DB.Save(&conn).Error; err != nil {
			return nil, fmt.Errorf("accepting connection: %w", err)
		}
		return &conn, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up connection: %w", err)
	}

	conn = models.UserConnection{
		SupporterID:      supporterID,
		RecoveryUserID:   recoveryUserID,
		Status:           models.ConnectionAccepted,
		RelationshipNote: note,
		AcceptedAt:       &now,
	}
	result := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&conn)
	if result.Error != nil {
		return nil, fmt.Errorf("creating connection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost a race with a concurrent redemption; reuse its row.
		err := db.DB.
			Where("supporter_id = ? AND recovery_user_id = ?", supporterID, recoveryUserID).
			First(&conn).Error
		if err != nil {
			return nil, fmt.Errorf("reloading connection: %w", err)
		}
	}
	return &conn, nil
}
