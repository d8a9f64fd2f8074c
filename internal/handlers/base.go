package handlers

import (
	"log"
	"net/http"

	"anchor/internal/middleware"
	"anchor/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser pulls the session user loaded by middleware.LoadUser.
// Handlers behind AuthRequired can rely on it being present.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// UnreadCount returns the unread message count middleware.LoadUser
// fetched for the session user, or 0 when none was loaded.
func UnreadCount(c *gin.Context) int64 {
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		if n, ok := count.(int64); ok {
			return n
		}
	}
	return 0
}

// Fail writes a short, actionable JSON error.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FailStorage logs the real failure server-side and tells the caller to
// try again without exposing internal detail.
func FailStorage(c *gin.Context, err error) {
	log.Printf("Storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Fail(c, http.StatusInternalServerError, "Something went wrong, please try again")
}
