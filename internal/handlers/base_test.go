package handlers

import (
	"net/http/httptest"
	"testing"

	"anchor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TestUnreadCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := UnreadCount(c); got != 0 {
		t.Errorf("UnreadCount with no session user = %d, want 0", got)
	}

	c.Set(middleware.UnreadCountKey, int64(3))
	if got := UnreadCount(c); got != 3 {
		t.Errorf("UnreadCount = %d, want 3", got)
	}
}
