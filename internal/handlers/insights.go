package handlers

import (
	"net/http"
	"time"

	"anchor/internal/models"
	"anchor/internal/services"

	"github.com/gin-gonic/gin"
)

type InsightsHandler struct{}

func NewInsightsHandler() *InsightsHandler {
	return &InsightsHandler{}
}

// List returns one snapshot per accepted connection, filtered by each
// recovery user's privacy toggles.
func (h *InsightsHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	if user.Role != models.RoleSupporter {
		Fail(c, http.StatusForbidden, "Insights are for supporters")
		return
	}

	insights, err := services.SupporterInsights(user, time.Now())
	if err != nil {
		FailStorage(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": insights})
}
