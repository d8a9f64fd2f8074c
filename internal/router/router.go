package router

import (
	"anchor/internal/handlers"
	"anchor/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	checkInHandler := handlers.NewCheckInHandler()
	connectionHandler := handlers.NewConnectionHandler()
	messageHandler := handlers.NewMessageHandler()
	insightsHandler := handlers.NewInsightsHandler()

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// Authenticated API
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/me", userHandler.Me)
		api.POST("/onboarding/role", userHandler.SetRole)
		api.PUT("/settings/privacy", userHandler.UpdatePrivacy)
		api.DELETE("/account", userHandler.DeleteAccount)
		api.GET("/emojis", userHandler.AllowedEmojis)

		api.POST("/checkins", checkInHandler.Create)
		api.GET("/checkins", checkInHandler.List)
		api.GET("/streak", checkInHandler.Streak)
		api.GET("/badges", checkInHandler.Badges)

		api.POST("/invites", connectionHandler.GenerateInvite)
		api.POST("/invites/email", connectionHandler.EmailInvite)
		api.POST("/invites/redeem", connectionHandler.Redeem)
		api.GET("/connections", connectionHandler.List)
		api.DELETE("/connections/:id", connectionHandler.Remove)

		api.POST("/messages", messageHandler.Send)
		api.GET("/messages", messageHandler.List)
		api.POST("/messages/read", messageHandler.MarkRead)
		api.POST("/messages/nudge", messageHandler.Nudge)

		api.GET("/insights", insightsHandler.List)
	}
}
