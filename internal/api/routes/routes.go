package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/barman-ayush/imitate.ai/internal/api/handlers"
	"github.com/barman-ayush/imitate.ai/internal/api/middleware"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Companion *handlers.CompanionHandler
	Chat      *handlers.ChatHandler
	// RateLimit guards the chat route; it runs after auth so quota is
	// charged per user, and before the handler touches any store.
	RateLimit gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.POST("/auth/signup", d.Auth.Signup)
	api.POST("/auth/login", d.Auth.Login)

	// Protected routes (JWT)
	auth := api.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/chat/:companion_id", d.RateLimit, d.Chat.Send)

	auth.GET("/companions", d.Companion.List)
	auth.POST("/companions", d.Companion.Create)
	auth.GET("/companions/:id", d.Companion.Get)
	auth.PUT("/companions/:id", d.Companion.Update)
	auth.DELETE("/companions/:id", d.Companion.Delete)
	auth.GET("/companions/:id/messages", d.Companion.ListMessages)
	auth.POST("/companions/:id/memory", d.Companion.IngestMemory)
}
