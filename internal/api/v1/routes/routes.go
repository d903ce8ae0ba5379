package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"complaintbox/internal/api/v1/handlers"
	"complaintbox/internal/api/v1/services"
)

// ServiceContainer holds the services needed by handlers.
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	AuthService          services.AuthService
}

// RegisterRoutes mounts the relay's routes. The mobile client expects
// them at the root, not under a versioned prefix.
func RegisterRoutes(router gin.IRouter, container *ServiceContainer) {
	uploadHandler := handlers.NewUploadHandler(container.TranscriptionService)
	router.POST("/upload", uploadHandler.Upload)

	if container.AuthService != nil {
		authHandler := handlers.NewAuthHandler(container.AuthService)
		router.POST("/register", authHandler.Register)
		router.POST("/login", authHandler.Login)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
