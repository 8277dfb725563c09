package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/oba-digital/obi-backend/internal/handler"
	"github.com/oba-digital/obi-backend/internal/middleware"
)

// NewRouter wires all HTTP routes.
func NewRouter(h *handler.Handler, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recover(), middleware.Logging())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/question", h.HandleQuestion)
		api.DELETE("/conversation/:id", h.HandleEndConversation)

		api.GET("/history/:userId", h.HandleListHistory)
		api.POST("/history", h.HandleSaveHistory)
		api.DELETE("/history", h.HandleDeleteHistory)

		api.GET("/help-questions", h.HandleHelpQuestions)
		api.POST("/translate", h.HandleTranslate)
		api.POST("/upload", h.HandleUpload)
	}

	return router
}
