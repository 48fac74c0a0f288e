package routes

import (
	"net/http"
	"time"

	"agendador/config"
	"agendador/handlers"
	"agendador/middleware"
	"agendador/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterWebhookRoutes registers the inbound messaging endpoint.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	webhook := r.Group("/webhook")
	{
		webhook.Use(middleware.TwilioSignatureMiddleware(
			config.AppConfig.TwilioAuthToken,
			config.AppConfig.TwilioWebhookURL,
			config.AppConfig.TwilioValidateSignature,
		))
		webhook.POST("/whatsapp", hb.WhatsAppWebhookHandler)
	}
}

// RegisterContactRoutes registers the contact directory endpoints.
func RegisterContactRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/contacts")
	{
		api.GET("", hb.ListContactsHandler)
		api.GET("/:name", hb.GetContactHandler)
		api.PUT("", hb.UpsertContactHandler)
		api.DELETE("/:name", hb.DeleteContactHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, hb)
	RegisterContactRoutes(r, hb)
	RegisterHealthRoute(r)
}
