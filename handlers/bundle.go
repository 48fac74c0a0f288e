// File: agendador/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Messaging webhook
	WhatsAppWebhookHandler gin.HandlerFunc

	// Contact directory endpoints
	ListContactsHandler  gin.HandlerFunc
	GetContactHandler    gin.HandlerFunc
	UpsertContactHandler gin.HandlerFunc
	DeleteContactHandler gin.HandlerFunc
}
