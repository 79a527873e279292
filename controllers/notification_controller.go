package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YetundeAlabi/E-voting/config"
	"github.com/YetundeAlabi/E-voting/services"
)

// SendPollNotifications runs the poll-open email batch. Triggered manually
// by an admin or from an external scheduler hitting this endpoint.
func SendPollNotifications(c *gin.Context) {
	if Mailer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Email delivery is not configured"})
		return
	}

	sent, failed, err := services.SendPollOpenEmails(config.DB, Mailer, config.BaseURL, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent, "failed": failed})
}
