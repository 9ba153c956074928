package controllers

import (
	"fmt"
	"html"
	"net/http"
	"time"

	"musemint-backend/models"
	"musemint-backend/sender"
	"musemint-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactController struct {
	Email  sender.EmailSender
	Ledger services.LedgerClient
	Inbox  string // notification recipient for contact messages
	Logger *zap.Logger
}

// Contact forwards a contact-form submission to the site inbox and logs a
// row to the ledger relay. The email is load-bearing; the ledger row is
// best-effort.
func (ct *ContactController) Contact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := fmt.Sprintf(
		"<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
		html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message),
	)
	if _, err := ct.Email.SendEmail(c.Request.Context(), ct.Inbox, "New contact message", body); err != nil {
		ct.Logger.Error("Contact email failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to deliver message"})
		return
	}

	row := models.LedgerRow{
		Sheet:     "contact",
		Email:     msg.Email,
		Message:   msg.Message,
		Timestamp: time.Now().UTC(),
	}
	if err := ct.Ledger.AppendRow(c.Request.Context(), row); err != nil {
		ct.Logger.Warn("Contact ledger append failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// Lead records a lead-capture submission in the ledger relay.
func (ct *ContactController) Lead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row := models.LedgerRow{
		Sheet:     "leads",
		Email:     lead.Email,
		Source:    lead.Source,
		Timestamp: time.Now().UTC(),
	}
	if err := ct.Ledger.AppendRow(c.Request.Context(), row); err != nil {
		ct.Logger.Error("Lead ledger append failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to record lead"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recorded": true})
}
