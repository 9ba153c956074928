package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VoiceController struct {
	Logger *zap.Logger
}

const voiceGreeting = `<?xml version="1.0" encoding="UTF-8"?>
<Response>
  <Say voice="alice">Thanks for calling MuseMint. For store hours and order questions, visit musemint dot com. To leave a message, stay on the line after the tone.</Say>
  <Record maxLength="120" playBeep="true"/>
</Response>`

// Incoming answers Twilio's voice webhook with a static TwiML menu.
// Twilio retries on non-2xx; there is no state to verify here.
func (vc *VoiceController) Incoming(c *gin.Context) {
	vc.Logger.Info("Incoming voice call",
		zap.String("from", c.PostForm("From")),
		zap.String("call_sid", c.PostForm("CallSid")),
	)
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(voiceGreeting))
}
