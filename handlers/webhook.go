package handlers

import (
	"net/http"

	"riverwood/models"
	"riverwood/queue"
	"riverwood/utils"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives inbound chat events from the transport adapter and
// hands them to the gate.
type WebhookHandler struct {
	Gate *queue.Gate
}

func NewWebhookHandler(gate *queue.Gate) *WebhookHandler {
	return &WebhookHandler{Gate: gate}
}

type inboundEvent struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Text      string `json:"text"`
	MessageID string `json:"message_id" binding:"required"`
	Kind      string `json:"kind"`
}

// HandleInboundMessage accepts one raw chat event. The gate never returns an
// error to the transport; delivery problems are logged server-side.
func (h *WebhookHandler) HandleInboundMessage(c *gin.Context) {
	var event inboundEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid inbound event", err.Error())
		return
	}

	kind := models.MessageKind(event.Kind)
	if kind == "" {
		kind = models.MessageKindText
	}

	h.Gate.OnInboundMessage(c.Request.Context(), event.SubjectID, event.Text, event.MessageID, kind)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
