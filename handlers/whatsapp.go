package handlers

import (
	"net/http"
	"strings"

	"agendador/services/dialogue"
	"agendador/services/notification"
	"agendador/services/speech"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const replyVoiceFailed = "Não consegui ouvir seu áudio. Pode escrever a mensagem?"

// WhatsAppHandler receives Twilio webhook callbacks and replies through the
// outbound messenger.
type WhatsAppHandler struct {
	Dialogue    dialogue.DialogueService
	Messenger   notification.Messenger
	Transcriber speech.Transcriber // optional, enables voice notes
}

func NewWhatsAppHandler(dlg dialogue.DialogueService, messenger notification.Messenger, transcriber speech.Transcriber) *WhatsAppHandler {
	return &WhatsAppHandler{
		Dialogue:    dlg,
		Messenger:   messenger,
		Transcriber: transcriber,
	}
}

// WebhookHandler handles one inbound WhatsApp message. Twilio only needs a
// 200 acknowledgment; the actual reply goes out through the Messages API.
func (h *WhatsAppHandler) WebhookHandler(c *gin.Context) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	from := c.PostForm("From")
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing From field"})
		return
	}
	body := strings.TrimSpace(c.PostForm("Body"))

	// Voice notes arrive as media with an empty body.
	if body == "" && c.DefaultPostForm("NumMedia", "0") != "0" &&
		strings.HasPrefix(c.PostForm("MediaContentType0"), "audio/") {
		transcript, ok := h.transcribeVoiceNote(c)
		if !ok {
			h.reply(c, from, replyVoiceFailed)
			return
		}
		body = transcript
	}

	if body == "" {
		logger.Debug("Ignoring empty inbound message", zap.String("from", from))
		c.String(http.StatusOK, "OK")
		return
	}

	logger.Info("Inbound message", zap.String("from", from))
	replyText := h.Dialogue.HandleTurn(ctx, from, body)
	h.reply(c, from, replyText)
}

func (h *WhatsAppHandler) transcribeVoiceNote(c *gin.Context) (string, bool) {
	logger := getLogger(c)
	ctx := c.Request.Context()

	if h.Transcriber == nil {
		logger.Warn("Voice note received but transcription is disabled")
		return "", false
	}

	audio, err := h.Messenger.FetchMedia(ctx, c.PostForm("MediaUrl0"))
	if err != nil {
		logger.Error("Failed to fetch voice note", zap.Error(err))
		return "", false
	}
	transcript, err := h.Transcriber.Transcribe(ctx, audio)
	if err != nil || transcript == "" {
		logger.Error("Failed to transcribe voice note", zap.Error(err))
		return "", false
	}
	return transcript, true
}

func (h *WhatsAppHandler) reply(c *gin.Context, to, text string) {
	logger := getLogger(c)
	if err := h.Messenger.SendWhatsApp(c.Request.Context(), to, text); err != nil {
		logger.Error("Failed to send WhatsApp reply", zap.String("to", to), zap.Error(err))
	}
	c.String(http.StatusOK, "OK")
}
