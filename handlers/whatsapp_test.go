package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialogue struct {
	reply string
	calls []struct{ userID, text string }
}

func (f *fakeDialogue) HandleTurn(ctx context.Context, userID, text string) string {
	f.calls = append(f.calls, struct{ userID, text string }{userID, text})
	return f.reply
}

type fakeMessenger struct {
	sent     []struct{ to, body string }
	sendErr  error
	media    []byte
	mediaErr error
}

func (f *fakeMessenger) SendWhatsApp(ctx context.Context, to, body string) error {
	f.sent = append(f.sent, struct{ to, body string }{to, body})
	return f.sendErr
}

func (f *fakeMessenger) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	return f.media, f.mediaErr
}

type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return f.transcript, f.err
}

func postWebhook(h *WhatsAppHandler, form url.Values) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/whatsapp", h.WebhookHandler)

	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_TextMessageRepliesToSender(t *testing.T) {
	dlg := &fakeDialogue{reply: "Entendido!"}
	messenger := &fakeMessenger{}
	h := NewWhatsAppHandler(dlg, messenger, nil)

	w := postWebhook(h, url.Values{
		"From": {"whatsapp:+5511999999999"},
		"Body": {"agendar reunião amanhã"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	require.Len(t, dlg.calls, 1)
	assert.Equal(t, "whatsapp:+5511999999999", dlg.calls[0].userID)
	assert.Equal(t, "agendar reunião amanhã", dlg.calls[0].text)

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "whatsapp:+5511999999999", messenger.sent[0].to)
	assert.Equal(t, "Entendido!", messenger.sent[0].body)
}

func TestWebhook_MissingFromIsBadRequest(t *testing.T) {
	dlg := &fakeDialogue{}
	h := NewWhatsAppHandler(dlg, &fakeMessenger{}, nil)

	w := postWebhook(h, url.Values{"Body": {"oi"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, dlg.calls)
}

func TestWebhook_EmptyBodyIsAcknowledgedWithoutTurn(t *testing.T) {
	dlg := &fakeDialogue{}
	messenger := &fakeMessenger{}
	h := NewWhatsAppHandler(dlg, messenger, nil)

	w := postWebhook(h, url.Values{
		"From": {"whatsapp:+5511999999999"},
		"Body": {"   "},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dlg.calls)
	assert.Empty(t, messenger.sent)
}

func TestWebhook_VoiceNoteIsTranscribed(t *testing.T) {
	dlg := &fakeDialogue{reply: "Entendido!"}
	messenger := &fakeMessenger{media: []byte("opus-bytes")}
	h := NewWhatsAppHandler(dlg, messenger, &fakeTranscriber{transcript: "agendar reunião"})

	w := postWebhook(h, url.Values{
		"From":              {"whatsapp:+5511999999999"},
		"NumMedia":          {"1"},
		"MediaContentType0": {"audio/ogg"},
		"MediaUrl0":         {"https://api.twilio.example/media/1"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, dlg.calls, 1)
	assert.Equal(t, "agendar reunião", dlg.calls[0].text)
}

func TestWebhook_VoiceNoteFailureSendsFallback(t *testing.T) {
	dlg := &fakeDialogue{}
	messenger := &fakeMessenger{mediaErr: errors.New("media gone")}
	h := NewWhatsAppHandler(dlg, messenger, &fakeTranscriber{})

	w := postWebhook(h, url.Values{
		"From":              {"whatsapp:+5511999999999"},
		"NumMedia":          {"1"},
		"MediaContentType0": {"audio/ogg"},
		"MediaUrl0":         {"https://api.twilio.example/media/1"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, dlg.calls)
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, replyVoiceFailed, messenger.sent[0].body)
}

func TestWebhook_VoiceNoteWithoutTranscriberSendsFallback(t *testing.T) {
	dlg := &fakeDialogue{}
	messenger := &fakeMessenger{media: []byte("opus-bytes")}
	h := NewWhatsAppHandler(dlg, messenger, nil)

	w := postWebhook(h, url.Values{
		"From":              {"whatsapp:+5511999999999"},
		"NumMedia":          {"1"},
		"MediaContentType0": {"audio/ogg"},
		"MediaUrl0":         {"https://api.twilio.example/media/1"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, replyVoiceFailed, messenger.sent[0].body)
}

func TestWebhook_SendFailureStillAcknowledges(t *testing.T) {
	dlg := &fakeDialogue{reply: "Entendido!"}
	messenger := &fakeMessenger{sendErr: errors.New("twilio down")}
	h := NewWhatsAppHandler(dlg, messenger, nil)

	w := postWebhook(h, url.Values{
		"From": {"whatsapp:+5511999999999"},
		"Body": {"oi"},
	})

	// Twilio retries on non-2xx; a send failure must not trigger that.
	assert.Equal(t, http.StatusOK, w.Code)
}
