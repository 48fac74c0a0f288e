package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agendador/utils"

	"go.uber.org/zap"
)

// Messenger delivers outbound WhatsApp messages and fetches inbound media
// (voice notes) from the transport provider.
type Messenger interface {
	SendWhatsApp(ctx context.Context, to, body string) error
	FetchMedia(ctx context.Context, mediaURL string) ([]byte, error)
}

// Package-level HTTP client for Twilio API calls.
var twilioHTTPClient = &http.Client{Timeout: 10 * time.Second}

// TwilioMessenger is the production Messenger, speaking the Twilio REST API
// with account-SID basic auth.
type TwilioMessenger struct {
	AccountSID string
	AuthToken  string
	FromNumber string // e.g. "whatsapp:+14155238886"
}

func NewTwilioMessenger(accountSID, authToken, fromNumber string) *TwilioMessenger {
	return &TwilioMessenger{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
	}
}

// SendWhatsApp posts one message to the Twilio Messages endpoint.
func (m *TwilioMessenger) SendWhatsApp(ctx context.Context, to, body string) error {
	logger := utils.GetLogger()

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", m.AccountSID)
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", m.FromNumber)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build Twilio request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(m.AccountSID, m.AuthToken)

	resp, err := twilioHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Twilio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("Twilio rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", to),
			zap.ByteString("detail", detail))
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	logger.Debug("WhatsApp message sent", zap.String("to", to))
	return nil
}

// FetchMedia downloads an inbound media attachment (Twilio media URLs require
// the same basic auth as the REST API).
func (m *TwilioMessenger) FetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build media request: %w", err)
	}
	req.SetBasicAuth(m.AccountSID, m.AuthToken)

	resp, err := twilioHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
}
