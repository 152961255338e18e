package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GatewayMessenger delivers outbound messages through the chat transport
// adapter's HTTP API.
type GatewayMessenger struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewGatewayMessenger creates a Messenger that posts to the chat gateway.
func NewGatewayMessenger(baseURL, token string, logger *zap.Logger) *GatewayMessenger {
	return &GatewayMessenger{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Logger:  logger,
	}
}

type outboundMessage struct {
	To      string `json:"to"`
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (m *GatewayMessenger) post(ctx context.Context, msg outboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal outbound message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.Token != "" {
		req.Header.Set("Authorization", "Bearer "+m.Token)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach chat gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("chat gateway returned status %d", resp.StatusCode)
	}
	m.Logger.Debug("outbound message delivered",
		zap.String("to", msg.To), zap.String("type", msg.Type))
	return nil
}

// SendText delivers a plain text message to the subject.
func (m *GatewayMessenger) SendText(ctx context.Context, subjectID, text string) error {
	return m.post(ctx, outboundMessage{To: subjectID, Type: "text", Text: text})
}

// SendImage delivers an image with an optional caption. Callers fall back to
// SendText when this fails.
func (m *GatewayMessenger) SendImage(ctx context.Context, subjectID, url, caption string) error {
	return m.post(ctx, outboundMessage{To: subjectID, Type: "image", URL: url, Caption: caption})
}

// SendVideo delivers a video message to the subject.
func (m *GatewayMessenger) SendVideo(ctx context.Context, subjectID, url string) error {
	return m.post(ctx, outboundMessage{To: subjectID, Type: "video", URL: url})
}
