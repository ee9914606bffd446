// Package telegram posts operational alerts to a Telegram chat through the
// Bot API's sendMessage endpoint.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tingnect/event-api/internal/config"
)

const defaultEndpoint = "https://api.telegram.org"

// Notifier sends one message per call. If either the bot token or the chat
// id is unconfigured, Enabled() is false and the caller skips the stage
// without issuing any HTTP request.
type Notifier struct {
	token    string
	chatID   string
	endpoint string
	client   *http.Client
}

// Option customizes a Notifier.
type Option func(*Notifier)

// WithEndpoint overrides the Bot API base URL. Used by tests.
func WithEndpoint(url string) Option {
	return func(n *Notifier) { n.endpoint = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) { n.client = c }
}

func New(cfg config.TelegramConfig, opts ...Option) *Notifier {
	n := &Notifier{
		token:    cfg.BotToken,
		chatID:   cfg.ChatID,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Notify posts text to the configured chat with HTML parse mode. A non-2xx
// response is an error; acceptance by the Bot API is not end-user delivery.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.endpoint, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
