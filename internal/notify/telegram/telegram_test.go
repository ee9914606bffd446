package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tingnect/event-api/internal/config"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelegramConfig
		want bool
	}{
		{"both set", config.TelegramConfig{BotToken: "t", ChatID: "c"}, true},
		{"missing token", config.TelegramConfig{ChatID: "c"}, false},
		{"missing chat id", config.TelegramConfig{BotToken: "t"}, false},
		{"neither", config.TelegramConfig{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.cfg).Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotifySendsMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := New(config.TelegramConfig{BotToken: "123:abc", ChatID: "-100"}, WithEndpoint(srv.URL))

	if err := n.Notify(context.Background(), "🔔 <b>New Contact Form Submission</b>"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.ChatID != "-100" {
		t.Errorf("chat_id = %q", gotBody.ChatID)
	}
	if gotBody.ParseMode != "HTML" {
		t.Errorf("parse_mode = %q", gotBody.ParseMode)
	}
	if gotBody.Text == "" {
		t.Error("text should not be empty")
	}
}

func TestNotifyNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	n := New(config.TelegramConfig{BotToken: "t", ChatID: "c"}, WithEndpoint(srv.URL))

	err := n.Notify(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestNotifyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	n := New(config.TelegramConfig{BotToken: "t", ChatID: "c"}, WithEndpoint(srv.URL))

	if err := n.Notify(context.Background(), "hello"); err == nil {
		t.Fatal("expected transport error")
	}
}
