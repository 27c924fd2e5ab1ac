package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeTelegramAPI struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []string
	fail     bool
}

func (api *fakeTelegramAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Life Lag","username":"lifelag_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			api.mu.Lock()
			api.chatIDs = append(api.chatIDs, r.Form.Get("chat_id"))
			api.messages = append(api.messages, r.Form.Get("text"))
			fail := api.fail
			api.mu.Unlock()
			if fail {
				fmt.Fprint(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`)
		default:
			http.NotFound(w, r)
		}
	}
}

func newFakeTelegramSender(t *testing.T, api *fakeTelegramAPI) *TelegramSender {
	t.Helper()

	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)

	sender, err := NewTelegramSenderWithEndpoint("test-token", server.URL+"/bot%s/%s", server.Client())
	if err != nil {
		t.Fatalf("NewTelegramSenderWithEndpoint returned error: %v", err)
	}
	return sender
}

func TestTelegramSenderDeliversMessage(t *testing.T) {
	api := &fakeTelegramAPI{}
	sender := newFakeTelegramSender(t, api)

	err := sender.Send(context.Background(), Recipient{UserID: 1, TelegramChatID: 42}, "Time for your weekly Life Lag check-in.")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.messages) != 1 || api.chatIDs[0] != "42" || api.messages[0] != "Time for your weekly Life Lag check-in." {
		t.Fatalf("unexpected delivered messages %#v to %#v", api.messages, api.chatIDs)
	}
}

func TestTelegramSenderReportsAPIErrors(t *testing.T) {
	api := &fakeTelegramAPI{fail: true}
	sender := newFakeTelegramSender(t, api)

	if err := sender.Send(context.Background(), Recipient{TelegramChatID: 42}, "hello"); err == nil {
		t.Fatal("expected telegram API error to be returned")
	}
}

func TestTelegramSenderSkipsRecipientsWithoutChat(t *testing.T) {
	api := &fakeTelegramAPI{}
	sender := newFakeTelegramSender(t, api)

	err := sender.Send(context.Background(), Recipient{UserID: 3}, "hello")
	if !errors.Is(err, ErrRecipientUnreachable) {
		t.Fatalf("expected ErrRecipientUnreachable, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sender.Send(ctx, Recipient{TelegramChatID: 42}, "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.messages) != 0 {
		t.Fatalf("expected no delivered messages, got %#v", api.messages)
	}
}

func TestNewTelegramSenderRejectsInvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
	}))
	defer server.Close()

	if _, err := NewTelegramSenderWithEndpoint("bad-token", server.URL+"/bot%s/%s", server.Client()); err == nil {
		t.Fatal("expected invalid token to be rejected")
	}
}

func TestLogSenderWritesMessage(t *testing.T) {
	var out bytes.Buffer
	sender := NewLogSender(log.New(&out, "", 0))

	if err := sender.Send(context.Background(), Recipient{UserID: 9}, "Recovered from drift"); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if out.String() != "notify: user 9: Recovered from drift\n" {
		t.Fatalf("unexpected log output %q", out.String())
	}
}
