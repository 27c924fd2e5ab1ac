package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrRecipientUnreachable = errors.New("recipient has no delivery address")

type Recipient struct {
	UserID         uint
	Email          string
	TelegramChatID int64
}

type Sender interface {
	Send(ctx context.Context, recipient Recipient, text string) error
}

type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	return NewTelegramSenderWithEndpoint(token, tgbotapi.APIEndpoint, &http.Client{Timeout: 8 * time.Second})
}

// NewTelegramSenderWithEndpoint validates the token with a getMe call
// against endpoint, which uses the tgbotapi "%s/%s" token/method format.
func NewTelegramSenderWithEndpoint(token string, endpoint string, client *http.Client) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	log.Printf("notify: telegram bot ready as @%s", bot.Self.UserName)
	return &TelegramSender{bot: bot}, nil
}

func (sender *TelegramSender) Send(ctx context.Context, recipient Recipient, text string) error {
	if recipient.TelegramChatID == 0 {
		return ErrRecipientUnreachable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	message := tgbotapi.NewMessage(recipient.TelegramChatID, text)
	if _, err := sender.bot.Send(message); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// LogSender stands in for a delivery channel when none is configured.
type LogSender struct {
	logger *log.Logger
}

func NewLogSender(logger *log.Logger) *LogSender {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSender{logger: logger}
}

func (sender *LogSender) Send(ctx context.Context, recipient Recipient, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sender.logger.Printf("notify: user %d: %s", recipient.UserID, text)
	return nil
}
