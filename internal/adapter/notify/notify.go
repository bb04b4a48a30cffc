// Package notify delivers contact form submissions to the portfolio owner.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"portfolio/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// LogNotifier only records the submission in the log. It is used when no
// Telegram bot is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, msg usecase.ContactMessage) error {
	slog.Info("contact message", "id", msg.ID.String(), "email", msg.Email, "subject", msg.Subject, "message", msg.Message)
	return nil
}

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return NewTelegramNotifierWithBot(bot, chatID), nil
}

func NewTelegramNotifierWithBot(bot *tgbotapi.BotAPI, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID}
}

func (t *TelegramNotifier) Notify(ctx context.Context, msg usecase.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	out := tgbotapi.NewMessage(t.chatID, FormatMessage(msg))
	out.ParseMode = tgbotapi.ModeHTML
	out.DisableWebPagePreview = true
	if _, err := t.bot.Send(out); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FormatMessage renders a submission as Telegram HTML. User text is escaped.
func FormatMessage(msg usecase.ContactMessage) string {
	return fmt.Sprintf(
		"📬 <b>%s</b>\n"+
			"👤 %s &lt;%s&gt;\n"+
			"🕒 %s\n\n"+
			"%s\n\n"+
			"<code>%s</code>",
		html.EscapeString(msg.Subject),
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		msg.ReceivedAt.Format("2006-01-02 15:04 MST"),
		html.EscapeString(msg.Message),
		msg.ID.String(),
	)
}
