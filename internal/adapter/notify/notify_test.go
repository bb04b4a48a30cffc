package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMessage() usecase.ContactMessage {
	return usecase.ContactMessage{
		ID:         uuid.MustParse("7d8e9f00-0000-4000-8000-000000000001"),
		Name:       "Jane <Doe>",
		Email:      "jane@example.com",
		Subject:    "Hello & welcome",
		Message:    "Let's <b>talk</b>.",
		ReceivedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestFormatMessageEscapesUserText(t *testing.T) {
	text := FormatMessage(sampleMessage())

	assert.Contains(t, text, "<b>Hello &amp; welcome</b>")
	assert.Contains(t, text, "Jane &lt;Doe&gt; &lt;jane@example.com&gt;")
	assert.Contains(t, text, "Let&#39;s &lt;b&gt;talk&lt;/b&gt;.")
	assert.Contains(t, text, "2026-03-01 12:30 UTC")
	assert.Contains(t, text, "7d8e9f00-0000-4000-8000-000000000001")
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), sampleMessage()))
}

// fakeTelegram answers getMe and sendMessage like the Bot API does.
type fakeTelegram struct {
	mu   sync.Mutex
	sent []map[string]string
	fail bool
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"portfolio","username":"portfolio_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		if f.fail {
			_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			return
		}
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"chat_id":    r.PostForm.Get("chat_id"),
			"text":       r.PostForm.Get("text"),
			"parse_mode": r.PostForm.Get("parse_mode"),
		})
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestNotifier(t *testing.T, fake *fakeTelegram) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)
	return NewTelegramNotifierWithBot(bot, 42)
}

func TestTelegramNotifierSends(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	require.NoError(t, n.Notify(context.Background(), sampleMessage()))

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "42", fake.sent[0]["chat_id"])
	assert.Equal(t, tgbotapi.ModeHTML, fake.sent[0]["parse_mode"])
	assert.Equal(t, FormatMessage(sampleMessage()), fake.sent[0]["text"])
}

func TestTelegramNotifierReportsFailure(t *testing.T) {
	n := newTestNotifier(t, &fakeTelegram{fail: true})

	err := n.Notify(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram send")
}

func TestTelegramNotifierHonoursCancelledContext(t *testing.T) {
	fake := &fakeTelegram{}
	n := newTestNotifier(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, sampleMessage()), context.Canceled)
	assert.Empty(t, fake.sent)
}
