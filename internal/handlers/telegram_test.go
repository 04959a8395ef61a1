package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	updates chan tgbotapi.Update
	sent    []string
	stopped bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 10)}
}

func (b *fakeBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) StopReceivingUpdates() { b.stopped = true }

func textUpdate(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 7},
		From: &tgbotapi.User{ID: 42, FirstName: "Alex", UserName: "alex"},
	}
	if len(text) > 0 && text[0] == '/' {
		end := len(text)
		for i, r := range text {
			if r == ' ' {
				end = i
				break
			}
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return tgbotapi.Update{Message: msg}
}

func TestBotHelpAndUnknownCommand(t *testing.T) {
	s := newServer(t, nil)
	bot := newFakeBot()

	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("/help"))
	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("/dance"))
	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("hello there"))
	s.handlers.handleTelegramUpdate(context.Background(), bot, tgbotapi.Update{})

	require.Len(t, bot.sent, 3)
	assert.Equal(t, botHelp, bot.sent[0])
	assert.Equal(t, "I don't know that command", bot.sent[1])
	assert.Equal(t, "Invalid YouTube URL format", bot.sent[2])
}

func TestBotGenerateRequiresChannel(t *testing.T) {
	s := newServer(t, nil)
	bot := newFakeBot()

	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("/generate"))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "Usage: /generate <channel id>", bot.sent[0])
}

func TestBotIdeasSignsInTelegramUser(t *testing.T) {
	s := newServer(t, nil)
	bot := newFakeBot()

	s.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("tg_42", "Alex", nil, nil, sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("tg_42", "Alex", nil, false, "feed-tok", time.Now(), time.Now()))
	s.mock.ExpectQuery(`FROM content_ideas`).
		WithArgs("tg_42", false).
		WillReturnRows(sqlmock.NewRows(ideaCols).
			AddRow("i1", "tg_42", "Gear I Actually Use", "", "{}", nil, false, true, "{}", "{}", nil, time.Now()))

	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("/ideas"))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "- Gear I Actually Use\n", bot.sent[0])
}

func TestBotFeedLink(t *testing.T) {
	s := newServer(t, nil)
	bot := newFakeBot()

	s.mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("tg_42", "Alex", nil, false, "feed-tok", time.Now(), time.Now()))

	s.handlers.handleTelegramUpdate(context.Background(), bot, textUpdate("/feed"))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, "https://planner.example/feeds/feed-tok/ideas.rss", bot.sent[0])
}

func TestRunTelegramBotStopsOnCancel(t *testing.T) {
	s := newServer(t, nil)
	bot := newFakeBot()
	bot.updates <- textUpdate("/help")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.handlers.RunTelegramBot(ctx, bot)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return false
		default:
		}
		return len(bot.updates) == 0
	}, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.True(t, bot.stopped)
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, isYouTubeURL("https://www.youtube.com/@creator"))
	assert.True(t, isYouTubeURL("https://youtu.be/abc"))
	assert.False(t, isYouTubeURL("youtube.com/c/Foo"))
	assert.False(t, isYouTubeURL("https://vimeo.com/123"))
}
