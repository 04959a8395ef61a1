package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"yt-planner/internal/auth"
	"yt-planner/internal/models"
)

const botHelp = `Send me a YouTube channel URL to connect it.

/channels - your connected channels
/ideas - your content ideas
/generate <channel id> - generate ideas for a channel
/topics <niche> - suggest trending topics
/feed - RSS link for your ideas`

// BotAPI is the part of *tgbotapi.BotAPI the bot uses.
type BotAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	StopReceivingUpdates()
}

// RunTelegramBot serves bot updates until ctx is cancelled. Bot users are the
// same users the mini app signs in, keyed by their Telegram id.
func (h *Handlers) RunTelegramBot(ctx context.Context, bot BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.handleTelegramUpdate(ctx, bot, update)
		}
	}
}

func (h *Handlers) handleTelegramUpdate(ctx context.Context, bot BotAPI, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.From == nil { // ignore any non-Message updates
		return
	}
	log.Printf("[%s] %s", message.From.UserName, message.Text)

	if !message.IsCommand() {
		h.handleChannelURL(ctx, bot, message)
		return
	}

	switch message.Command() {
	case "start", "help":
		reply(bot, message.Chat.ID, botHelp)
	case "channels":
		h.handleChannelsCommand(ctx, bot, message)
	case "ideas":
		h.handleIdeasCommand(ctx, bot, message)
	case "generate":
		h.handleGenerateCommand(ctx, bot, message)
	case "topics":
		h.handleTopicsCommand(ctx, bot, message)
	case "feed":
		h.handleFeedCommand(ctx, bot, message)
	default:
		reply(bot, message.Chat.ID, "I don't know that command")
	}
}

func reply(bot BotAPI, chatID int64, text string) {
	if _, err := bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Error sending Telegram message: %v", err)
	}
}

func (h *Handlers) botUser(ctx context.Context, bot BotAPI, message *tgbotapi.Message) (*models.User, bool) {
	from := message.From
	identity := &auth.Identity{
		ID:        auth.UserIDFromTelegram(from.ID),
		FirstName: from.FirstName,
		LastName:  from.LastName,
		FullName:  strings.TrimSpace(from.FirstName + " " + from.LastName),
		Username:  from.UserName,
	}
	user, err := h.planner.SignIn(ctx, identity, false)
	if err != nil {
		log.Printf("Error finding or creating user: %v", err)
		reply(bot, message.Chat.ID, "Error creating user.")
		return nil, false
	}
	return user, true
}

func isYouTubeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	switch strings.ToLower(u.Hostname()) {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "youtu.be":
		return true
	}
	return false
}

func (h *Handlers) handleChannelURL(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	if !isYouTubeURL(message.Text) {
		reply(bot, message.Chat.ID, "Invalid YouTube URL format")
		return
	}
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}

	channel, err := h.planner.ConnectChannel(ctx, user.UserID, strings.TrimSpace(message.Text))
	if err != nil {
		log.Printf("Error connecting channel: %v", err)
		reply(bot, message.Chat.ID, "Could not connect that channel.")
		return
	}
	reply(bot, message.Chat.ID, fmt.Sprintf("Connected %s (%s). Use /generate %s for ideas.", channel.Name, channel.ChannelID, channel.ChannelID))
}

func (h *Handlers) handleChannelsCommand(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}
	channels, err := h.planner.ListChannels(ctx, user.UserID)
	if err != nil {
		log.Printf("Error getting channels: %v", err)
		reply(bot, message.Chat.ID, "Internal server error")
		return
	}
	if len(channels) == 0 {
		reply(bot, message.Chat.ID, "You have no connected channels.")
		return
	}

	var b strings.Builder
	for _, c := range channels {
		fmt.Fprintf(&b, "%s (%s): %d subscribers, %d videos\n", c.Name, c.ChannelID, c.SubscriberCount, c.VideoCount)
	}
	reply(bot, message.Chat.ID, b.String())
}

func (h *Handlers) handleIdeasCommand(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}
	ideas, err := h.planner.ListContentIdeas(ctx, user, true)
	if err != nil {
		log.Printf("Error getting ideas: %v", err)
		reply(bot, message.Chat.ID, "Internal server error")
		return
	}
	if len(ideas) == 0 {
		reply(bot, message.Chat.ID, "You have no content ideas yet.")
		return
	}

	var b strings.Builder
	for _, idea := range ideas {
		fmt.Fprintf(&b, "- %s\n", idea.Title)
	}
	reply(bot, message.Chat.ID, b.String())
}

func (h *Handlers) handleGenerateCommand(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	channelID := strings.TrimSpace(message.CommandArguments())
	if channelID == "" {
		reply(bot, message.Chat.ID, "Usage: /generate <channel id>")
		return
	}
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}

	ids, err := h.planner.GenerateContentIdeas(ctx, user, channelID, 5)
	if err != nil {
		log.Printf("Error generating ideas: %v", err)
		reply(bot, message.Chat.ID, "Could not generate ideas for that channel.")
		return
	}
	reply(bot, message.Chat.ID, fmt.Sprintf("Generated %d ideas. Use /ideas to see them.", len(ids)))
}

func (h *Handlers) handleTopicsCommand(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}
	if _, err := h.planner.GenerateTrendingTopics(ctx, user, strings.TrimSpace(message.CommandArguments())); err != nil {
		log.Printf("Error generating topics: %v", err)
		reply(bot, message.Chat.ID, "Internal server error")
		return
	}
	topics, err := h.planner.ListTrendingTopics(ctx, user, true)
	if err != nil {
		log.Printf("Error getting topics: %v", err)
		reply(bot, message.Chat.ID, "Internal server error")
		return
	}

	var b strings.Builder
	for _, t := range topics {
		fmt.Fprintf(&b, "- %s (%d)\n", t.Topic, t.RelevanceScore)
	}
	reply(bot, message.Chat.ID, b.String())
}

func (h *Handlers) handleFeedCommand(ctx context.Context, bot BotAPI, message *tgbotapi.Message) {
	user, ok := h.botUser(ctx, bot, message)
	if !ok {
		return
	}
	baseURL := h.baseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	reply(bot, message.Chat.ID, fmt.Sprintf("%s/feeds/%s/ideas.rss", baseURL, user.FeedToken))
}
