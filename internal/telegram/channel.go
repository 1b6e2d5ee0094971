package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Channel delivers messages to a Telegram channel or chat. An unconfigured
// channel is constructed normally and reports Configured() == false; it
// never errors at startup.
type Channel struct {
	token   string
	chatRef string
	api     *tgbotapi.BotAPI
	apiErr  error
	logger  *slog.Logger
}

func NewChannel(token, chatRef string, logger *slog.Logger) *Channel {
	c := &Channel{
		token:   token,
		chatRef: chatRef,
		logger:  logger,
	}
	if !c.Configured() {
		return c
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		c.apiErr = fmt.Errorf("telegram bot init: %w", err)
		logger.Warn("telegram bot initialization failed", "error", err)
		return c
	}
	c.api = api
	return c
}

func (c *Channel) Name() string {
	return "telegram"
}

func (c *Channel) Configured() bool {
	return c.token != "" && c.chatRef != ""
}

// Send delivers a photo with caption when imagePath is set, a plain text
// message otherwise.
func (c *Channel) Send(ctx context.Context, text string, imagePath string) error {
	if c.api == nil {
		if c.apiErr != nil {
			return c.apiErr
		}
		return fmt.Errorf("telegram not configured")
	}

	chatID, username := c.resolveChat()

	var msg tgbotapi.Chattable
	if imagePath != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(imagePath))
		photo.ChannelUsername = username
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeMarkdown
		msg = photo
	} else {
		message := tgbotapi.NewMessage(chatID, text)
		message.ChannelUsername = username
		message.ParseMode = tgbotapi.ModeMarkdown
		message.DisableWebPagePreview = true
		msg = message
	}

	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// resolveChat interprets the configured reference as either a numeric chat
// id or a channel username, adding the @ prefix when missing.
func (c *Channel) resolveChat() (int64, string) {
	if id, err := strconv.ParseInt(c.chatRef, 10, 64); err == nil {
		return id, ""
	}
	username := c.chatRef
	if !strings.HasPrefix(username, "@") {
		username = "@" + username
	}
	return 0, username
}
