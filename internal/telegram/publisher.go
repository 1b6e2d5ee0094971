package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crowdwisdom/marketbrief/internal/models"
)

// Publisher formats the digest into a condensed message and pushes it to
// every configured channel, collecting a per-channel status. Delivery
// failures are recorded, never propagated.
type Publisher struct {
	channels     []models.MessagingChannel
	messageLimit int
	captionLimit int
	logger       *slog.Logger
}

func NewPublisher(channels []models.MessagingChannel, messageLimit, captionLimit int, logger *slog.Logger) *Publisher {
	return &Publisher{
		channels:     channels,
		messageLimit: messageLimit,
		captionLimit: captionLimit,
		logger:       logger,
	}
}

func (p *Publisher) Publish(ctx context.Context, digest models.Digest, images []models.ImageRef) map[string]models.PublishStatus {
	results := make(map[string]models.PublishStatus, len(p.channels))

	imagePath := ""
	if len(images) > 0 {
		imagePath = images[0].LocalPath
	}

	for _, channel := range p.channels {
		results[channel.Name()] = p.publishOne(ctx, channel, digest, imagePath)
	}
	return results
}

func (p *Publisher) publishOne(ctx context.Context, channel models.MessagingChannel, digest models.Digest, imagePath string) models.PublishStatus {
	if !channel.Configured() {
		p.logger.Info("channel not configured, skipping", "channel", channel.Name())
		return models.PublishStatus{State: models.PublishSkipped}
	}

	limit := p.messageLimit
	if imagePath != "" {
		limit = p.captionLimit
	}
	text := truncateRunes(FormatMessage(digest), limit)

	if err := channel.Send(ctx, text, imagePath); err != nil {
		p.logger.Warn("delivery failed", "channel", channel.Name(), "error", err)
		return models.PublishStatus{State: models.PublishFailed, Reason: err.Error()}
	}

	p.logger.Info("message delivered", "channel", channel.Name(), "with_photo", imagePath != "")
	return models.PublishStatus{State: models.PublishSent}
}

// FormatMessage reshapes the digest's bullet structure into a compact
// channel message: "* **Title**: body" lines become highlighted points,
// plain "* " bullets become dotted points. A digest with no bullet
// structure falls back to its cleaned body.
func FormatMessage(digest models.Digest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 Daily Financial Summary - %s\n\n", digest.GeneratedAt.Format("2006-01-02"))

	var points []string
	for _, line := range strings.Split(digest.Body, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "* **") && strings.Contains(line, ":"):
			head, rest, _ := strings.Cut(line, ":")
			title := strings.NewReplacer("* **", "", "**", "").Replace(head)
			points = append(points, fmt.Sprintf("🔹 *%s*: %s", strings.TrimSpace(title), strings.TrimSpace(rest)))
		case strings.HasPrefix(line, "* "):
			clean := strings.ReplaceAll(strings.TrimPrefix(line, "* "), "**", "*")
			points = append(points, "• "+clean)
		}
	}

	if len(points) > 0 {
		sb.WriteString(strings.Join(points, "\n\n"))
	} else {
		sb.WriteString(strings.ReplaceAll(digest.Body, "**", "*"))
	}

	if digest.Provenance == models.ProvenanceTemplateFallback {
		sb.WriteString("\n\n_(automated fallback summary)_")
	}
	return sb.String()
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
