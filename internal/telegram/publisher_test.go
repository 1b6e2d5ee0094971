package telegram_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/crowdwisdom/marketbrief/internal/telegram"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	name       string
	configured bool
	sendErr    error

	sentText  string
	sentImage string
	calls     int
}

func (f *fakeChannel) Name() string     { return f.name }
func (f *fakeChannel) Configured() bool { return f.configured }

func (f *fakeChannel) Send(ctx context.Context, text, imagePath string) error {
	f.calls++
	f.sentText = text
	f.sentImage = imagePath
	return f.sendErr
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func digest(body string) models.Digest {
	return models.Digest{
		Body:        body,
		GeneratedAt: time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC),
		Provenance:  models.ProvenancePrimaryModel,
	}
}

func TestPublishSent(t *testing.T) {
	ch := &fakeChannel{name: "telegram", configured: true}
	p := telegram.NewPublisher([]models.MessagingChannel{ch}, 4096, 1024, discard())

	results := p.Publish(context.Background(), digest("Markets rose."), nil)

	require.Equal(t, models.PublishSent, results["telegram"].State)
	require.Equal(t, 1, ch.calls)
	require.Empty(t, ch.sentImage)
	require.Contains(t, ch.sentText, "Daily Financial Summary")
}

func TestPublishSkippedWhenNotConfigured(t *testing.T) {
	ch := &fakeChannel{name: "telegram", configured: false}
	p := telegram.NewPublisher([]models.MessagingChannel{ch}, 4096, 1024, discard())

	results := p.Publish(context.Background(), digest("body"), nil)

	require.Equal(t, models.PublishSkipped, results["telegram"].State)
	require.Zero(t, ch.calls)
}

func TestPublishFailureRecordedNotPropagated(t *testing.T) {
	ch := &fakeChannel{name: "telegram", configured: true, sendErr: errors.New("chat not found")}
	p := telegram.NewPublisher([]models.MessagingChannel{ch}, 4096, 1024, discard())

	results := p.Publish(context.Background(), digest("body"), nil)

	require.Equal(t, models.PublishFailed, results["telegram"].State)
	require.Contains(t, results["telegram"].Reason, "chat not found")
}

func TestPublishUsesPhotoAndCaptionLimit(t *testing.T) {
	ch := &fakeChannel{name: "telegram", configured: true}
	p := telegram.NewPublisher([]models.MessagingChannel{ch}, 4096, 100, discard())

	long := strings.Repeat("x", 500)
	images := []models.ImageRef{{SourceURL: "https://img/1", LocalPath: "/tmp/chart.png"}}
	results := p.Publish(context.Background(), digest(long), images)

	require.Equal(t, models.PublishSent, results["telegram"].State)
	require.Equal(t, "/tmp/chart.png", ch.sentImage)
	require.LessOrEqual(t, len([]rune(ch.sentText)), 100)
}

func TestFormatMessageRestructuresBullets(t *testing.T) {
	d := digest("* **Apple Inc.**: record sales, stock up 3.2%\n* Oil prices rose 1.2%")

	msg := telegram.FormatMessage(d)

	require.Contains(t, msg, "🔹 *Apple Inc.*: record sales, stock up 3.2%")
	require.Contains(t, msg, "• Oil prices rose 1.2%")
	require.Contains(t, msg, "2024-01-15")
}

func TestFormatMessageFallsBackToPlainBody(t *testing.T) {
	d := digest("A plain paragraph with **bold** text.")

	msg := telegram.FormatMessage(d)

	require.Contains(t, msg, "A plain paragraph with *bold* text.")
}

func TestFormatMessageMarksTemplateFallback(t *testing.T) {
	d := digest("body")
	d.Provenance = models.ProvenanceTemplateFallback

	msg := telegram.FormatMessage(d)

	require.Contains(t, msg, "automated fallback summary")
}
