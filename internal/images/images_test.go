package images_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"testing"

	"github.com/crowdwisdom/marketbrief/internal/images"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	data map[string][]byte
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.data[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProcessFetchesAndResizes(t *testing.T) {
	dir := t.TempDir()
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://img.example.com/chart.png": pngBytes(t, 1600, 1200),
	}}

	p := images.NewProcessor(fetcher, dir, 2, discard())
	refs := p.Process(context.Background(), []string{"https://img.example.com/chart.png"}, "run1")

	require.Len(t, refs, 1)
	require.NotEmpty(t, refs[0].LocalPath)
	require.Equal(t, "Source: img.example.com", refs[0].Caption)

	img, err := imaging.Open(refs[0].LocalPath)
	require.NoError(t, err)
	require.LessOrEqual(t, img.Bounds().Dx(), 800)
	require.LessOrEqual(t, img.Bounds().Dy(), 600)
}

func TestProcessDropsFailedFetches(t *testing.T) {
	dir := t.TempDir()
	fetcher := &stubFetcher{err: errors.New("timeout")}

	p := images.NewProcessor(fetcher, dir, 2, discard())
	refs := p.Process(context.Background(), []string{"https://img.example.com/a.png"}, "run1")

	require.Empty(t, refs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "no partial files may remain")
}

func TestProcessDropsUndecodableImages(t *testing.T) {
	dir := t.TempDir()
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://img.example.com/bad": []byte("not an image"),
	}}

	p := images.NewProcessor(fetcher, dir, 2, discard())
	refs := p.Process(context.Background(), []string{"https://img.example.com/bad"}, "run1")

	require.Empty(t, refs)
}

func TestProcessHonorsLimit(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, 100, 100)
	fetcher := &stubFetcher{data: map[string][]byte{
		"https://img/1": data,
		"https://img/2": data,
		"https://img/3": data,
	}}

	p := images.NewProcessor(fetcher, dir, 2, discard())
	refs := p.Process(context.Background(), []string{"https://img/1", "https://img/2", "https://img/3"}, "run1")

	require.Len(t, refs, 2)
}
