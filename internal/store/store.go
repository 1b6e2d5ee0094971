package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crowdwisdom/marketbrief/internal/models"
	"github.com/google/uuid"
)

// FileStore persists run artifacts to a directory. Files are keyed by the
// run id, so a later run never overwrites an earlier run's output.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

// NewRunID builds a timestamp-derived id, unique per run.
func NewRunID() string {
	return fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102_150405"), uuid.NewString()[:8])
}

// Save writes the JSON artifact and the human-readable text rendering,
// each atomically.
func (s *FileStore) Save(artifact *models.RunArtifact) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	jsonPath := filepath.Join(s.dir, fmt.Sprintf("complete_analysis_%s.json", artifact.RunID))
	if err := s.writeAtomic(jsonPath, data); err != nil {
		return fmt.Errorf("write json artifact: %w", err)
	}

	textPath := filepath.Join(s.dir, fmt.Sprintf("readable_summary_%s.txt", artifact.RunID))
	if err := s.writeAtomic(textPath, []byte(RenderText(artifact))); err != nil {
		return fmt.Errorf("write text artifact: %w", err)
	}

	s.logger.Info("artifact persisted", "run_id", artifact.RunID, "json", jsonPath, "text", textPath)
	return nil
}

// RenderText produces the plain-text rendering: the English digest followed
// by one labeled section per language, in the artifact's language order.
func RenderText(artifact *models.RunArtifact) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Daily Financial Market Summary - %s\n", artifact.Timestamp.Format("2006-01-02 15:04"))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString("ENGLISH SUMMARY:\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	sb.WriteString(artifact.Digest.Body + "\n\n")

	for _, td := range artifact.Translations {
		fmt.Fprintf(&sb, "%s (%s) SUMMARY:\n", strings.ToUpper(td.Language.Name), td.Language.NativeName)
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(td.Body + "\n\n")
	}

	return sb.String()
}

func (s *FileStore) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".artifact-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
