package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shipgate/shipgate/internal/models"
	"github.com/sirupsen/logrus"
)

// FileStore persists history as a JSON document
// { "deployments": [ ... ] } with atomic-replace write semantics.
type FileStore struct {
	path   string
	logger *logrus.Logger
}

// NewFileStore creates a JSON-file backed history store
func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted history. A missing or unreadable file is an
// empty history, not an error.
func (s *FileStore) Load(ctx context.Context) ([]models.DeploymentRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("failed to read deployment history, starting empty")
		}
		return nil, nil
	}

	var doc models.DeploymentHistory
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.WithError(err).Warn("deployment history is corrupt, starting empty")
		return nil, nil
	}

	return doc.Deployments, nil
}

// Save rewrites the full history. The document is written to a temp file in
// the same directory and renamed over the target, so an interrupted process
// never leaves a partially-written history behind.
func (s *FileStore) Save(ctx context.Context, records []models.DeploymentRecord) error {
	doc := models.DeploymentHistory{Deployments: records}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deployment history: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".deployment-history-*.json")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close history file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace history file: %w", err)
	}

	return nil
}

// Close is a no-op for the file backend
func (s *FileStore) Close() error { return nil }
