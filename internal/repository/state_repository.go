package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// StateStore persists the publish-state document. Every backend keeps
// the same contract: Load never fails on a corrupt document (it answers
// with an empty one instead, so a recap can always be re-sent), and
// Save replaces the whole document.
type StateStore interface {
	Load(ctx context.Context) (*models.PublishState, error)
	Save(ctx context.Context, state *models.PublishState) error
}

// FileStateStore keeps the publish state in a local JSON file, the
// default backend. The file is created lazily on first read.
type FileStateStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStateStore constructs a file-backed store.
func NewFileStateStore(path string, logger *zap.Logger) *FileStateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStateStore{path: path, logger: logger}
}

// Load reads the state file, creating an empty one when missing. A
// document that cannot be parsed is treated as empty: losing a
// duplicate-send guard is preferable to silently never sending again.
func (s *FileStateStore) Load(ctx context.Context) (*models.PublishState, error) {
	if err := s.ensureExists(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	state := models.NewPublishState()
	if err := json.Unmarshal(raw, state); err != nil {
		s.logger.Warn("publish state unreadable, treating as empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return models.NewPublishState(), nil
	}
	state.Normalize()
	return state, nil
}

// Save rewrites the whole document.
func (s *FileStateStore) Save(ctx context.Context, state *models.PublishState) error {
	state.Normalize()
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func (s *FileStateStore) ensureExists() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	raw, err := json.MarshalIndent(models.NewPublishState(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
