package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// stateDocumentID is the primary key of the single publish-state row.
const stateDocumentID = "publish_state"

// PostgresStateStore keeps the publish-state document as one JSON row,
// upserted whole on every save. The single-document layout is
// deliberate: the store contract is replace-wholesale, not per-key
// row maintenance.
type PostgresStateStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresStateStore constructs a Postgres-backed store and ensures
// its table exists.
func NewPostgresStateStore(db *sqlx.DB, logger *zap.Logger) (*PostgresStateStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &PostgresStateStore{db: db, logger: logger}
	if err := store.ensureTable(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *PostgresStateStore) ensureTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS publish_state (
			id       TEXT PRIMARY KEY,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Load fetches the document; a missing row or an unparseable document
// is an empty state.
func (s *PostgresStateStore) Load(ctx context.Context) (*models.PublishState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM publish_state WHERE id = $1`, stateDocumentID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewPublishState(), nil
	}
	if err != nil {
		return nil, err
	}

	state := models.NewPublishState()
	if err := json.Unmarshal(raw, state); err != nil {
		s.logger.Warn("publish state unreadable, treating as empty", zap.Error(err))
		return models.NewPublishState(), nil
	}
	state.Normalize()
	return state, nil
}

// Save upserts the whole document.
func (s *PostgresStateStore) Save(ctx context.Context, state *models.PublishState) error {
	state.Normalize()
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO publish_state (id, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		stateDocumentID, raw,
	)
	return err
}
