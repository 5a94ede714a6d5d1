package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/greatday-recap-api/internal/models"
)

// RedisStateStore keeps the publish-state document as one JSON value
// under a single key, mirroring the file backend's replace-wholesale
// semantics with SET.
type RedisStateStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisStateStore constructs a Redis-backed store.
func NewRedisStateStore(client *redis.Client, key string, logger *zap.Logger) *RedisStateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStateStore{client: client, key: key, logger: logger}
}

// Load fetches the document; a missing key or an unparseable value is
// an empty state.
func (s *RedisStateStore) Load(ctx context.Context) (*models.PublishState, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewPublishState(), nil
	}
	if err != nil {
		return nil, err
	}

	state := models.NewPublishState()
	if err := json.Unmarshal(raw, state); err != nil {
		s.logger.Warn("publish state unreadable, treating as empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return models.NewPublishState(), nil
	}
	state.Normalize()
	return state, nil
}

// Save replaces the stored document.
func (s *RedisStateStore) Save(ctx context.Context, state *models.PublishState) error {
	state.Normalize()
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, raw, 0).Err()
}
