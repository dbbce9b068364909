package catalog

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
	redisclient "github.com/wildforge/gearsolver/internal/redis"
)

const snapshotKeyPrefix = "catalog:snapshot:"

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis catalog repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed catalog repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) GetSnapshot(ctx context.Context, input GetSnapshotInput) (*GetSnapshotOutput, error) {
	id := input.SnapshotID
	if id == "" {
		id = DefaultSnapshotID
	}

	key := snapshotKeyPrefix + id
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("catalog snapshot %q not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get catalog snapshot %q", id)
	}

	var c gear.Catalog
	if err := json.Unmarshal([]byte(result), &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal catalog snapshot %q", id)
	}

	return &GetSnapshotOutput{
		SnapshotID: id,
		Catalog:    &c,
	}, nil
}

func (r *redisRepository) PutSnapshot(ctx context.Context, input PutSnapshotInput) (*PutSnapshotOutput, error) {
	if input.Catalog == nil {
		return nil, errors.InvalidArgument("catalog cannot be nil")
	}
	if err := input.Catalog.Validate(); err != nil {
		return nil, err
	}

	id := input.SnapshotID
	if id == "" {
		id = DefaultSnapshotID
	}

	jsonData, err := json.Marshal(input.Catalog)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal catalog snapshot %q", id)
	}

	key := snapshotKeyPrefix + id
	if err := r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store catalog snapshot %q", id)
	}

	return &PutSnapshotOutput{SnapshotID: id}, nil
}
