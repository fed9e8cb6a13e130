package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/orgcanvas/pkg/chart"
	cerrors "github.com/matzehuels/orgcanvas/pkg/errors"
)

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is the Redis password. Empty for no auth.
	Password string

	// DB is the Redis database number.
	DB int

	// KeyPrefix namespaces chart keys. Defaults to "orgcanvas:chart:".
	KeyPrefix string
}

// RedisStore persists snapshots in Redis, one key per chart. Suitable for
// multi-instance serve deployments where charts must be shared.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with a ping.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "orgcanvas:chart:"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeStore, err, "connect to redis at %s", cfg.Addr)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (r *RedisStore) key(name string) string {
	return r.prefix + name
}

// Load retrieves a snapshot by name.
func (r *RedisStore) Load(ctx context.Context, name string) (chart.Snapshot, error) {
	if err := validName(name); err != nil {
		return chart.Snapshot{}, err
	}
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return chart.Snapshot{}, ErrNotFound
		}
		return chart.Snapshot{}, fmt.Errorf("redis get: %w", err)
	}
	return chart.Unmarshal(data)
}

// Save stores a snapshot under its chart key. Charts do not expire.
func (r *RedisStore) Save(ctx context.Context, name string, s chart.Snapshot) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := chart.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a snapshot. Missing keys are a no-op.
func (r *RedisStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(name)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// List scans for chart keys under the prefix and returns the chart names.
// Uses SCAN rather than KEYS so large instances are not blocked.
func (r *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(r.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return names, nil
}

// Close releases the Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
