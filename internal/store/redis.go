package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	backend "github.com/redis/go-redis/v9"
)

// Redis implements Store with one JSON value per summary and a sorted set
// of names.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithTTL sets the expiration of stored summaries; zero keeps them.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis connects to the server at addr.
func NewRedis(addr string, opts ...RedisOption) *Redis {
	return NewRedisFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: "tessellate:summary:"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(name string) string { return r.prefix + name }

func (r *Redis) indexKey() string { return r.prefix + "index" }

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Save stores s as JSON and indexes its name. With a TTL the index score
// is the expiry time, otherwise it is +inf.
func (r *Redis) Save(ctx context.Context, s pipeline.Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	score := float64(time.Now().Add(r.ttl).Unix())
	if r.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(s.Name), data, r.ttl)
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{Score: score, Member: s.Name})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load reads the summary called name.
func (r *Redis) Load(ctx context.Context, name string) (pipeline.Summary, error) {
	val, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return pipeline.Summary{}, ErrNotFound
		}
		return pipeline.Summary{}, fmt.Errorf("failed to get from redis: %w", err)
	}
	var s pipeline.Summary
	if err := json.Unmarshal(val, &s); err != nil {
		return pipeline.Summary{}, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return s, nil
}

// Delete removes name and its index entry.
func (r *Redis) Delete(ctx context.Context, name string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(name))
	pipe.ZRem(ctx, r.indexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// List prunes expired index entries and returns the rest, sorted.
func (r *Redis) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	if err := r.client.ZRemRangeByScore(ctx, r.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired summaries: %w", err)
	}
	names, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.client.Close()
}
