package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wricardo/quoridor/game/service"
)

const (
	defaultRedisPrefix = "quoridor:session:"
	defaultRedisTTL    = 7 * 24 * time.Hour
	redisOpTimeout     = 2 * time.Second
)

// RedisPersistence stores each session as a JSON string under
// <prefix><id>. Every save refreshes the key's TTL.
type RedisPersistence struct {
	client        redis.Cmdable
	configManager service.ConfigManager
	prefix        string
	ttl           time.Duration
}

// RedisOptions configures RedisPersistence. Zero values use the defaults.
type RedisOptions struct {
	Prefix string
	TTL    time.Duration
}

// NewRedisPersistence creates a Redis-backed persistence layer and checks the connection
func NewRedisPersistence(client redis.Cmdable, configManager service.ConfigManager, opts *RedisOptions) (*RedisPersistence, error) {
	rp := &RedisPersistence{
		client:        client,
		configManager: configManager,
		prefix:        defaultRedisPrefix,
		ttl:           defaultRedisTTL,
	}
	if opts != nil {
		if opts.Prefix != "" {
			rp.prefix = opts.Prefix
		}
		if opts.TTL > 0 {
			rp.ttl = opts.TTL
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	return rp, nil
}

func (rp *RedisPersistence) key(id string) string {
	return rp.prefix + strings.ToLower(id)
}

// Save persists a session and refreshes its TTL
func (rp *RedisPersistence) Save(session *service.Session) error {
	data, err := encodeSession(rp.configManager, session)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := rp.client.Set(ctx, rp.key(session.ID), data, rp.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session to redis: %w", err)
	}
	return nil
}

// Load retrieves a session from Redis
func (rp *RedisPersistence) Load(id string) (*service.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := rp.client.Get(ctx, rp.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session from redis: %w", err)
	}

	return decodeSession(rp.configManager, data)
}

// Delete removes a session key
func (rp *RedisPersistence) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := rp.client.Del(ctx, rp.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session from redis: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll scans for every session key under the prefix
func (rp *RedisPersistence) ListAll() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var ids []string
	iter := rp.client.Scan(ctx, 0, rp.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), rp.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan session keys: %w", err)
	}
	return ids, nil
}

// Exists checks if a session key is present
func (rp *RedisPersistence) Exists(id string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := rp.client.Exists(ctx, rp.key(id)).Result()
	return err == nil && n > 0
}
