// Package redis provides a Redis-backed implementation of kvstore.Store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localize/core/kvstore"
)

const connectTimeout = 5 * time.Second

// Store is a kvstore.Store backed by a Redis server. Values are stored
// without expiry; cache invalidation is driven by the localization engine,
// not by TTLs.
type Store struct {
	client *redis.Client
}

// New connects to Redis using the given URL (redis://...) and verifies the
// connection with a ping before returning.
func New(redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing Redis client. The caller retains ownership
// of the client; Close on the returned store closes it.
func NewWithClient(client *redis.Client) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Store{client: client}, nil
}

// Get retrieves the value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set stores a value under a key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// Keys returns all keys with the given prefix using SCAN, so enumeration
// does not block the server the way KEYS would.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the underlying Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

var _ kvstore.Store = (*Store)(nil)
