// Package valkey provides a Valkey-backed implementation of kvstore.Store
// using the official Valkey client.
package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/dmitrymomot/localize/core/kvstore"
)

const connectTimeout = 5 * time.Second

// Store is a kvstore.Store backed by a Valkey server.
type Store struct {
	client valkey.Client
}

// New connects to Valkey using the given URL (valkey://... or redis://...)
// and verifies the connection with a ping before returning.
func New(valkeyURL string) (*Store, error) {
	opts, err := valkey.ParseURL(valkeyURL)
	if err != nil {
		return nil, fmt.Errorf("parse valkey url: %w", err)
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("connect valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}

	return &Store{client: client}, nil
}

// Get retrieves the value for a key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	value, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores a value under a key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()
	return s.client.Do(ctx, cmd).Error()
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error()
}

// Keys returns all keys with the given prefix using cursor-based SCAN.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(prefix + "*").Count(100).Build()
		resp := s.client.Do(ctx, cmd)
		if err := resp.Error(); err != nil {
			return nil, err
		}

		entry, err := resp.AsScanEntry()
		if err != nil {
			return nil, err
		}

		keys = append(keys, entry.Elements...)
		cursor = entry.Cursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// Close closes the underlying Valkey connection.
func (s *Store) Close() error {
	s.client.Close()
	return nil
}

var _ kvstore.Store = (*Store)(nil)
