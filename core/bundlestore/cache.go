package bundlestore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/localize/core/kvstore"
)

// Key scheme for the durable store: two slots per language.
const (
	bundleKeyPrefix  = "bundle:"
	versionKeyPrefix = "version:"
)

// durableCache adapts the opaque key-value store to bundle semantics. It is
// only ever used by the Store; nothing above this package reads the durable
// representation directly.
//
// Reads treat corruption and store errors as cache misses. Writes are best
// effort: a rejected write is logged and swallowed so the session keeps
// running from memory.
type durableCache struct {
	kv     kvstore.Store
	logger *slog.Logger
}

// ReadBundle returns the cached bundle for a language, or false on a miss.
// Data that does not deserialize into a string map counts as a miss.
func (c *durableCache) ReadBundle(ctx context.Context, lang string) (map[string]string, bool) {
	raw, found, err := c.kv.Get(ctx, bundleKeyPrefix+lang)
	if err != nil {
		c.logger.Warn("durable cache read failed",
			slog.String("lang", lang),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var bundle map[string]string
	if err := json.Unmarshal(raw, &bundle); err != nil || bundle == nil {
		c.logger.Warn("discarding corrupted cached bundle", slog.String("lang", lang))
		return nil, false
	}
	return bundle, true
}

// ReadVersion returns the cached version token for a language.
func (c *durableCache) ReadVersion(ctx context.Context, lang string) (string, bool) {
	raw, found, err := c.kv.Get(ctx, versionKeyPrefix+lang)
	if err != nil || !found {
		return "", false
	}
	return string(raw), true
}

// WriteBundle persists a bundle and its version token. Failures degrade to
// memory-only operation and are never surfaced to callers.
func (c *durableCache) WriteBundle(ctx context.Context, lang string, bundle map[string]string, version string) {
	raw, err := json.Marshal(bundle)
	if err != nil {
		c.logger.Warn("failed to encode bundle for durable cache",
			slog.String("lang", lang),
			slog.String("error", err.Error()))
		return
	}

	if err := c.kv.Set(ctx, bundleKeyPrefix+lang, raw); err != nil {
		c.logger.Warn("durable cache write failed, continuing from memory",
			slog.String("lang", lang),
			slog.String("error", err.Error()))
		return
	}
	if err := c.kv.Set(ctx, versionKeyPrefix+lang, []byte(version)); err != nil {
		c.logger.Warn("durable cache version write failed",
			slog.String("lang", lang),
			slog.String("error", err.Error()))
	}
}

// ClearAll removes every bundle and version slot from the durable store.
func (c *durableCache) ClearAll(ctx context.Context) error {
	var errs []error
	for _, prefix := range []string{bundleKeyPrefix, versionKeyPrefix} {
		keys, err := c.kv.Keys(ctx, prefix)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, key := range keys {
			if err := c.kv.Delete(ctx, key); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
