package bundlestore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/localize/core/kvstore"
	"github.com/dmitrymomot/localize/core/remote"
)

// DefaultLanguage is used when no default language is configured.
const DefaultLanguage = "en"

// langState is the per-language entry. Entries are created on first request
// and only ever mutated by whole-field replacement while holding the store
// mutex; bundles are never patched in place.
type langState struct {
	bundle          map[string]string
	version         string
	loading         bool
	initialized     bool
	remoteConfirmed bool
	err             error
}

// Store holds the in-memory bundle state for all languages and orchestrates
// population from the durable cache and the remote provider. It is safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	state map[string]*langState

	source         remote.Source
	cache          *durableCache
	defaultLang    string
	refreshTimeout time.Duration
	logger         *slog.Logger
	missingKey     func(lang, key string)
}

// Option configures the Store during construction.
type Option func(*Store) error

// WithDefaultLanguage sets the language used as the final data source in the
// fallback chain. Defaults to DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(s *Store) error {
		if lang == "" {
			return ErrLanguageRequired
		}
		s.defaultLang = lang
		return nil
	}
}

// WithLogger sets a custom logger. By default logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler invoked whenever resolution falls all
// the way through to the raw key. Useful for spotting missing translations
// during development.
func WithMissingKeyHandler(handler func(lang, key string)) Option {
	return func(s *Store) error {
		s.missingKey = handler
		return nil
	}
}

// WithRefreshTimeout bounds the background stale-while-revalidate fetch.
// Defaults to 30 seconds.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(s *Store) error {
		if timeout > 0 {
			s.refreshTimeout = timeout
		}
		return nil
	}
}

// New creates a Store backed by the given provider and durable key-value
// store. Both are required.
func New(source remote.Source, kv kvstore.Store, opts ...Option) (*Store, error) {
	if source == nil {
		return nil, errors.New("remote source is required")
	}
	if kv == nil {
		return nil, errors.New("key-value store is required")
	}

	store := &Store{
		state:          make(map[string]*langState),
		source:         source,
		defaultLang:    DefaultLanguage,
		refreshTimeout: 30 * time.Second,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(store); err != nil {
			return nil, err
		}
	}

	store.cache = &durableCache{kv: kv, logger: store.logger}
	return store, nil
}

// EnsureLoaded makes bundle data for a language available in memory, if any
// can be obtained. It is an idempotent no-op once a non-empty bundle is in
// memory. The loaded check is point-in-time rather than a fetch mutex: two
// concurrent first loads of the same language may both reach the provider,
// which is accepted as benign since whichever finishes last replaces the
// bundle whole.
//
// On a durable-cache hit the cached bundle is adopted immediately and a
// background refresh from the provider is started unconditionally; the call
// does not wait for it. Only when both memory and durable cache are empty is
// the provider fetched synchronously.
//
// The language entry is always initialized when EnsureLoaded returns, even
// on total failure, so callers never observe a perpetual loading state.
func (s *Store) EnsureLoaded(ctx context.Context, lang string) error {
	if lang == "" {
		return ErrLanguageRequired
	}

	s.mu.RLock()
	entry, exists := s.state[lang]
	loaded := exists && len(entry.bundle) > 0
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	if bundle, found := s.cache.ReadBundle(ctx, lang); found && len(bundle) > 0 {
		version, _ := s.cache.ReadVersion(ctx, lang)
		s.adopt(lang, bundle, version, false)
		s.logger.Debug("serving cached bundle pending refresh", slog.String("lang", lang))
		s.refreshAsync(lang)
		return nil
	}

	s.setLoading(lang)

	payload, err := s.source.Fetch(ctx, lang)
	if err == nil {
		s.adopt(lang, payload.Bundle, payload.Version, true)
		s.cache.WriteBundle(ctx, lang, payload.Bundle, payload.Version)
		return nil
	}
	s.logger.Warn("bundle fetch failed",
		slog.String("lang", lang),
		slog.String("error", err.Error()))

	// Last resort: any durable data for this language, then for the default.
	if bundle, found := s.cache.ReadBundle(ctx, lang); found && len(bundle) > 0 {
		version, _ := s.cache.ReadVersion(ctx, lang)
		s.adopt(lang, bundle, version, false)
		return nil
	}
	if lang != s.defaultLang {
		if bundle, found := s.cache.ReadBundle(ctx, s.defaultLang); found && len(bundle) > 0 {
			version, _ := s.cache.ReadVersion(ctx, s.defaultLang)
			s.adopt(lang, bundle, version, false)
			s.logger.Info("substituting default language bundle",
				slog.String("lang", lang),
				slog.String("default", s.defaultLang))
			return nil
		}
	}

	s.fail(lang, err)
	return errors.Join(ErrNoData, err)
}

// Clear wipes all in-memory bundles and purges the durable cache. Memory is
// wiped even when the durable purge fails; the purge error is returned so
// administrative tooling can report it.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.state = make(map[string]*langState)
	s.mu.Unlock()

	if err := s.cache.ClearAll(ctx); err != nil {
		s.logger.Warn("durable cache purge failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Bundle returns a copy of the in-memory bundle for a language, or nil if
// none is loaded.
func (s *Store) Bundle(lang string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.state[lang]
	if !exists || entry.bundle == nil {
		return nil
	}
	return maps.Clone(entry.bundle)
}

// Version returns the version token associated with the in-memory bundle.
// The token is informational only; it is never used to decide staleness.
func (s *Store) Version(lang string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, exists := s.state[lang]; exists {
		return entry.version
	}
	return ""
}

// Initialized reports whether a load attempt for the language has completed,
// successfully or not.
func (s *Store) Initialized(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.state[lang]
	return exists && entry.initialized
}

// Loading reports whether a synchronous load for the language is in flight.
func (s *Store) Loading(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.state[lang]
	return exists && entry.loading
}

// RemoteConfirmed reports whether the in-memory bundle came from (or has
// been reconfirmed by) the provider, as opposed to the durable cache alone.
func (s *Store) RemoteConfirmed(lang string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.state[lang]
	return exists && entry.remoteConfirmed
}

// Err returns the recorded load error for a language, or nil.
func (s *Store) Err(lang string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, exists := s.state[lang]; exists {
		return entry.err
	}
	return nil
}

// DefaultLanguage returns the configured default language.
func (s *Store) DefaultLanguage() string {
	return s.defaultLang
}

// adopt replaces the entire entry for a language with a new bundle. This is
// the only success transition; partial merges do not exist.
func (s *Store) adopt(lang string, bundle map[string]string, version string, fromRemote bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[lang] = &langState{
		bundle:          maps.Clone(bundle),
		version:         version,
		initialized:     true,
		remoteConfirmed: fromRemote,
	}
}

// setLoading marks a language as loading with no error recorded.
func (s *Store) setLoading(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.state[lang]
	if !exists {
		entry = &langState{}
		s.state[lang] = entry
	}
	entry.loading = true
	entry.err = nil
}

// fail records a terminal load failure. The entry is still initialized so
// lookups degrade to the fallback chain instead of waiting forever.
func (s *Store) fail(lang string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.state[lang]
	if !exists {
		entry = &langState{}
		s.state[lang] = entry
	}
	entry.loading = false
	entry.initialized = true
	entry.err = err
}

// refreshAsync starts the stale-while-revalidate fetch for a language. The
// goroutine uses a detached context so the refresh survives cancellation of
// the triggering request, and recovers panics so a misbehaving Source cannot
// take down the process.
func (s *Store) refreshAsync(lang string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("background bundle refresh panicked",
					slog.String("lang", lang),
					slog.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.refreshTimeout)
		defer cancel()

		payload, err := s.source.Fetch(ctx, lang)
		if err != nil {
			// The previously adopted bundle stays untouched.
			s.logger.Warn("background bundle refresh failed",
				slog.String("lang", lang),
				slog.String("error", err.Error()))
			return
		}

		s.adopt(lang, payload.Bundle, payload.Version, true)
		s.cache.WriteBundle(ctx, lang, payload.Bundle, payload.Version)
		s.logger.Debug("bundle refreshed",
			slog.String("lang", lang),
			slog.String("version", payload.Version))
	}()
}
