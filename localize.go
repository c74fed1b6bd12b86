package localize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/localize/core/bundlestore"
	"github.com/dmitrymomot/localize/core/kvstore"
	"github.com/dmitrymomot/localize/core/remote"
)

// Localizer is the lookup surface of the engine. It binds string resolution
// to a mutable active language, backed by a bundle store that loads data
// lazily when a language becomes active. Safe for concurrent use.
type Localizer struct {
	store *bundlestore.Store

	mu     sync.RWMutex
	active string

	defaultLang string
	languages   []string
	logger      *slog.Logger

	// construction-only fields consumed by New
	endpoint     string
	fetchTimeout time.Duration
	source       remote.Source
	kv           kvstore.Store
	missingKey   func(lang, key string)
}

// New creates a Localizer. A remote source is required, either directly via
// WithSource or as an HTTP endpoint via WithEndpoint. Without WithStore the
// durable tier is an in-memory store, i.e. nothing survives the process.
func New(opts ...Option) (*Localizer, error) {
	l := &Localizer{
		defaultLang: bundlestore.DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if l.source == nil {
		if l.endpoint == "" {
			return nil, errors.New("remote source is required: use WithSource or WithEndpoint")
		}
		var srcOpts []remote.HTTPOption
		if l.fetchTimeout > 0 {
			srcOpts = append(srcOpts, remote.WithTimeout(l.fetchTimeout))
		}
		source, err := remote.NewHTTPSource(l.endpoint, srcOpts...)
		if err != nil {
			return nil, err
		}
		l.source = source
	}

	if l.kv == nil {
		l.kv = kvstore.NewMemory()
	}

	l.languages = normalizeLanguages(l.defaultLang, l.languages)
	l.active = l.defaultLang

	store, err := bundlestore.New(l.source, l.kv,
		bundlestore.WithDefaultLanguage(l.defaultLang),
		bundlestore.WithLogger(l.logger),
		bundlestore.WithMissingKeyHandler(l.missingKey),
	)
	if err != nil {
		return nil, err
	}
	l.store = store

	return l, nil
}

// NewFromConfig creates a Localizer from an environment-driven Config.
// Additional options are applied after the config and may override it.
func NewFromConfig(cfg Config, opts ...Option) (*Localizer, error) {
	base := []Option{
		WithEndpoint(cfg.Endpoint),
		WithDefaultLanguage(cfg.DefaultLanguage),
		WithFetchTimeout(cfg.FetchTimeout),
	}
	if len(cfg.Languages) > 0 {
		base = append(base, WithLanguages(cfg.Languages...))
	}
	return New(append(base, opts...)...)
}

// T resolves a key against the active language, falling back to the default
// language, then to the optional caller-supplied literal, then to the raw
// key. It never blocks on the network and never panics; during an in-flight
// load it simply returns the best currently available value.
func (l *Localizer) T(key string, fallback ...string) string {
	l.mu.RLock()
	lang := l.active
	l.mu.RUnlock()

	return l.store.Resolve(context.Background(), lang, key, fallback...)
}

// SetLanguage switches the active language and ensures its bundle is loaded.
// The language becomes active even when loading fails; lookups then degrade
// through the fallback chain. The returned error reports a total load
// failure (no remote, no cached data).
func (l *Localizer) SetLanguage(ctx context.Context, lang string) error {
	if err := validateLanguage(lang); err != nil {
		return err
	}
	if !l.supported(lang) {
		return fmt.Errorf("language %q is not in the configured set", lang)
	}

	l.mu.Lock()
	l.active = lang
	l.mu.Unlock()

	if err := l.store.EnsureLoaded(ctx, lang); err != nil {
		l.logger.Warn("language activated without data",
			slog.String("lang", lang),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Preload warms bundles for the given languages (or all configured
// languages when none are given) in the background. It returns immediately;
// load failures are logged, not returned, since every lookup path degrades
// gracefully anyway.
func (l *Localizer) Preload(ctx context.Context, langs ...string) {
	if len(langs) == 0 {
		langs = l.Languages()
	}

	for _, lang := range langs {
		go func(lang string) {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error("preload panicked",
						slog.String("lang", lang),
						slog.Any("panic", r))
				}
			}()

			if err := l.store.EnsureLoaded(ctx, lang); err != nil {
				l.logger.Warn("preload failed",
					slog.String("lang", lang),
					slog.String("error", err.Error()))
			}
		}(lang)
	}
}

// ClearCache drops all in-memory bundles and purges the durable cache, for
// "forget everything and start over" scenarios such as server-side
// translation edits. Lookups issued before the next load return raw keys.
func (l *Localizer) ClearCache(ctx context.Context) error {
	return l.store.Clear(ctx)
}

// Language returns the currently active language.
func (l *Localizer) Language() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// DefaultLanguage returns the configured default language.
func (l *Localizer) DefaultLanguage() string {
	return l.defaultLang
}

// Languages returns the configured languages, default first.
func (l *Localizer) Languages() []string {
	out := make([]string, len(l.languages))
	copy(out, l.languages)
	return out
}

// Store exposes the underlying bundle store for advanced callers that need
// load state (Initialized, Err, Version) for a specific language.
func (l *Localizer) Store() *bundlestore.Store {
	return l.store
}

// supported reports whether a language is in the configured set.
func (l *Localizer) supported(lang string) bool {
	for _, candidate := range l.languages {
		if candidate == lang {
			return true
		}
	}
	return false
}

// validateLanguage rejects codes that are not well-formed BCP 47 tags.
// Codes are kept verbatim below the facade; validation happens only here.
func validateLanguage(lang string) error {
	if lang == "" {
		return bundlestore.ErrLanguageRequired
	}
	if _, err := language.Parse(lang); err != nil {
		return fmt.Errorf("invalid language code %q: %w", lang, err)
	}
	return nil
}
