package localize

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dmitrymomot/localize/core/kvstore"
	"github.com/dmitrymomot/localize/core/remote"
)

// Option configures the Localizer during construction.
type Option func(*Localizer) error

// WithDefaultLanguage sets the default/fallback language. Defaults to "en".
func WithDefaultLanguage(lang string) Option {
	return func(l *Localizer) error {
		if err := validateLanguage(lang); err != nil {
			return err
		}
		l.defaultLang = lang
		return nil
	}
}

// WithLanguages sets the supported languages. The default language is always
// included and placed first; the rest are sorted alphabetically.
func WithLanguages(langs ...string) Option {
	return func(l *Localizer) error {
		for _, lang := range langs {
			if err := validateLanguage(lang); err != nil {
				return err
			}
		}
		l.languages = langs
		return nil
	}
}

// WithEndpoint sets the base URL of the bundle provider. The bundle for a
// language is fetched from "<endpoint>/<lang>".
func WithEndpoint(endpoint string) Option {
	return func(l *Localizer) error {
		if endpoint == "" {
			return fmt.Errorf("endpoint cannot be empty")
		}
		l.endpoint = endpoint
		return nil
	}
}

// WithFetchTimeout sets the per-request timeout used by the HTTP source
// built from WithEndpoint. Ignored when WithSource is used.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(l *Localizer) error {
		if timeout > 0 {
			l.fetchTimeout = timeout
		}
		return nil
	}
}

// WithSource sets a custom remote bundle source, replacing the HTTP source
// built from WithEndpoint.
func WithSource(source remote.Source) Option {
	return func(l *Localizer) error {
		if source == nil {
			return fmt.Errorf("source cannot be nil")
		}
		l.source = source
		return nil
	}
}

// WithStore sets the durable key-value store used to persist bundles
// between sessions. Defaults to an in-memory store.
func WithStore(store kvstore.Store) Option {
	return func(l *Localizer) error {
		if store == nil {
			return fmt.Errorf("store cannot be nil")
		}
		l.kv = store
		return nil
	}
}

// WithLogger sets a custom logger. By default logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Localizer) error {
		if logger != nil {
			l.logger = logger
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a lookup falls through to
// the raw key, i.e. the key has no translation in any reachable tier.
// Useful for logging missing translations during development.
func WithMissingKeyHandler(handler func(lang, key string)) Option {
	return func(l *Localizer) error {
		l.missingKey = handler
		return nil
	}
}

// normalizeLanguages deduplicates the configured languages and returns them
// with the default language first and the rest sorted.
func normalizeLanguages(defaultLang string, langs []string) []string {
	set := make(map[string]bool, len(langs))
	for _, lang := range langs {
		if lang != "" {
			set[lang] = true
		}
	}
	delete(set, defaultLang)

	out := make([]string, 0, len(set)+1)
	out = append(out, defaultLang)

	if len(set) > 0 {
		others := make([]string, 0, len(set))
		for lang := range set {
			others = append(others, lang)
		}
		sort.Strings(others)
		out = append(out, others...)
	}
	return out
}
