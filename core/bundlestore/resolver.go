package bundlestore

import "context"

// Resolve returns the best available string for a key, walking the fallback
// chain in strict order, first hit wins:
//
//  1. the in-memory bundle for the requested language;
//  2. if the requested language is not the default: the in-memory bundle for
//     the default language, or, when the default bundle is not in memory, a
//     synchronous durable-cache read for it, never a remote fetch;
//  3. the caller-supplied fallback string, if any;
//  4. the raw key itself.
//
// Resolve is total: it never blocks on the network and never panics. The raw
// key as a last resort keeps the UI rendering while making the missing
// translation visible.
func (s *Store) Resolve(ctx context.Context, lang, key string, fallback ...string) string {
	s.mu.RLock()

	if entry, exists := s.state[lang]; exists && len(entry.bundle) > 0 {
		if value, found := entry.bundle[key]; found {
			s.mu.RUnlock()
			return value
		}
	}

	defaultInMemory := false
	if lang != s.defaultLang {
		if entry, exists := s.state[s.defaultLang]; exists && len(entry.bundle) > 0 {
			defaultInMemory = true
			if value, found := entry.bundle[key]; found {
				s.mu.RUnlock()
				return value
			}
		}
	}
	s.mu.RUnlock()

	// Secondary source for the default language when it was never loaded
	// into memory.
	if lang != s.defaultLang && !defaultInMemory {
		if bundle, found := s.cache.ReadBundle(ctx, s.defaultLang); found {
			if value, ok := bundle[key]; ok {
				return value
			}
		}
	}

	if len(fallback) > 0 && fallback[0] != "" {
		return fallback[0]
	}

	if s.missingKey != nil {
		s.missingKey(lang, key)
	}
	return key
}
