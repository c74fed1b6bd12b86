// Package localize is a client-side localization engine: it obtains
// translation bundles from a remote provider, persists them in a durable
// key-value cache, and serves string lookups with graceful degradation when
// data is missing, stale, or unreachable.
//
// Lookups walk a fallback chain (active language, default language, a
// caller-supplied literal, and finally the raw key), so a lookup never
// blocks and never fails. The worst user-visible outcome of a total outage
// is untranslated key literals in the UI, never an error screen.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/localize"
//
//	loc, err := localize.New(
//		localize.WithEndpoint("https://cdn.example.com/i18n"),
//		localize.WithDefaultLanguage("en"),
//		localize.WithLanguages("en", "pl", "de"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Warm every supported language in the background at startup.
//	loc.Preload(ctx)
//
//	// Switch the active language; the bundle loads from memory, the
//	// durable cache, or the provider, in that order.
//	if err := loc.SetLanguage(ctx, "pl"); err != nil {
//		// Non-fatal: lookups degrade through the fallback chain.
//		log.Println(err)
//	}
//
//	loc.T("nav.home")                  // "Strona główna"
//	loc.T("nav.missing")               // "nav.missing"
//	loc.T("nav.missing", "Fallback")   // "Fallback"
//
// # Durable Storage
//
// By default bundles are cached in process memory only. Pass any
// kvstore.Store implementation to persist them between sessions:
//
//	store, err := kvstore.NewFile("/var/lib/myapp/localize.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	loc, err := localize.New(
//		localize.WithEndpoint(endpoint),
//		localize.WithStore(store),
//	)
//
// Redis, Valkey, and Postgres backends live under core/kvstore. Durable
// storage is best-effort: if it becomes unavailable the engine keeps running
// from memory for the rest of the session.
//
// # Environment Configuration
//
// Config can be loaded from environment variables (with .env autoload):
//
//	cfg, err := localize.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	loc, err := localize.NewFromConfig(cfg)
//
// # Cache Invalidation
//
// Administrative tooling that edits translations server-side can force
// clients to drop every cached copy:
//
//	if err := loc.ClearCache(ctx); err != nil {
//		log.Println("durable purge incomplete:", err)
//	}
//
// The next lookup after a clear degrades to raw keys until a bundle is
// loaded again; it never blocks and never panics.
package localize
