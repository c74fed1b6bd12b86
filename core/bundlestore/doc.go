// Package bundlestore orchestrates localization bundles across three tiers:
// process memory, a durable key-value cache, and the remote bundle provider.
//
// The Store keeps one entry per language with lifecycle
// Unrequested → Loading → Loaded (or Failed). EnsureLoaded populates an
// entry, preferring tiers in order:
//
//  1. A non-empty in-memory bundle short-circuits immediately.
//  2. A durable-cache hit is adopted right away to unblock callers, and an
//     unconditional background refresh from the provider is started
//     (stale-while-revalidate).
//  3. Otherwise the provider is fetched synchronously; on failure the durable
//     cache is consulted once more for the requested and then the default
//     language before the entry is marked failed.
//
// Bundles are only ever replaced whole. A failed refresh never touches a
// previously adopted bundle, and a language entry is never left in a
// perpetual loading state: after EnsureLoaded returns, the entry is
// initialized whether or not any data was found.
//
// Resolve produces the best available string for a key without blocking or
// panicking, walking the fallback chain: active language bundle, default
// language bundle (memory, then durable cache), caller-supplied fallback,
// and finally the raw key itself. The raw key shows up in the UI, so a
// missing translation is noticed instead of crashing anything.
//
// Durable-store failures never escape this package; they degrade the engine
// to memory-only operation for the session and are logged.
//
// # Usage
//
//	source, _ := remote.NewHTTPSource("https://cdn.example.com/i18n")
//	store, err := bundlestore.New(source, kvstore.NewMemory(),
//		bundlestore.WithDefaultLanguage("en"),
//		bundlestore.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = store.EnsureLoaded(ctx, "pl")
//	label := store.Resolve(ctx, "pl", "nav.home")
package bundlestore
