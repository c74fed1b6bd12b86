// Package kvstore defines the durable key-value store boundary used to
// persist localization bundles between sessions, along with in-memory and
// file-backed implementations suitable for tests and single-host clients.
//
// The Store interface is small: byte values, string keys,
// prefix enumeration for bulk cleanup. Network-backed implementations live
// in subpackages (redis, valkey, postgres) so their driver dependencies are
// only pulled in when used.
//
// # Usage
//
//	import "github.com/dmitrymomot/localize/core/kvstore"
//
//	store := kvstore.NewMemory()
//	defer store.Close()
//
//	if err := store.Set(ctx, "bundle:en", payload); err != nil {
//		// durable writes are best-effort for callers in this module;
//		// see core/bundlestore for the degradation policy
//	}
//
//	value, found, err := store.Get(ctx, "bundle:en")
//
// The file-backed store persists its full state to a single JSON document
// and rewrites it atomically on every mutation:
//
//	store, err := kvstore.NewFile("/var/lib/myapp/localize.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
package kvstore
