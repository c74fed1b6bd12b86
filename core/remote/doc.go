// Package remote defines the contract with the localization bundle provider
// and an HTTP implementation of it.
//
// A provider serves one complete bundle per language as JSON:
//
//	{
//	  "lang": "en",
//	  "version": "2024-05-01T10:00:00Z",
//	  "count": 2,
//	  "namespaces": ["nav"],
//	  "bundle": {"nav.home": "Home", "nav.profile": "Profile"}
//	}
//
// A fetched bundle is always a complete replacement for the language, never
// a patch. Failures are classified into three sentinel errors so that the
// orchestration layer can decide on degradation without string matching:
//
//   - ErrNetworkUnavailable: the provider could not be reached at all
//   - ErrRemoteRejected: the provider answered with a non-2xx status
//   - ErrMalformedPayload: the response did not decode into the expected shape
//
// The package performs no retries; retry and fallback policy belong to
// core/bundlestore.
package remote
