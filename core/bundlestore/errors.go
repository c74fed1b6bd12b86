package bundlestore

import "errors"

var (
	// ErrNoData is returned when neither the remote provider nor the durable
	// cache could supply a bundle for a language.
	ErrNoData = errors.New("no localization data available")
	// ErrLanguageRequired is returned when an operation is called with an
	// empty language code.
	ErrLanguageRequired = errors.New("language is required")
)
