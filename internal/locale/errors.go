package locale

import "errors"

var (
	// ErrBundleLoad is returned when a message file cannot be read or parsed
	ErrBundleLoad = errors.New("failed to load message bundle")
)
