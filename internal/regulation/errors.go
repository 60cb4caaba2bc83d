package regulation

import "errors"

var (
	// ErrUnknownTier is returned when a relevance tier name or value is not recognised
	ErrUnknownTier = errors.New("unknown relevance tier")
)
