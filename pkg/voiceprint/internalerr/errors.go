package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyCorpus      = errors.New("empty corpus")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
