package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrIO                = errors.New("i/o failure")
	ErrDecode            = errors.New("decode failure")
	ErrInvalidLabel      = errors.New("invalid label")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSentiment         = errors.New("sentiment scoring failed")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
