package domain

import "errors"

// Client input errors. These are reported before any cache or network access.
var (
	ErrMissingParameter  = errors.New("missing parameter")
	ErrInvalidHost       = errors.New("host not allowed")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Upstream errors. A stale-but-usable cache entry masks these.
var (
	ErrFetchFailed = errors.New("fetch failed")
	ErrParseFailed = errors.New("parse failed")
)

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidHost) ||
		errors.Is(err, ErrInvalidIdentifier)
}

// IsUpstreamError reports whether err came from fetching or parsing the origin.
func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrParseFailed)
}

// InputError pairs a client input sentinel with the message shown to the caller.
type InputError struct {
	Kind   error
	Detail string
}

// NewInputError creates an InputError of the given kind.
func NewInputError(kind error, detail string) *InputError {
	return &InputError{Kind: kind, Detail: detail}
}

func (e *InputError) Error() string {
	return e.Kind.Error() + ": " + e.Detail
}

func (e *InputError) Unwrap() error {
	return e.Kind
}
