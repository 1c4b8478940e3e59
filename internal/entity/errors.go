package entity

import "errors"

// Provider errors. Connectors wrap transport failures with these sentinels so
// the engine can classify outcomes without knowing any provider SDK.
var (
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// Configuration errors. These are fatal at startup and are never caught.
var (
	ErrUnknownProvider       = errors.New("unknown provider selector")
	ErrProviderNotConfigured = errors.New("provider not configured")
)

// StatusFromError converts a provider call failure into the uniform status
// taxonomy.
func StatusFromError(err error) AnswerStatus {
	switch {
	case errors.Is(err, ErrRateLimited):
		return StatusRateLimited
	case errors.Is(err, ErrUpstreamUnavailable):
		return StatusUpstreamUnavailable
	default:
		return StatusInternalError
	}
}

// ChainedErrorMessage renders an error as "<cause> and <error>" when a
// wrapped cause exists, otherwise as the error text alone.
func ChainedErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if cause := errors.Unwrap(err); cause != nil && cause.Error() != err.Error() {
		return cause.Error() + " and " + err.Error()
	}
	return err.Error()
}
