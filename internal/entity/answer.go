package entity

import "net/http"

// AnswerStatus classifies the outcome of a query uniformly across providers.
type AnswerStatus string

const (
	StatusSuccess             AnswerStatus = "success"
	StatusValidationError     AnswerStatus = "validation_error"
	StatusRateLimited         AnswerStatus = "rate_limited"
	StatusUpstreamUnavailable AnswerStatus = "upstream_unavailable"
	StatusInternalError       AnswerStatus = "internal_error"
)

// HTTPStatus maps an answer status to the HTTP status code surfaced by the
// API layer.
func (s AnswerStatus) HTTPStatus() int {
	switch s {
	case StatusSuccess:
		return http.StatusOK
	case StatusValidationError:
		return http.StatusUnprocessableEntity
	case StatusRateLimited:
		return http.StatusTooManyRequests
	case StatusUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AnswerResult is the engine's answer to a single (already English) query.
// A non-success status carries an error message and an empty text; an empty
// filtered context is NOT a failure, it yields the fixed apology text with
// success status.
type AnswerResult struct {
	Text       string
	ErrMessage string
	Status     AnswerStatus
}

func SuccessAnswer(text string) AnswerResult {
	return AnswerResult{Text: text, Status: StatusSuccess}
}

func FailedAnswer(status AnswerStatus, message string) AnswerResult {
	return AnswerResult{ErrMessage: message, Status: status}
}

// QueryResponse is the caller-facing result after language processing: the
// answer translated back to the requested language and, for audio output, a
// public URL of the synthesized speech.
type QueryResponse struct {
	Text       string
	AudioURL   string
	Language   Language
	Format     OutputFormat
	Status     AnswerStatus
	ErrMessage string
}
