package ai

import "errors"

var (
	// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
	ErrQuotaExceeded = errors.New("ai quota exceeded")

	// ErrNotConfigured indicates no AI provider credentials were supplied.
	ErrNotConfigured = errors.New("ai summarization is not configured")
)
