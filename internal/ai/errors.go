package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no credential is configured for the provider.
	// It is returned before any network call is attempted.
	ErrUnavailable = errors.New("ai provider not configured")

	// ErrQuotaExceeded maps provider-side billing/rate exhaustion (HTTP 429).
	ErrQuotaExceeded = errors.New("ai provider quota exceeded")

	// ErrAuthFailed maps a rejected credential (HTTP 401).
	ErrAuthFailed = errors.New("ai provider authentication failed")

	// ErrEmptyResponse means the completion succeeded but produced no text.
	ErrEmptyResponse = errors.New("empty ai response")
)

// classifyStatusError converts a non-2xx provider response into a typed error.
// Quota and auth failures get dedicated sentinels so callers can map them to
// distinct response kinds instead of pattern-matching message text.
func classifyStatusError(provider string, status int, detail string) error {
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s: %s", ErrQuotaExceeded, provider, detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s: %s", ErrAuthFailed, provider, detail)
	default:
		return fmt.Errorf("%s request failed: status %d: %s", provider, status, detail)
	}
}
