package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("no matching answer")
	ErrDuplicateQuestion  = errors.New("question already saved for this user")
	ErrEmptyContent       = errors.New("empty message content")
	ErrSessionNotFound    = errors.New("conversation not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrTranslateDisabled  = errors.New("translation is not configured")
)

// UpstreamError carries the HTTP status of a failed model call so the
// completion layer can classify it into a user-facing message.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}
