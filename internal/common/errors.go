// Package common defines shared sentinel errors used across the
// repository, service, and handler layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("no message found")
	ErrStore    = errors.New("database error")

	// Validation errors.
	ErrInvalidRequest = errors.New("text or image required")
	ErrInvalidImage   = errors.New("invalid image")

	// Media store errors. Upload failures abort the whole write;
	// reclaim failures are logged and never surfaced.
	ErrImageUploadFailed = errors.New("image upload failed")

	// Ownership errors on delete operations.
	ErrForbidden = errors.New("not authorized")
)
