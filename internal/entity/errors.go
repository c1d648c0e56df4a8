package entity

import "errors"

// Domain errors
var (
	// Request errors
	ErrInvalidInput = errors.New("invalid input")

	// Generation errors
	ErrGenerationFailed = errors.New("form schema generation failed")

	// Storage errors
	ErrNotFound           = errors.New("form not found")
	ErrPersistence        = errors.New("persistence error")
	ErrReferenceViolation = errors.New("response references a nonexistent form")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
