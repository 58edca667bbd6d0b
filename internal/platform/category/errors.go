package category

import "errors"

var (
	// Validation errors
	ErrMissingTitle = errors.New("category title is required")
	ErrTitleTooLong = errors.New("category title exceeds 255 characters")

	// Repository errors
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryInUse is returned when deleting a category that is still
	// referenced by transactions.
	ErrCategoryInUse = errors.New("category has transactions and cannot be deleted")
)
