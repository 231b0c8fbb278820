package models

import "errors"

// Custom errors
var (
	ErrStoreNotFound    = errors.New("game store not found")
	ErrNotFound         = errors.New("record not found")
	ErrInvalidWindow    = errors.New("rolling window must be at least 1")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
