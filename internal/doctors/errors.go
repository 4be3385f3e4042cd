package doctors

import "errors"

var (
	// ErrMissingName is returned when a row has no doctor name
	ErrMissingName = errors.New("doctors: name is required")

	// ErrMissingSpecialty is returned when a row has no specialty
	ErrMissingSpecialty = errors.New("doctors: specialty is required")

	// ErrMissingCity is returned when a row has no city
	ErrMissingCity = errors.New("doctors: city is required")

	// ErrNegativeAmount is returned when reviews or fee is negative
	ErrNegativeAmount = errors.New("doctors: reviews and fee must be non-negative")
)

// ErrStoreNotReady is returned when a store is used before it is configured.
var ErrStoreNotReady = errors.New("doctors: store not configured")
