package ingestion

import "errors"

var (
	// ErrMessageRepositoryRequired is returned when a message repository is not provided.
	ErrMessageRepositoryRequired = errors.New("message repository required")

	// ErrClassifierRequired is returned when a classifier is not provided.
	ErrClassifierRequired = errors.New("classifier required")
)
