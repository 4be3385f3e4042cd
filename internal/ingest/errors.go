package ingest

import "errors"

var (
	// ErrMissingNameColumn is returned when a source file has no Doc_names column
	ErrMissingNameColumn = errors.New("ingest: missing Doc_names column")

	// ErrEmptyFile is returned when a source file has no header row
	ErrEmptyFile = errors.New("ingest: empty file")

	// ErrMissingSpecialty is returned when a file name yields no specialty
	ErrMissingSpecialty = errors.New("ingest: file name has no specialty")

	// ErrNoSource is returned when no doctor data source is configured
	ErrNoSource = errors.New("ingest: no source configured")
)
