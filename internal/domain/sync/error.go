package sync

import "errors"

var (
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrEmptyExtraction   = errors.New("extracted database is empty")
	ErrCorruptExtraction = errors.New("extracted file is not a valid database")
	ErrSyncInProgress    = errors.New("sync already in progress")
	ErrStoreUnavailable  = errors.New("local store unavailable")
)
