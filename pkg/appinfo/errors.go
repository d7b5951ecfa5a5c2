package appinfo

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid appinfo document")
	ErrNotParsed       = errors.New("document has not been parsed")
	ErrNoStorage       = errors.New("no output storage configured")
	ErrWriteOutput     = errors.New("failed to write localized file")
)
