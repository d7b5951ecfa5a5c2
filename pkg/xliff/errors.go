package xliff

import "errors"

var (
	ErrInvalidDocument = errors.New("invalid xliff document")
	ErrUnsupported     = errors.New("unsupported xliff version")
	ErrDirNotFound     = errors.New("xliff directory not found")
	ErrFailedToRead    = errors.New("failed to read xliff file")
)
