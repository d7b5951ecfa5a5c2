package project

import "errors"

var (
	ErrInvalidConfig   = errors.New("invalid project configuration")
	ErrStorage         = errors.New("failed to initialize output storage")
	ErrDiscover        = errors.New("failed to discover source files")
	ErrLoadPool        = errors.New("failed to load translation pool")
	ErrWriteXliff      = errors.New("failed to write xliff file")
	ErrDocumentsFailed = errors.New("some documents failed")
	ErrManifest        = errors.New("failed to write manifest")
	ErrSnapshot        = errors.New("translation snapshot failed")
)
