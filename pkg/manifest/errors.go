package manifest

import "errors"

var (
	ErrInvalidManifest = errors.New("invalid manifest file")
	ErrWriteManifest   = errors.New("failed to write manifest")
	ErrWalkRoot        = errors.New("failed to walk resource root")
)
