package schema

import "errors"

var (
	ErrSchemaNotFound     = errors.New("schema file not found")
	ErrFailedToReadSchema = errors.New("failed to read schema file")
	ErrInvalidSchema      = errors.New("invalid schema document")
)
