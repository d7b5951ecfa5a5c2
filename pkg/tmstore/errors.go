package tmstore

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrSaveSnapshot                 = errors.New("failed to save translation snapshot")
	ErrLoadSnapshot                 = errors.New("failed to load translation snapshot")
	ErrInvalidRecord                = errors.New("invalid translation record")
)
