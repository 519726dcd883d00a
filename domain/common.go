package domain

import (
	"errors"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04"

	DefaultStoreName = "smart-shelf-storage"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrTokenNotFound   = errors.New("failed to token not found")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrPersistFailed   = errors.New("failed to persist store")
	ErrStoreCorrupted  = errors.New("persisted store record is corrupted")
	ErrFeatureDisabled = errors.New("feature is not configured")
)
