package domain

import (
	"errors"
)

const RoleHousehold = "household"

var (
	MessageSuccessIssueToken = "token issued successfully"
	MessageFailedIssueToken  = "failed to issue token"
	MesaageUserNotAllowed    = "household not allowed"

	ErrInvalidPassphrase = errors.New("invalid household passphrase")
	ErrAuthDisabled      = errors.New("authentication is not configured")
	ErrUserNotAllowed    = errors.New("household not allowed")
)

type (
	IssueTokenRequest struct {
		Passphrase string `json:"passphrase" validate:"required"`
	}

	IssueTokenResponse struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}
)
