package auth

import (
	"Smart-Shelf-Backend/domain"
	"Smart-Shelf-Backend/pkg/jwt"
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HouseholdSubject is the token subject for the single shared household.
const HouseholdSubject = "household"

type (
	AuthService interface {
		IssueToken(ctx context.Context, req domain.IssueTokenRequest) (domain.IssueTokenResponse, error)
	}

	authService struct {
		jwtService     jwt.JWTService
		passphraseHash string
	}
)

func NewAuthService(jwtService jwt.JWTService, passphraseHash string) AuthService {
	return &authService{
		jwtService:     jwtService,
		passphraseHash: passphraseHash,
	}
}

func HashPassphrase(passphrase string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *authService) IssueToken(ctx context.Context, req domain.IssueTokenRequest) (domain.IssueTokenResponse, error) {
	if !s.jwtService.Enabled() || s.passphraseHash == "" {
		return domain.IssueTokenResponse{}, domain.ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passphraseHash), []byte(req.Passphrase)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.IssueTokenResponse{}, domain.ErrInvalidPassphrase
		}
		return domain.IssueTokenResponse{}, err
	}

	token, err := s.jwtService.GenerateToken(HouseholdSubject, domain.RoleHousehold)
	if err != nil {
		return domain.IssueTokenResponse{}, err
	}
	return domain.IssueTokenResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtService.TokenTTL().Seconds()),
	}, nil
}
