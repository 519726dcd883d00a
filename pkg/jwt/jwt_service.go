package jwt

import (
	"Smart-Shelf-Backend/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const DefaultTokenTTL = 30 * 24 * time.Hour

type (
	JWTService interface {
		Enabled() bool
		TokenTTL() time.Duration
		GenerateToken(subject string, role string) (string, error)
		ValidateToken(token string) (*jwt.Token, error)
		GetSubjectByToken(token string) (string, string, error)
	}

	jwtHouseholdClaim struct {
		Subject string `json:"sub_id"`
		Role    string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

// NewJWTService signs with secretKey. An empty key disables authentication.
func NewJWTService(secretKey string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &jwtService{
		secretKey: secretKey,
		issuer:    "SMART-SHELF",
		ttl:       ttl,
	}
}

func (j *jwtService) Enabled() bool {
	return j.secretKey != ""
}

func (j *jwtService) TokenTTL() time.Duration {
	return j.ttl
}

func (j *jwtService) GenerateToken(subject string, role string) (string, error) {
	if !j.Enabled() {
		return "", domain.ErrAuthDisabled
	}
	now := time.Now()
	claims := jwtHouseholdClaim{
		subject,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtHouseholdClaim{}, j.parseToken)
}

func (j *jwtService) GetSubjectByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtHouseholdClaim)
	return claims.Subject, claims.Role, nil
}
