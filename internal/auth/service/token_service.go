package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/allisson/school/internal/errors"
)

// RoleAdmin is the role claim embedded in every issued token. The system has
// a single privilege level: any authenticated user administrates the school.
const RoleAdmin = "admin"

// Claims are the identity claims carried by an authentication token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService using HMAC-SHA256 signed JWTs.
type tokenService struct {
	secretKey  []byte
	issuer     string
	audience   string
	expiration time.Duration
}

// NewTokenService creates a TokenService that signs tokens with the given
// symmetric key and stamps them with a fixed issuer and audience.
func NewTokenService(secretKey string, issuer string, audience string, expiration time.Duration) TokenService {
	return &tokenService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		audience:   audience,
		expiration: expiration,
	}
}

// Generate issues a signed token for the subject with the admin role claim.
func (t *tokenService) Generate(subject uuid.UUID, email string, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses the token and validates signature, expiry, issuer and audience.
// Validation is delegated to the token library; any failure maps to ErrUnauthorized.
func (t *tokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return t.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}
