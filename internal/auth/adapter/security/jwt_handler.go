package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course-platform/internal/auth/domain/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSigningMethod = errors.New("unexpected signing method")
)

// JWTokenService implements session token generation and validation with
// HMAC-SHA256 signed JWTs.
type JWTokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTokenService creates a new JWT token service
func NewJWTokenService(secret string, ttl time.Duration) (*JWTokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret key cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt token TTL must be positive")
	}

	return &JWTokenService{
		secretKey: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// GenerateToken signs a session token for the given user
func (s *JWTokenService) GenerateToken(ctx context.Context, user *model.User) (string, error) {
	if user == nil {
		return "", errors.New("user cannot be nil")
	}
	now := s.now()
	claims := &model.Claims{
		ID:          user.ID,
		Email:       user.Email,
		AccountType: user.AccountType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken verifies a token and returns its claims. It does not check
// the payload beyond what the JWT library validates.
func (s *JWTokenService) ValidateToken(ctx context.Context, tokenString string) (*model.Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: jwt must be provided", model.ErrTokenInvalid)
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrSigningMethod, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid {
		return nil, model.ErrTokenInvalid
	}

	return claims, nil
}

// classify maps library errors onto the domain's token errors. Not-yet-valid
// tokens are deliberately left unclassified.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return err
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims):
		return fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	default:
		return err
	}
}
