package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var ErrTokenRevoked = errors.New("token has been revoked")

type TokenService struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	userRepo      domain.UserRepository
	revocations   domain.RevocationStore
}

// NewTokenService builds the HS256 session token issuer. revocations may be
// nil, in which case Revoke is a no-op and sign-out is purely client side.
func NewTokenService(secretKey string, issuer string, tokenDuration time.Duration, userRepo domain.UserRepository, revocations domain.RevocationStore) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		userRepo:      userRepo,
		revocations:   revocations,
	}
}

func (s *TokenService) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": now.Add(s.tokenDuration).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("token service: failed to sign token: %w", err)
	}

	return signedToken, nil
}

func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("invalid token subject")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if s.revocations != nil {
		if jti, ok := claims["jti"].(string); ok {
			revoked, err := s.revocations.IsRevoked(ctx, jti)
			if err != nil {
				return "", fmt.Errorf("token service: revocation check failed: %w", err)
			}
			if revoked {
				return "", ErrTokenRevoked
			}
		}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("user no longer exists or db error: %w", err)
	}

	return userID, nil
}

// Revoke invalidates a token for the rest of its lifetime.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}
	if s.revocations == nil {
		return nil
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return fmt.Errorf("invalid token id")
	}

	ttl := s.tokenDuration
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("token service: failed to revoke token: %w", err)
	}
	return nil
}

func (s *TokenService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if iss, ok := claims["iss"].(string); !ok || iss != s.issuer {
		return nil, fmt.Errorf("invalid token issuer")
	}

	return claims, nil
}
