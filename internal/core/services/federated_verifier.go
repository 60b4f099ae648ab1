package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/screenaware/screenaware/internal/core/domain"
)

var ErrFederatedTokenInvalid = errors.New("federated identity token is invalid")

type federatedClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// FederatedVerifier checks id tokens minted by the identity broker that
// fronts the external providers (Google and friends).
type FederatedVerifier struct {
	secretKey []byte
	issuer    string
	provider  string
}

func NewFederatedVerifier(secretKey, issuer, provider string) *FederatedVerifier {
	return &FederatedVerifier{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		provider:  provider,
	}
}

func (v *FederatedVerifier) Verify(idToken string) (domain.FederatedIdentity, error) {
	if len(v.secretKey) == 0 {
		return domain.FederatedIdentity{}, fmt.Errorf("%w: federated sign-in is not configured", ErrFederatedTokenInvalid)
	}

	claims := &federatedClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.FederatedIdentity{}, fmt.Errorf("%w: %w", ErrFederatedTokenInvalid, err)
	}

	if claims.Subject == "" || strings.TrimSpace(claims.Email) == "" {
		return domain.FederatedIdentity{}, fmt.Errorf("%w: missing subject or email", ErrFederatedTokenInvalid)
	}

	return domain.FederatedIdentity{
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		Provider:    v.provider,
	}, nil
}
