package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = ttl
	return f.err
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, f.err
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "screenaware-test"
	userID := "user-123-uuid"

	setup := func() (*TokenService, *MockUserRepository) {
		mockRepo := new(MockUserRepository)
		return NewTokenService(secret, issuer, 1*time.Hour, mockRepo, nil), mockRepo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)
		assert.NotEmpty(t, tokenString)

		extractedID, err := service.ValidateToken(tokenString)
		assert.NoError(t, err)
		assert.Equal(t, userID, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject valid token if user is deleted (DB check)", func(t *testing.T) {
		service, mockRepo := setup()

		mockRepo.On("GetByID", mock.Anything, userID).Return(nil, errors.New("user not found"))

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user no longer exists")
		assert.Empty(t, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewTokenService(secret, issuer, -1*time.Second, mockRepo, nil)

		tokenString, err := service.GenerateToken(userID)
		assert.NoError(t, err)

		extractedID, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "token is expired")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong secret (Tampered)", func(t *testing.T) {
		service, _ := setup()
		tokenString, _ := service.GenerateToken(userID)

		attackerService := NewTokenService("wrong-key", issuer, 1*time.Hour, new(MockUserRepository), nil)

		extractedID, err := attackerService.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject token with wrong issuer", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		serviceA := NewTokenService(secret, "correct-issuer", 1*time.Hour, mockRepo, nil)
		tokenString, _ := serviceA.GenerateToken(userID)

		serviceB := NewTokenService(secret, "wrong-issuer", 1*time.Hour, mockRepo, nil)

		extractedID, err := serviceB.ValidateToken(tokenString)
		assert.Error(t, err)
		assert.Equal(t, "invalid token issuer", err.Error())
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject 'None' algorithm attack", func(t *testing.T) {
		token := jwt.New(jwt.SigningMethodNone)
		claims := token.Claims.(jwt.MapClaims)
		claims["sub"] = userID
		claims["iss"] = issuer

		fakeTokenString, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

		service, _ := setup()
		_, err := service.ValidateToken(fakeTokenString)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected signing method")
	})

	t.Run("Fail: Should reject malformed token string", func(t *testing.T) {
		service, _ := setup()

		extractedID, err := service.ValidateToken("this-is-not-a-jwt")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
		assert.Empty(t, extractedID)
	})
}

func TestTokenService_Revoke(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "screenaware-test"
	userID := "user-123-uuid"
	ctx := context.Background()

	t.Run("Success: Should reject a token after sign-out", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		revocations := newFakeRevocations()
		service := NewTokenService(secret, issuer, time.Hour, mockRepo, revocations)

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		tokenString, err := service.GenerateToken(userID)
		require.NoError(t, err)

		_, err = service.ValidateToken(tokenString)
		require.NoError(t, err)

		require.NoError(t, service.Revoke(ctx, tokenString))

		_, err = service.ValidateToken(tokenString)
		assert.ErrorIs(t, err, ErrTokenRevoked)

		require.Len(t, revocations.revoked, 1)
		for _, ttl := range revocations.revoked {
			assert.True(t, ttl > 0 && ttl <= time.Hour, "revocation must not outlive the token")
		}
	})

	t.Run("Should leave other tokens valid", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewTokenService(secret, issuer, time.Hour, mockRepo, newFakeRevocations())

		mockRepo.On("GetByID", mock.Anything, userID).Return(&domain.User{ID: userID}, nil)

		first, _ := service.GenerateToken(userID)
		second, _ := service.GenerateToken(userID)
		require.NoError(t, service.Revoke(ctx, first))

		_, err := service.ValidateToken(second)
		assert.NoError(t, err)
	})

	t.Run("Fail: Should refuse to revoke a forged token", func(t *testing.T) {
		revocations := newFakeRevocations()
		service := NewTokenService(secret, issuer, time.Hour, new(MockUserRepository), revocations)
		forger := NewTokenService("other-secret", issuer, time.Hour, new(MockUserRepository), nil)

		forged, _ := forger.GenerateToken(userID)

		assert.Error(t, service.Revoke(ctx, forged))
		assert.Empty(t, revocations.revoked)
	})

	t.Run("Fail: Should fail closed when the revocation store errors", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		revocations := newFakeRevocations()
		service := NewTokenService(secret, issuer, time.Hour, mockRepo, revocations)

		tokenString, _ := service.GenerateToken(userID)
		revocations.err = errors.New("redis down")

		_, err := service.ValidateToken(tokenString)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
