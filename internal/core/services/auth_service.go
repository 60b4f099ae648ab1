package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/screenaware/screenaware/internal/core/domain"
)

type AuthService struct {
	repo domain.UserRepository
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the account and its profile in one write.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// SignIn checks email/password credentials. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, err
	}

	return user, nil
}

// SignInFederated finds the account matching a verified federated identity,
// creating it with a profile split from the provider display name on first sign-in.
func (s *AuthService) SignInFederated(ctx context.Context, identity domain.FederatedIdentity) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("auth service: failed to load user: %w", err)
	}

	id := identity.Subject
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	user, err := domain.NewUser(id, email)
	if err != nil {
		return nil, err
	}
	user.Provider = identity.Provider
	user.SetDisplayName(identity.DisplayName)

	if err := s.repo.Create(ctx, user); err != nil {
		// lost a race with a concurrent first sign-in
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return s.repo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
