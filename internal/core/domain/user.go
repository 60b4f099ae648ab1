package domain

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrUnauthorized       = errors.New("unauthorized")
)

const (
	ProviderPassword = "password"
	DefaultUserName  = "User"
)

// User is both the account and the profile document read by the dashboard.
type User struct {
	ID           string    `json:"uid" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Provider     string    `json:"provider" db:"provider"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

func NewUser(id, email string) (*User, error) {

	email = strings.TrimSpace(email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     strings.ToLower(email),
		Provider:  ProviderPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	if u.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// SetDisplayName fills first/last name from a single display name, splitting on the first space.
func (u *User) SetDisplayName(displayName string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return
	}
	u.FirstName = parts[0]
	u.LastName = strings.Join(parts[1:], " ")
}

// DisplayName picks the name greeting the user: first name, then the
// provider display name, then the email.
func (u *User) DisplayName(providerName string) string {
	switch {
	case strings.TrimSpace(u.FirstName) != "":
		return u.FirstName
	case strings.TrimSpace(providerName) != "":
		return providerName
	case u.Email != "":
		return u.Email
	default:
		return DefaultUserName
	}
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// FederatedIdentity is an identity asserted by an external provider after its
// token has been verified.
type FederatedIdentity struct {
	Subject     string
	Email       string
	DisplayName string
	Provider    string
}

// RevocationStore remembers signed-out tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
