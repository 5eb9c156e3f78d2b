package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/ports"
	"github.com/tripnest/vacation-api/internal/util"
)

const minPasswordLength = 4

type AuthService struct {
	users ports.UserRepository
}

func NewAuthService(users ports.UserRepository) *AuthService {
	return &AuthService{users: users}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// Register validates the input, hashes the password and inserts the user in a
// single statement. A duplicate email surfaces as ErrEmailTaken via the
// database's unique constraint.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	fields := map[string]string{
		"firstName": input.FirstName,
		"lastName":  input.LastName,
		"email":     input.Email,
		"password":  input.Password,
		"role":      input.Role,
	}
	for _, name := range []string{"firstName", "lastName", "email", "password", "role"} {
		if strings.TrimSpace(fields[name]) == "" {
			return nil, Invalid("%s is required", name)
		}
	}

	// ParseAddress also accepts name-addr forms like "Dana <dana@example.com>";
	// only a bare address may be stored.
	email := strings.TrimSpace(input.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return nil, Invalid("email is not a valid address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, Invalid("password must be at least %d characters long", minPasswordLength)
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         strings.TrimSpace(input.Role),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login proves the caller knows the password for the given email. No session
// or token is issued; a successful result vouches for this call only.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, Invalid("email is required")
	}
	if password == "" {
		return nil, Invalid("password is required")
	}

	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
