package app

import (
	"context"
	"errors"
	"regexp"
	"strings"

	authapp "github.com/Carole-Bou-Shakra/Quick-Shop/internal/auth/app"
	"github.com/Carole-Bou-Shakra/Quick-Shop/internal/user/domain"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

type Service struct {
	repo UserRepo
}

func NewService(repo UserRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || !emailPattern.MatchString(email) || len(password) < minPasswordLen {
		return domain.User{}, ErrInvalidInput
	}

	hash, err := authapp.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	return s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
}

// Login deliberately collapses "no such user" and "wrong password" into
// one error so the endpoint cannot be used to probe for accounts.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if !authapp.CheckPassword(u.PasswordHash, password) {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces name/email and, when a new password is supplied,
// re-hashes it. Empty password means "keep the current one".
func (s *Service) Update(ctx context.Context, id, name, email, password string) (domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		if !emailPattern.MatchString(email) {
			return domain.User{}, ErrInvalidInput
		}
		u.Email = email
	}
	if password != "" {
		if len(password) < minPasswordLen {
			return domain.User{}, ErrInvalidInput
		}
		hash, err := authapp.HashPassword(password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}

	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
