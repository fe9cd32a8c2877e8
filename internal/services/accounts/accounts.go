package accounts

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
	"github.com/Windi-Fikriyansyah/gigflow/internal/models"
	"github.com/Windi-Fikriyansyah/gigflow/internal/repository"
	"github.com/Windi-Fikriyansyah/gigflow/internal/utils"
)

// bcrypt only looks at the first 72 bytes.
const (
	minPasswordLen = 6
	maxPasswordLen = 72
)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "":
		return nil, apperrors.Invalid("name is required")
	case email == "":
		return nil, apperrors.Invalid("email is required")
	case len(password) < minPasswordLen:
		return nil, apperrors.Invalid("password must be at least 6 characters")
	case len(password) > maxPasswordLen:
		return nil, apperrors.Invalid("password must be at most 72 bytes")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.Invalid("email is not valid")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Email: email, Password: hash}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user for valid credentials. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, apperrors.ErrBadCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindUserByID(ctx, id)
}

// UpsertExternal finds the user for an email verified by an external
// identity provider, creating one with an unusable random password. Callers
// must only pass emails the provider reports as verified.
func (s *Service) UpsertExternal(ctx context.Context, email, name string) (*models.User, error) {
	email = normalizeEmail(email)
	u, err := s.repo.FindUserByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(base64.RawURLEncoding.EncodeToString(raw))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	u = &models.User{Name: strings.TrimSpace(name), Email: email, Password: hash}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
