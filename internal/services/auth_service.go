// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/apperror"
	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/utils"
)

// AuthService is the session gate: it issues tokens on login/registration
// and resolves bearer tokens back to users.
type AuthService struct {
	users  repository.UserRepository
	tokens *utils.TokenManager
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AuthResponse is the session payload the storefront keeps as userInfo.
type AuthResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

func NewAuthService(users repository.UserRepository, tokens *utils.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = models.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validate(req); err != nil {
		return nil, err
	}

	// Check if user already exists
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperror.Conflict(i18n.KeyAuthUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &models.User{Name: req.Name, Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Init(nowUTC())

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(i18n.KeyAuthUserExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User registered")
	return s.session(user)
}

// Login answers Unauthorized for an unknown email and for a wrong password alike.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized(i18n.KeyAuthInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, apperror.Unauthorized(i18n.KeyAuthInvalidCredentials)
	}

	return s.session(user)
}

func (s *AuthService) session(user *models.User) (*AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

// Authenticate resolves an Authorization header value to the current user.
// The user is re-read on every call so deletions and role changes apply
// to tokens already issued.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*models.User, error) {
	if header == "" {
		return nil, apperror.Unauthorized(i18n.KeyAuthRequired)
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return nil, apperror.Unauthorized(i18n.KeyAuthInvalidToken)
	}

	claims, err := s.tokens.Validate(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, apperror.Unauthorized(i18n.KeyAuthInvalidToken)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Unauthorized(i18n.KeyAuthInvalidToken)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *AuthService) RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return apperror.Forbidden(i18n.KeyAdminAccessDenied)
	}
	return nil
}
