package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"wholesale-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string, customerCode *string) (User, string, error)
	Login(ctx context.Context, email, password string) (User, string, error)
	GetByID(ctx context.Context, id int) (User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateRole(ctx context.Context, id int, role string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register creates a CUSTOMER account and returns it with a signed token.
// Elevated roles are only assigned afterwards by an admin.
func (s *service) Register(ctx context.Context, email, password string, customerCode *string) (User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, "", errors.New("email and password are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, "", err
	}

	u, err := s.repo.Create(ctx, email, hash, string(RoleCustomer), customerCode)
	if err != nil {
		log.Error("failed to register user", zap.Error(err))
		return User{}, "", err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, u.CustomerCode)
	if err != nil {
		return User{}, "", err
	}

	log.Info("user registered", zap.Int("user_id", u.ID))
	return u, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (User, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to look up user", zap.Error(err))
		return User{}, "", err
	}

	if !CheckPasswordHash(password, u.Password) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, u.CustomerCode)
	if err != nil {
		return User{}, "", err
	}

	log.Info("user logged in", zap.Int("user_id", u.ID))
	return u, token, nil
}

func (s *service) GetByID(ctx context.Context, id int) (User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}
	return u, err
}

func (s *service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *service) UpdateRole(ctx context.Context, id int, role string) error {
	if !ValidRole(role) {
		return ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}
