package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"feedbox/internal/model"
	"feedbox/internal/repository"
)

type AuthService interface {
	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, username, password string) (model.User, error)
	// GetUser loads a user by id, typically from a session.
	GetUser(ctx context.Context, id int64) (model.User, error)
	// CreateUser registers a new account with a bcrypt-hashed password.
	CreateUser(ctx context.Context, username, password string) (model.User, error)
}

type authService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *authService) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, ErrInvalid
	}
	if len(password) < 6 {
		return model.User{}, ErrInvalid
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return model.User{}, ErrConflict
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
	})
}
