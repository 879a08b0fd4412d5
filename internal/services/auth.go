package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and profile edits.
type AuthService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewAuthService(storage *storage.SQLiteRepository, logger *log.Logger) *AuthService {
	return &AuthService{
		storage: storage,
		logger:  logger.WithComponent(log.ComponentAuth),
	}
}

// ProfilePatch carries optional profile edits; unset fields stay untouched.
type ProfilePatch struct {
	DisplayName *string
	Email       *string
	NewPassword *string
}

// Register creates a user. The first registered user becomes admin.
func (s *AuthService) Register(ctx context.Context, username, password, confirm, displayName, email string) (*core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", core.ErrValidation)
	}
	if password != confirm {
		return nil, fmt.Errorf("%w: passwords do not match", core.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, username, string(hash), strings.TrimSpace(displayName), strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered",
		log.FieldOperation, log.OpRegister,
		log.FieldUserID, user.ID,
		log.FieldUsername, user.Username,
		log.FieldAdmin, user.IsAdmin)
	return user, nil
}

// Login verifies credentials. Any mismatch surfaces as the same ErrAuth so
// callers cannot tell a missing user from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*core.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrAuth
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, core.ErrAuth
	}

	s.logger.InfoContext(ctx, "User logged in",
		log.FieldOperation, log.OpLogin,
		log.FieldUserID, user.ID,
		log.FieldUsername, user.Username)
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*core.User, error) {
	return s.storage.GetUserByID(ctx, id)
}

// UpdateProfile applies the provided profile fields to the session user.
func (s *AuthService) UpdateProfile(ctx context.Context, session core.Session, patch ProfilePatch) error {
	update := core.UserPatch{
		DisplayName: patch.DisplayName,
		Email:       patch.Email,
	}
	if patch.NewPassword != nil {
		if *patch.NewPassword == "" {
			return fmt.Errorf("%w: new password cannot be empty", core.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		update.PasswordHash = &h
	}
	if update.Empty() {
		return nil
	}

	if err := s.storage.UpdateUser(ctx, session.UserID, update); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Profile updated",
		log.FieldOperation, log.OpUpdate,
		log.FieldUserID, session.UserID)
	return nil
}
