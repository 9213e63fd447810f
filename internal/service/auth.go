package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/product_catalog/internal/hash"
	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Manager
	Events EventPublisher
}

type LoginResult struct {
	Token string
	User  *models.User
}

// Signup stores a new worker account.
func (s *AuthService) Signup(ctx context.Context, creds transport.Credentials) error {
	l := logging.FromContext(ctx).With("svc", "auth.signup", "username", creds.Username)

	exists, err := s.Repo.UserExists(ctx, creds.Username)
	if err != nil {
		l.Error("signup_error", "reason", "cannot check username", "error", err)
		return err
	}
	if exists {
		return ErrUserExists
	}

	pwHash, err := hash.HashPassword(creds.Password)
	if err != nil {
		l.Error("signup_error", "reason", "cannot hash the password", "error", err)
		return err
	}

	user := &models.User{
		Username:   creds.Username,
		Password:   pwHash,
		Permission: models.PermissionWorker,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrUserExists
		}
		l.Error("signup_error", "reason", "cannot store user", "error", err)
		return err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_registered",
		"username": user.Username,
	})
	return nil
}

func (s *AuthService) Login(ctx context.Context, creds transport.Credentials) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", creds.Username)

	user, err := s.Repo.GetUser(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown username")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "cannot load user", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(user.Password, creds.Password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.Tokens.Issue(user)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.Username, map[string]any{
		"type":     "user_logged_in",
		"username": user.Username,
	})
	return &LoginResult{Token: token, User: user}, nil
}

// ChangePermission does not check that the target exists; an unknown
// username leaves the store untouched.
func (s *AuthService) ChangePermission(ctx context.Context, actor string, req transport.PermissionChange) error {
	if req.Permission != models.PermissionWorker && req.Permission != models.PermissionManager {
		return fmt.Errorf("permission %q cannot be granted: %w", req.Permission, ErrValidation)
	}
	if err := s.Repo.SetPermission(ctx, req.Username, req.Permission); err != nil {
		logging.FromContext(ctx).Error("change_permission_error", "username", req.Username, "error", err)
		return err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, req.Username, map[string]any{
		"type":       "permission_changed",
		"username":   req.Username,
		"permission": req.Permission,
		"changed_by": actor,
	})
	return nil
}

// EnsureAdmin creates the admin account when the username is free. Running it
// again is a no-op, and an existing account keeps its password and permission.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.ensure_admin", "username", username)

	exists, err := s.Repo.UserExists(ctx, username)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		l.Debug("admin_exists")
		return nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := s.Repo.CreateUserIfNotExists(ctx, &models.User{
		Username:   username,
		Password:   pwHash,
		Permission: models.PermissionAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if created {
		l.Info("admin_created")
	}
	return nil
}
