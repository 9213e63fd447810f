package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/tokens"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

const (
	userKey  = "user"
	claimKey = "claims"
)

type UserFinder interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
}

type TokenParser interface {
	Parse(token string) (*tokens.AccessClaims, error)
}

// Authorizer checks bearer tokens against the current user record. The
// permission embedded in a token is never used for the decision.
type Authorizer struct {
	Users  UserFinder
	Tokens TokenParser
}

// BearerToken extracts the credential from "Bearer <token>".
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

func (a *Authorizer) Authorize(ctx context.Context, header string, min models.Permission) (*models.User, *tokens.AccessClaims, error) {
	raw, ok := BearerToken(header)
	if !ok {
		return nil, nil, ErrUnauthorized
	}
	claims, err := a.Tokens.Parse(raw)
	if err != nil {
		return nil, nil, errors.Join(ErrUnauthorized, err)
	}

	user, err := a.Users.GetUser(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, claims, ErrForbidden
		}
		return nil, claims, err
	}
	if !user.Permission.AtLeast(min) {
		return user, claims, ErrForbidden
	}
	return user, claims, nil
}

// Require rejects requests whose user holds less than min.
func (a *Authorizer) Require(min models.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("mw", "auth.require", "min_permission", min)

			user, claims, err := a.Authorize(ctx, c.Request().Header.Get(echo.HeaderAuthorization), min)
			switch {
			case errors.Is(err, ErrUnauthorized):
				l.Warn("auth_failed", "status", http.StatusUnauthorized, "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, transport.MsgUnauthorized)
			case errors.Is(err, ErrForbidden):
				l.Warn("auth_failed", "status", http.StatusForbidden, "username", claims.Subject)
				return echo.NewHTTPError(http.StatusForbidden, transport.MsgForbidden)
			case err != nil:
				l.Error("auth_failed", "status", http.StatusBadRequest, "reason", "cannot load user", "error", err)
				return echo.NewHTTPError(http.StatusBadRequest, transport.MsgBadRequest)
			}

			if claims.Permission != user.Permission {
				l.Info("permission_changed_since_issue", "username", user.Username,
					"token_permission", claims.Permission, "current_permission", user.Permission)
			}

			c.Set(userKey, user)
			c.Set(claimKey, claims)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by Require, or nil on public routes.
func CurrentUser(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}
