package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	creds, err := transport.DecodeCredentials(body)
	if err != nil {
		l.Warn("signup_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest()
	}

	if err := h.Svc.Signup(ctx, creds); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			l.Warn("signup_failed", "status", 400, "reason", "username taken", "username", creds.Username)
			return echo.NewHTTPError(http.StatusBadRequest, transport.MsgUserExists)
		}
		l.Error("signup_failed", "status", 400, "reason", "cannot create user", "error", err)
		return badRequest()
	}

	l.Info("signup_success", "username", creds.Username)
	return c.JSON(http.StatusCreated, messageResponse{Message: transport.MsgSuccess})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	creds, err := transport.DecodeCredentials(body)
	if err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, transport.MsgInvalidCredentials)
	}

	res, err := h.Svc.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials", "username", creds.Username)
			return echo.NewHTTPError(http.StatusUnauthorized, transport.MsgInvalidCredentials)
		}
		l.Error("login_failed", "status", 400, "reason", "cannot log in", "error", err)
		return badRequest()
	}

	l.Info("login_success", "username", creds.Username)
	return c.JSON(http.StatusOK, tokenResponse{Token: res.Token})
}

func (h *AuthHTTP) ChangePermission(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.change_permission")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	req, err := transport.DecodePermissionChange(body)
	if err != nil {
		l.Warn("change_permission_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest()
	}

	actor := ""
	if u := authmw.CurrentUser(c); u != nil {
		actor = u.Username
	}
	if err := h.Svc.ChangePermission(ctx, actor, req); err != nil {
		l.Warn("change_permission_failed", "status", 400, "error", err)
		return badRequest()
	}

	l.Info("change_permission_success", "username", req.Username, "permission", req.Permission, "actor", actor)
	return c.JSON(http.StatusOK, messageResponse{Message: transport.MsgSuccess})
}
