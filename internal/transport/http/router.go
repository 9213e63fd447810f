package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/product_catalog/internal/handlers"
	authmw "github.com/Skotchmaster/product_catalog/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/product_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type Deps struct {
	AuthHandler    *handlers.AuthHTTP
	CatalogHandler *handlers.CatalogHTTP
	Authorizer     *authmw.Authorizer

	// Ready backs /health/ready. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Route is one entry of the API table. An empty MinPermission marks a public route.
type Route struct {
	Method        string
	Path          string
	MinPermission models.Permission
	Handler       echo.HandlerFunc
}

func Routes(d *Deps) []Route {
	return []Route{
		{http.MethodPost, "/api/signup", "", d.AuthHandler.Signup},
		{http.MethodPost, "/api/login", "", d.AuthHandler.Login},
		{http.MethodPut, "/api/permission", models.PermissionAdmin, d.AuthHandler.ChangePermission},

		{http.MethodPost, "/api/product", models.PermissionManager, d.CatalogHandler.CreateProduct},
		{http.MethodGet, "/api/product/:id", models.PermissionWorker, d.CatalogHandler.GetProduct},
		{http.MethodPut, "/api/product/:id", models.PermissionManager, d.CatalogHandler.UpdateProduct},
		{http.MethodDelete, "/api/product/:id", models.PermissionAdmin, d.CatalogHandler.DeleteProduct},

		{http.MethodGet, "/api/search", models.PermissionWorker, d.CatalogHandler.SearchProducts},
	}
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	for _, r := range Routes(d) {
		var mw []echo.MiddlewareFunc
		if r.MinPermission != "" {
			mw = append(mw, d.Authorizer.Require(r.MinPermission))
		}
		e.Add(r.Method, r.Path, r.Handler, mw...)
	}
}

// ErrorHandler renders every error as {"message": ...}. Unmatched paths and
// methods are both reported as a plain 404.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
			err = echo.NewHTTPError(http.StatusNotFound, transport.MsgRouteNotFound)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// RejectUnknownMethods answers every method outside the route table with a
// router miss, so OPTIONS and HEAD never reach echo's built-in handlers.
func RejectUnknownMethods(routes []Route) echo.MiddlewareFunc {
	allowed := map[string]bool{http.MethodGet: true}
	for _, r := range routes {
		allowed[r.Method] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[c.Request().Method] {
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}

// hasIdentifier reports whether the path carries a segment after the
// resource name, as in /api/product/<id>/.
func hasIdentifier(path string) bool {
	return strings.Count(strings.TrimSuffix(path, "/"), "/") > 2
}

func New(logger *slog.Logger, bodyLimit string, d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(e)

	e.Pre(RejectUnknownMethods(Routes(d)))
	e.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(c echo.Context) bool { return hasIdentifier(c.Request().URL.Path) },
	}))
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	Register(e, d)
	return e
}
