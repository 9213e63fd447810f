package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/transport"
)

type messageResponse struct {
	Message string `json:"message"`
}

type idResponse struct {
	ID string `json:"id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// readBody reads the whole request body. Errors raised by the body limit
// middleware are passed through unchanged.
func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, transport.MsgBadRequest)
	}
	return body, nil
}

func badRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, transport.MsgBadRequest)
}

func notFound() error {
	return echo.NewHTTPError(http.StatusNotFound, transport.MsgNotFound)
}
