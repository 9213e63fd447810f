package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/service"
	"github.com/Skotchmaster/product_catalog/internal/transport"
	"github.com/Skotchmaster/product_catalog/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	req, err := transport.DecodeCreateProduct(body)
	if err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest()
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", 400, "error", err)
		} else {
			l.Error("create_product_failed", "status", 400, "reason", "cannot store product", "error", err)
		}
		return badRequest()
	}

	l.Info("create_product_success", "id", prod.ID)
	return c.JSON(http.StatusCreated, idResponse{ID: prod.ID})
}

// GetProduct answers with an array for a category and an object for an id.
func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	if err := transport.RequireEmptyBody(body); err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "unexpected body")
		return badRequest()
	}

	key := c.Param("id")
	res, err := h.Svc.Lookup(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_failed", "status", 404, "key", key)
			return notFound()
		}
		l.Error("get_product_failed", "status", 400, "reason", "cannot load product", "error", err)
		return badRequest()
	}

	if res.IsCategory() {
		return c.JSON(http.StatusOK, res.Products)
	}
	return c.JSON(http.StatusOK, res.Product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	req, err := transport.DecodePatchProduct(body)
	if err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return badRequest()
	}

	id := c.Param("id")
	if err := h.Svc.UpdateProduct(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_failed", "status", 404, "id", id)
			return notFound()
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_failed", "status", 400, "error", err)
		default:
			l.Error("update_product_failed", "status", 400, "reason", "cannot update product", "error", err)
		}
		return badRequest()
	}

	l.Info("update_product_success", "id", id)
	return c.JSON(http.StatusOK, idResponse{ID: id})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	if err := transport.RequireEmptyBody(body); err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "unexpected body")
		return badRequest()
	}

	id := c.Param("id")
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_failed", "status", 404, "id", id)
			return notFound()
		}
		l.Error("delete_product_failed", "status", 400, "reason", "cannot delete product", "error", err)
		return badRequest()
	}

	l.Info("delete_product_success", "id", id)
	return c.NoContent(http.StatusOK)
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	body, err := readBody(c)
	if err != nil {
		return err
	}
	if err := transport.RequireEmptyBody(body); err != nil {
		l.Warn("search_failed", "status", 400, "reason", "unexpected body")
		return badRequest()
	}

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.SearchProducts(ctx, q, page, size)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("search_failed", "status", 400, "reason", "empty query")
		} else {
			l.Error("search_failed", "status", 400, "reason", "search backend error", "error", err)
		}
		return badRequest()
	}

	return c.JSON(http.StatusOK, res)
}
