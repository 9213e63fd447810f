package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skotchmaster/product_catalog/internal/logging"
	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/mykafka"
	"github.com/Skotchmaster/product_catalog/internal/repo"
	"github.com/Skotchmaster/product_catalog/internal/transport"
	"github.com/Skotchmaster/product_catalog/internal/util"
)

const productIDLen = 8

type CatalogService struct {
	Repo     *repo.GormRepo
	Events   EventPublisher
	Index    ProductIndex
	Searcher ProductSearcher

	// NewID defaults to NewProductID.
	NewID func() string
}

// LookupResult holds either a category listing or a single product.
type LookupResult struct {
	Products []models.Product
	Product  *models.Product
}

func (r LookupResult) IsCategory() bool { return r.Products != nil }

type SearchResult struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}

func NewProductID() string {
	return uuid.NewString()[:productIDLen]
}

func (s *CatalogService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return NewProductID()
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	id := s.newID()
	taken, err := s.Repo.ProductExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("create_product_error", "reason", "generated id collides", "id", id)
		return nil, fmt.Errorf("id %s already in use: %w", id, ErrValidation)
	}

	prod := &models.Product{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("id %s already in use: %w", id, ErrValidation)
		}
		return nil, err
	}

	s.indexProduct(ctx, prod)
	publish(ctx, s.Events, mykafka.TopicProductEvents, prod.ID, map[string]any{
		"type":     "product_created",
		"id":       prod.ID,
		"name":     prod.Name,
		"category": prod.Category,
	})
	return prod, nil
}

// Lookup treats a known category as a listing request and anything else as a
// product id. An empty category listing is reported as ErrNotFound.
func (s *CatalogService) Lookup(ctx context.Context, idOrCategory string) (*LookupResult, error) {
	if models.IsCategory(idOrCategory) {
		items, err := s.Repo.ListByCategory(ctx, idOrCategory)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("no products in category %s: %w", idOrCategory, ErrNotFound)
		}
		return &LookupResult{Products: items}, nil
	}

	prod, err := s.Repo.GetProduct(ctx, idOrCategory)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", idOrCategory, ErrNotFound)
		}
		return nil, err
	}
	return &LookupResult{Product: prod}, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req transport.PatchProductRequest) error {
	cols := req.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("nothing to update: %w", ErrValidation)
	}
	if err := s.Repo.UpdateProduct(ctx, id, cols); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}

	if s.Index != nil {
		if prod, err := s.Repo.GetProduct(ctx, id); err == nil {
			s.indexProduct(ctx, prod)
		}
	}

	fields := make([]string, 0, len(cols))
	for k := range cols {
		fields = append(fields, k)
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, id, map[string]any{
		"type":   "product_updated",
		"id":     id,
		"fields": fields,
	})
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("unindex_product_failed", "id", id, "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicProductEvents, id, map[string]any{
		"type": "product_deleted",
		"id":   id,
	})
	return nil
}

// SearchProducts uses the configured searcher, or the primary store when none is set.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page, size int) (*SearchResult, error) {
	if q == "" {
		return nil, fmt.Errorf("empty query: %w", ErrValidation)
	}
	offset, limit := util.Calculate(page, size)

	var searcher ProductSearcher = s.Repo
	if s.Searcher != nil {
		searcher = s.Searcher
	}
	total, items, err := searcher.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Product{}
	}
	return &SearchResult{Total: total, Products: items}, nil
}

func (s *CatalogService) indexProduct(ctx context.Context, prod *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Warn("index_product_failed", "id", prod.ID, "error", err)
	}
}
