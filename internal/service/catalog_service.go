package service

import (
	"context"
	"errors"
	"fmt"

	"elegance-storefront/internal/catalog"
	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/notify"
)

// FreeShippingThreshold is the order value above which shipping is free
const FreeShippingThreshold = 150.0

var (
	ErrProductNotFound = catalog.ErrProductNotFound
	ErrOutOfStock      = errors.New("product is out of stock")
)

// ListResult is one page of catalog results
type ListResult struct {
	Products []domain.Product
	// Total is the size of the whole catalog, before filtering
	Total int
}

// CatalogService defines the interface for storefront catalog operations
type CatalogService interface {
	List(ctx context.Context, query domain.Query) ListResult
	Featured(ctx context.Context) []domain.Product
	Detail(ctx context.Context, id string) (domain.ProductDetail, error)
	AddToCart(ctx context.Context, id string) (domain.Notification, error)
	AddToWishlist(ctx context.Context, id string) (domain.Notification, error)
}

type catalogService struct {
	catalog  *catalog.Catalog
	notifier notify.Notifier
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(c *catalog.Catalog, notifier notify.Notifier) CatalogService {
	return &catalogService{
		catalog:  c,
		notifier: notifier,
	}
}

// List runs the query against the full catalog
func (s *catalogService) List(_ context.Context, query domain.Query) ListResult {
	return ListResult{
		Products: catalog.Apply(s.catalog.Products(), query),
		Total:    s.catalog.Len(),
	}
}

// Featured returns the products shown on the home page
func (s *catalogService) Featured(_ context.Context) []domain.Product {
	return s.catalog.Featured()
}

// Detail returns the full product page record
func (s *catalogService) Detail(_ context.Context, id string) (domain.ProductDetail, error) {
	detail, err := s.catalog.Detail(id)
	if err != nil {
		return domain.ProductDetail{}, fmt.Errorf("failed to get product %q: %w", id, err)
	}
	return detail, nil
}

// AddToCart confirms the product can be bought and emits a notification.
// Nothing is stored.
func (s *catalogService) AddToCart(ctx context.Context, id string) (domain.Notification, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return domain.Notification{}, err
	}
	if !detail.InStock {
		return domain.Notification{}, ErrOutOfStock
	}

	note := domain.AddedToCart(detail.Name)
	s.notifier.Notify(ctx, note)
	return note, nil
}

// AddToWishlist emits a notification. Nothing is stored.
func (s *catalogService) AddToWishlist(ctx context.Context, id string) (domain.Notification, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return domain.Notification{}, err
	}

	note := domain.AddedToWishlist(detail.Name)
	s.notifier.Notify(ctx, note)
	return note, nil
}
