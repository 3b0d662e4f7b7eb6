package service

import (
	"context"
	"testing"

	"elegance-storefront/internal/catalog"
	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(t *testing.T) (CatalogService, *notify.Recorder) {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)

	rec := &notify.Recorder{}
	return NewCatalogService(c, rec), rec
}

func TestCatalogService_List(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	result := svc.List(ctx, domain.Query{PriceRange: domain.PriceRangeOver200})
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Gold Essence", result.Products[0].Name)
	assert.Equal(t, 6, result.Total)

	result = svc.List(ctx, domain.Query{SearchTerm: "nothing like this"})
	assert.Empty(t, result.Products)
	assert.Equal(t, 6, result.Total)
}

func TestCatalogService_Featured(t *testing.T) {
	svc, _ := newTestCatalogService(t)

	featured := svc.Featured(context.Background())
	require.Len(t, featured, 3)
	assert.Equal(t, "Noir Élégance", featured[0].Name)
}

func TestCatalogService_Detail(t *testing.T) {
	svc, _ := newTestCatalogService(t)
	ctx := context.Background()

	detail, err := svc.Detail(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Gold Essence", detail.Name)

	_, err = svc.Detail(ctx, "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_AddToCart(t *testing.T) {
	svc, rec := newTestCatalogService(t)
	ctx := context.Background()

	note, err := svc.AddToCart(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Added to Cart", note.Title)
	assert.Equal(t, "Noir Élégance has been added to your cart.", note.Description)
	assert.Equal(t, []domain.Notification{note}, rec.Notifications())

	_, err = svc.AddToCart(ctx, "5")
	assert.ErrorIs(t, err, ErrOutOfStock)

	_, err = svc.AddToCart(ctx, "999")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Len(t, rec.Notifications(), 1, "failures notify nobody")
}

func TestCatalogService_AddToWishlist(t *testing.T) {
	svc, rec := newTestCatalogService(t)
	ctx := context.Background()

	note, err := svc.AddToWishlist(ctx, "5")
	require.NoError(t, err, "out of stock products can still be wished for")
	assert.Equal(t, "Added to Wishlist", note.Title)
	assert.Equal(t, "Velvet Night has been saved to your wishlist.", note.Description)
	assert.Len(t, rec.Notifications(), 1)

	_, err = svc.AddToWishlist(ctx, "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
