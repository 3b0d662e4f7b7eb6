package transport

import (
	"errors"
	"net/http"

	"elegance-storefront/internal/domain"
	"elegance-storefront/internal/middleware"
	"elegance-storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is one evaluation of the catalog query
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
}

// FeaturedResponse lists the home page selection
type FeaturedResponse struct {
	Products []domain.Product `json:"products"`
}

// ProductDetailResponse is the product page payload
type ProductDetailResponse struct {
	domain.ProductDetail
	Savings float64 `json:"savings"`
	// FreeShippingThreshold is only set when the product can be ordered
	FreeShippingThreshold float64 `json:"free_shipping_threshold,omitempty"`
}

// NotificationResponse wraps a toast message for the storefront shell
type NotificationResponse struct {
	Notification domain.Notification `json:"notification"`
}

// CatalogHandler handles HTTP requests for the storefront catalog
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/{id}", h.Detail)
		r.Post("/{id}/cart", h.AddToCart)
		r.Post("/{id}/wishlist", h.AddToWishlist)
	})
}

// List filters and sorts the catalog. Missing or unknown parameters fall
// back to the default query.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := domain.DefaultQuery()
	query.SearchTerm = params.Get("search")
	if v := params.Get("price_range"); v != "" {
		query.PriceRange = domain.PriceRange(v)
	}
	if v := params.Get("sort"); v != "" {
		query.SortKey = domain.SortKey(v)
	}

	result := h.catalogService.List(r.Context(), query)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: result.Products,
		Count:    len(result.Products),
		Total:    result.Total,
	})
}

// Featured returns the home page products
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, FeaturedResponse{
		Products: h.catalogService.Featured(r.Context()),
	})
}

// Detail returns the product page for one product
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogService.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	resp := ProductDetailResponse{
		ProductDetail: detail,
		Savings:       detail.Savings(),
	}
	if detail.InStock {
		resp.FreeShippingThreshold = service.FreeShippingThreshold
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// AddToCart handles the add-to-cart button
func (h *CatalogHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	note, err := h.catalogService.AddToCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, NotificationResponse{Notification: note})
}

// AddToWishlist handles the wishlist button
func (h *CatalogHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	note, err := h.catalogService.AddToWishlist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, NotificationResponse{Notification: note})
}

func (h *CatalogHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, service.ErrOutOfStock):
		middleware.RespondWithError(w, http.StatusConflict, "product is out of stock")
	default:
		h.logger.Error("Catalog request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
