package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"elegance-storefront/internal/domain"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("duplicate product id")
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

var validate = validator.New()

type seedFile struct {
	Featured []string      `yaml:"featured"`
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	domain.Product `yaml:",inline"`
	Detail         *seedDetail `yaml:"detail"`
}

type seedDetail struct {
	OriginalPrice   float64      `yaml:"original_price" validate:"gte=0"`
	Images          []string     `yaml:"images"`
	LongDescription string       `yaml:"long_description"`
	Notes           domain.Notes `yaml:"notes"`
	Size            string       `yaml:"size"`
	Concentration   string       `yaml:"concentration"`
	Rating          float64      `yaml:"rating" validate:"gte=0,lte=5"`
	Reviews         int          `yaml:"reviews" validate:"gte=0"`
	InStock         *bool        `yaml:"in_stock"`
}

// Catalog is the immutable product collection served by the storefront
type Catalog struct {
	products []domain.Product
	details  map[string]domain.ProductDetail
	featured []string
}

// Default loads the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Load(defaultCatalog)
}

// Load parses and validates a YAML catalog. Every product needs a unique id
// and a non-negative price; featured ids must refer to listed products.
func Load(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(seed.Products)),
		details:  make(map[string]domain.ProductDetail, len(seed.Products)),
	}

	for i, sp := range seed.Products {
		if err := validate.Struct(sp); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
		if _, exists := c.details[sp.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, sp.ID)
		}

		c.products = append(c.products, sp.Product)
		c.details[sp.ID] = sp.toDetail()
	}

	for _, id := range seed.Featured {
		if _, ok := c.details[id]; !ok {
			return nil, fmt.Errorf("featured product %q: %w", id, ErrProductNotFound)
		}
		c.featured = append(c.featured, id)
	}

	return c, nil
}

func (sp seedProduct) toDetail() domain.ProductDetail {
	detail := domain.DetailFromProduct(sp.Product)
	if sp.Detail == nil {
		return detail
	}

	d := sp.Detail
	if d.LongDescription != "" {
		detail.Description = d.LongDescription
	}
	if len(d.Images) > 0 {
		detail.Images = d.Images
	}
	if d.Notes.Top != nil {
		detail.Notes.Top = d.Notes.Top
	}
	if d.Notes.Middle != nil {
		detail.Notes.Middle = d.Notes.Middle
	}
	if d.Notes.Base != nil {
		detail.Notes.Base = d.Notes.Base
	}
	if d.InStock != nil {
		detail.InStock = *d.InStock
	}
	detail.OriginalPrice = d.OriginalPrice
	detail.Size = d.Size
	detail.Concentration = d.Concentration
	detail.Rating = d.Rating
	detail.Reviews = d.Reviews
	return detail
}

// Products returns a copy of all products in authored order
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product{}, c.products...)
}

// Featured returns the products highlighted on the home page
func (c *Catalog) Featured() []domain.Product {
	featured := make([]domain.Product, 0, len(c.featured))
	for _, id := range c.featured {
		p, _ := c.Product(id)
		featured = append(featured, p)
	}
	return featured
}

// Product returns the listing record for id
func (c *Catalog) Product(id string) (domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Detail returns the product page record for id
func (c *Catalog) Detail(id string) (domain.ProductDetail, error) {
	d, ok := c.details[id]
	if !ok {
		return domain.ProductDetail{}, ErrProductNotFound
	}

	d.Images = append([]string{}, d.Images...)
	d.Notes = domain.Notes{
		Top:    append([]string{}, d.Notes.Top...),
		Middle: append([]string{}, d.Notes.Middle...),
		Base:   append([]string{}, d.Notes.Base...),
	}
	return d, nil
}

// Len returns the number of products in the catalog
func (c *Catalog) Len() int {
	return len(c.products)
}
