package domain

// Product represents a fragrance in the catalog
type Product struct {
	ID          string  `json:"id" yaml:"id" validate:"required"`
	Name        string  `json:"name" yaml:"name" validate:"required"`
	Brand       string  `json:"brand" yaml:"brand" validate:"required"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price" validate:"gte=0"`
	Image       string  `json:"image" yaml:"image"`
}

// Notes holds the fragrance pyramid of a product
type Notes struct {
	Top    []string `json:"top" yaml:"top"`
	Middle []string `json:"middle" yaml:"middle"`
	Base   []string `json:"base" yaml:"base"`
}

// ProductDetail is the full record shown on a product page
type ProductDetail struct {
	Product       `yaml:",inline"`
	OriginalPrice float64  `json:"original_price,omitempty" yaml:"original_price" validate:"gte=0"`
	Images        []string `json:"images" yaml:"images"`
	Notes         Notes    `json:"notes" yaml:"notes"`
	Size          string   `json:"size,omitempty" yaml:"size"`
	Concentration string   `json:"concentration,omitempty" yaml:"concentration"`
	Rating        float64  `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" yaml:"reviews" validate:"gte=0"`
	InStock       bool     `json:"in_stock" yaml:"in_stock"`
}

// Savings returns how much cheaper the product is than its original price
func (d ProductDetail) Savings() float64 {
	if d.OriginalPrice <= d.Price {
		return 0
	}
	return d.OriginalPrice - d.Price
}

// DetailFromProduct builds a minimal detail record for a product that has no
// hand-written detail page.
func DetailFromProduct(p Product) ProductDetail {
	images := []string{}
	if p.Image != "" {
		images = append(images, p.Image)
	}
	return ProductDetail{
		Product: p,
		Images:  images,
		Notes: Notes{
			Top:    []string{},
			Middle: []string{},
			Base:   []string{},
		},
		InStock: true,
	}
}
