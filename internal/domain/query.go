package domain

// PriceRange names a price bracket used to filter the catalog
type PriceRange string

const (
	PriceRangeAll      PriceRange = "all"
	PriceRangeUnder150 PriceRange = "under-150"
	PriceRange150To200 PriceRange = "150-200"
	PriceRangeOver200  PriceRange = "over-200"
)

// SortKey names the ordering applied to catalog results
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
)

// Query is a catalog listing request. Unrecognized PriceRange and SortKey
// values are accepted and treated as PriceRangeAll and SortByName.
type Query struct {
	SearchTerm string     `json:"search"`
	PriceRange PriceRange `json:"price_range"`
	SortKey    SortKey    `json:"sort"`
}

// DefaultQuery returns the query the listing page starts with
func DefaultQuery() Query {
	return Query{
		PriceRange: PriceRangeAll,
		SortKey:    SortByName,
	}
}
