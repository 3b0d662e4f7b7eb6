package catalog

import (
	"cmp"
	"slices"
	"strings"

	"elegance-storefront/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply filters products by search term and price bracket, then sorts them by
// the query's sort key. The input slice is never modified. Unknown price
// ranges match everything and unknown sort keys sort by name.
func Apply(products []domain.Product, q domain.Query) []domain.Product {
	// Casers and collators keep internal state, so each call gets its own.
	fold := cases.Fold()
	term := fold.String(q.SearchTerm)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesTerm(fold, p, term) {
			continue
		}
		if !InPriceRange(p.Price, q.PriceRange) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, q.SortKey)
	return result
}

func matchesTerm(fold cases.Caser, p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(fold.String(p.Name), term) ||
		strings.Contains(fold.String(p.Description), term)
}

// InPriceRange reports whether price falls inside the bracket. 150 and 200
// both belong to PriceRange150To200.
func InPriceRange(price float64, r domain.PriceRange) bool {
	switch r {
	case domain.PriceRangeUnder150:
		return price < 150
	case domain.PriceRange150To200:
		return price >= 150 && price <= 200
	case domain.PriceRangeOver200:
		return price > 200
	default:
		return true
	}
}

// sortProducts sorts in place. The sort is stable: equal keys keep their
// relative order.
func sortProducts(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortByPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case domain.SortByPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	default:
		col := collate.New(language.English)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}
}
