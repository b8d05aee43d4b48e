package service

import (
	"strings"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

// AllCategories is the category selector value that disables category filtering.
const AllCategories = "All"

type CatalogService struct {
	products []domain.Product
}

func NewCatalogService(products []domain.Product) *CatalogService {
	return &CatalogService{products: append([]domain.Product(nil), products...)}
}

func (c *CatalogService) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

func (c *CatalogService) Product(id int) (domain.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Categories lists the selector values in display order, AllCategories first.
func (c *CatalogService) Categories() []string {
	return []string{
		AllCategories,
		string(domain.CategoryBreads),
		string(domain.CategoryPastries),
		string(domain.CategoryCakes),
	}
}

func (c *CatalogService) Filter(searchTerm, category string) []domain.Product {
	return FilterProducts(c.products, searchTerm, category)
}

// FilterProducts keeps products in the selected category whose name or
// description contains searchTerm, ignoring case. An empty searchTerm and the
// AllCategories selector each match everything. The input is not modified.
func FilterProducts(products []domain.Product, searchTerm, category string) []domain.Product {
	term := strings.ToLower(searchTerm)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != AllCategories && string(p.Category) != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}
