// Package catalog is the hardcoded product listing.
package catalog

import (
	"strings"

	domain "github.com/aq2208/gstore-api/internal/entity"
	"github.com/shopspring/decimal"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Default returns a fresh copy of the built-in catalog.
func Default() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Laptop Ultra Slim", Price: price("1299.99"), Category: "Laptops",
			Description: "14-inch ultralight laptop with all-day battery.",
			Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500"},
		{ID: 2, Name: "Gaming Laptop Pro", Price: price("1899.00"), Category: "Laptops",
			Description: "High refresh display and dedicated graphics.",
			Image:       "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=500"},
		{ID: 3, Name: "Smartwatch Series 5", Price: price("299.99"), Category: "Wearables",
			Description: "Fitness tracking, notifications and GPS.",
			Image:       "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=500"},
		{ID: 4, Name: "Wireless Headphones", Price: price("199.99"), Category: "Audio",
			Description: "Over-ear headphones with active noise cancelling.",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500"},
		{ID: 5, Name: "Bluetooth Speaker", Price: price("89.50"), Category: "Audio",
			Description: "Portable waterproof speaker.",
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500"},
		{ID: 6, Name: "Earbuds Mini", Price: price("99.99"), Category: "Audio",
			Description: "True wireless earbuds with charging case.",
			Image:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=500"},
		{ID: 7, Name: "Fitness Band", Price: price("49.99"), Category: "Wearables",
			Description: "Lightweight activity and sleep tracker.",
			Image:       "https://images.unsplash.com/photo-1575311373937-040b8e1fd5b6?w=500"},
		{ID: 8, Name: "4K Monitor", Price: price("449.00"), Category: "Monitors",
			Description: "27-inch IPS panel with USB-C.",
			Image:       "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=500"},
	}
}

func Find(products []domain.Product, id int64) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Filter keeps products in category (empty matches all) whose name or
// description contains query, case-insensitively.
func Filter(products []domain.Product, category, query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Related returns up to limit other products sharing p's category.
func Related(products []domain.Product, p domain.Product, limit int) []domain.Product {
	out := make([]domain.Product, 0, limit)
	for _, other := range products {
		if len(out) == limit {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out
}

// Categories lists distinct categories in catalog order.
func Categories(products []domain.Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
