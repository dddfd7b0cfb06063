// Package resources holds the API transformers. They decide the JSON shape
// of every model, including computed fields like stock_status that do not
// live in the database.
package resources

import (
	"time"

	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/resource"
)

// Category transforms a category for API output.
func Category(c models.Category) resource.Map {
	return resource.Map{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"created_at":  c.CreatedAt.Format(time.RFC3339),
	}
}

// Pet transforms a pet for API output. stock_status is recomputed from the
// live quantity and threshold on every read, never stored.
func Pet(p models.Pet) resource.Map {
	out := resource.Map{
		"id":                  p.ID,
		"name":                p.Name,
		"description":         p.Description,
		"category_id":         p.CategoryID,
		"price":               p.Price,
		"image_url":           p.ImageURL,
		"gender":              p.Gender,
		"is_available":        p.IsAvailable,
		"stock_quantity":      p.StockQuantity,
		"min_stock_threshold": p.MinStockThreshold,
		"stock_status":        string(p.StockStatus()),
		"stock_status_display": p.StockStatusDisplay(),
		"purchasable":         p.IsAvailableForSale(),
		"created_at":          p.CreatedAt.Format(time.RFC3339),
		"updated_at":          p.UpdatedAt.Format(time.RFC3339),
	}

	if p.Category.ID != 0 {
		out["category"] = Category(p.Category)
	}
	if p.CreatedBy.ID != 0 {
		out["seller"] = resource.Map{
			"id":   p.CreatedBy.ID,
			"name": p.CreatedBy.FullName(),
		}
	}

	return out
}
