package models

import "gorm.io/gorm"

// StockStatus is derived from the two stock counters. It is computed on
// every read and never stored on the row.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLow        StockStatus = "low_stock"
	StockOut        StockStatus = "out_of_stock"
)

// Pet is a catalogue item. IsAvailable is the seller's on/off switch and is
// independent of the stock counters: a pet needs both IsAvailable and
// positive stock to be purchasable.
type Pet struct {
	gorm.Model
	Name        string   `gorm:"size:100;not null;index" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	CategoryID  uint     `gorm:"not null;index" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price       float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string   `gorm:"size:500" json:"image_url"`
	Gender      string   `gorm:"size:10" json:"gender"` // "male", "female", or "unknown"
	IsAvailable bool     `gorm:"default:true" json:"is_available"`

	StockQuantity     int `gorm:"not null;default:1" json:"stock_quantity"`
	MinStockThreshold int `gorm:"not null;default:1" json:"min_stock_threshold"`

	CreatedByID uint `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}

// IsOutOfStock reports whether nothing is left to sell.
func (p *Pet) IsOutOfStock() bool { return p.StockQuantity <= 0 }

// IsLowStock reports whether stock is positive but at or below the
// configured threshold.
func (p *Pet) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.MinStockThreshold
}

// IsAvailableForSale requires both the availability flag and stock.
func (p *Pet) IsAvailableForSale() bool {
	return p.IsAvailable && !p.IsOutOfStock()
}

// StockStatus derives the status from the counters.
func (p *Pet) StockStatus() StockStatus {
	switch {
	case p.IsOutOfStock():
		return StockOut
	case p.IsLowStock():
		return StockLow
	default:
		return StockInStock
	}
}

// StockStatusDisplay is the human-readable form of StockStatus.
func (p *Pet) StockStatusDisplay() string {
	switch p.StockStatus() {
	case StockOut:
		return "Out of stock"
	case StockLow:
		return "Low stock"
	default:
		return "In stock"
	}
}
