// Package listeners wires event handlers that react to domain events.
package listeners

import (
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/services"
	"github.com/tanakrit/pawmart/pkg/event"
	"github.com/tanakrit/pawmart/pkg/logger"
	"github.com/tanakrit/pawmart/pkg/metrics"
	"github.com/tanakrit/pawmart/pkg/orm"
)

// Register hooks up all event listeners. Call once at boot.
func Register() {
	event.Listen(services.EventStockLow, func(payload interface{}) {
		pet, ok := payload.(models.Pet)
		if !ok {
			return
		}
		logger.Warn("pet low on stock",
			"pet_id", pet.ID,
			"name", pet.Name,
			"remaining", pet.StockQuantity,
			"threshold", pet.MinStockThreshold,
		)
		refreshLowStockGauge()
	})

	event.Listen(services.EventStockDepleted, func(payload interface{}) {
		pet, ok := payload.(models.Pet)
		if !ok {
			return
		}
		logger.Warn("pet out of stock", "pet_id", pet.ID, "name", pet.Name)
		refreshLowStockGauge()
	})
}

// refreshLowStockGauge recounts rather than incrementing, so the gauge
// stays correct when restocks happen between events.
func refreshLowStockGauge() {
	var n int64
	err := orm.DB().
		Model(&models.Pet{}).
		Where("stock_quantity > 0 AND stock_quantity <= min_stock_threshold").
		Count(&n)
	if err != nil {
		return
	}
	metrics.LowStockPets.Set(float64(n))
}
