package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/app/repositories"
	"github.com/tanakrit/pawmart/config"
	"github.com/tanakrit/pawmart/pkg/database"
)

func orderInput(petID uint, qty int) CreateOrderInput {
	return CreateOrderInput{
		PetID:          petID,
		Quantity:       qty,
		DeliveryMethod: "pickup",
		PickupDate:     "2026-09-15",
		RecipientName:  "Jane Doe",
	}
}

func placeOrder(t *testing.T, svc *OrderService, buyer models.User, petID uint, qty int) models.Order {
	t.Helper()

	order, err := svc.Create(asActor(buyer), orderInput(petID, qty))
	require.NoError(t, err)
	return order
}

func TestOrderCreateReservesStock(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, 200.0, order.TotalPrice)
	assert.Equal(t, models.DeliveryPickup, order.DeliveryMethod)
	assert.Equal(t, buyer.ID, order.UserID)
	assert.Equal(t, 3, stockOf(t, pet.ID))
}

func TestOrderCreateValidation(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	in := orderInput(pet.ID, 0)
	_, err := svc.Create(asActor(buyer), in)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	in = orderInput(pet.ID, 1)
	in.DeliveryMethod = "teleport"
	_, err = svc.Create(asActor(buyer), in)
	assert.ErrorIs(t, err, ErrInvalidDelivery)

	_, err = svc.Create(asActor(buyer), orderInput(9999, 1))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderCreatePickupDateRules(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	// A pickup order without a date is refused outright.
	in := orderInput(pet.ID, 1)
	in.PickupDate = ""
	_, err := svc.Create(asActor(buyer), in)
	assert.ErrorIs(t, err, ErrPickupDateRequired)

	// An unparseable date is refused, not silently dropped.
	in.PickupDate = "not-a-date"
	_, err = svc.Create(asActor(buyer), in)
	assert.ErrorIs(t, err, ErrInvalidPickupDate)
	assert.Equal(t, 5, stockOf(t, pet.ID))

	// Delivery orders carry no pickup date, even when one is sent.
	delivered, err := svc.Create(asActor(buyer), CreateOrderInput{
		PetID:          pet.ID,
		Quantity:       1,
		DeliveryMethod: "delivery",
		PickupDate:     "2026-09-15",
		RecipientName:  "Jane Doe",
	})
	require.NoError(t, err)
	assert.Nil(t, delivered.PickupDate)
}

func TestOrderCreateDefaultsRecipientToBuyer(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	require.NoError(t, database.DB.Model(&models.User{}).Where("id = ?", buyer.ID).
		Updates(map[string]interface{}{"first_name": "Jane", "last_name": "Doe"}).Error)
	pet := mkPet(t, seller, 5, 1)

	in := orderInput(pet.ID, 1)
	in.RecipientName = "   "
	order, err := svc.Create(asActor(buyer), in)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", order.RecipientName)

	// An explicit recipient wins over the default.
	in.RecipientName = "Aunt May"
	order, err = svc.Create(asActor(buyer), in)
	require.NoError(t, err)
	assert.Equal(t, "Aunt May", order.RecipientName)
}

func TestOrderCreateHiddenPetRefusedForEveryone(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	admin := mkUser(t, "root", models.RoleAdmin)
	pet := mkPet(t, seller, 5, 1)
	require.NoError(t, database.DB.Model(&models.Pet{}).Where("id = ?", pet.ID).Update("is_available", false).Error)

	_, err := svc.Create(asActor(admin), orderInput(pet.ID, 1))
	assert.ErrorIs(t, err, ErrPetUnavailable)
	assert.Equal(t, 5, stockOf(t, pet.ID))
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 3, 1)

	_, err := svc.Create(asActor(buyer), orderInput(pet.ID, 10))
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 10, insufficient.Requested)
	assert.Equal(t, 3, stockOf(t, pet.ID))
}

func TestOrderCancelRestoresStock(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)
	assert.Equal(t, 3, stockOf(t, pet.ID))

	cancelled, err := svc.Cancel(asActor(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	assert.Equal(t, 5, stockOf(t, pet.ID))

	// Cancelling again is a no-op; stock must not come back twice.
	again, err := svc.Cancel(asActor(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, again.Status)
	assert.Equal(t, 5, stockOf(t, pet.ID))
}

func TestOrderCompleteIsTerminal(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	admin := mkUser(t, "root", models.RoleAdmin)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)

	completed, err := svc.Complete(asActor(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, completed.Status)
	// Completing moves no stock; it was taken at creation.
	assert.Equal(t, 3, stockOf(t, pet.ID))

	var transition *TransitionError
	_, err = svc.Cancel(asActor(buyer), order.ID)
	require.True(t, errors.As(err, &transition))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(asActor(admin), order.ID, models.OrderPending)
	require.True(t, errors.As(err, &transition))
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 1)

	_, err := svc.UpdateStatus(asActor(buyer), order.ID, models.OrderStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderReopenPolicy(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	admin := mkUser(t, "root", models.RoleAdmin)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)
	_, err := svc.Cancel(asActor(buyer), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stockOf(t, pet.ID))

	// Buyers never reopen; sellers only when the deployment says so.
	_, err = svc.UpdateStatus(asActor(buyer), order.ID, models.OrderPending)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.UpdateStatus(asActor(seller), order.ID, models.OrderPending)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	reopened, err := svc.UpdateStatus(asActor(admin), order.ID, models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, reopened.Status)
	// Reopening takes the units back out of stock.
	assert.Equal(t, 3, stockOf(t, pet.ID))
}

func TestOrderReopenBySellerWhenDelegated(t *testing.T) {
	setupDB(t)
	config.Set("ORDER_REOPEN_ROLE", "seller")
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)
	_, err := svc.Cancel(asActor(buyer), order.ID)
	require.NoError(t, err)

	reopened, err := svc.UpdateStatus(asActor(seller), order.ID, models.OrderPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, reopened.Status)
}

func TestOrderReopenFailsWhenStockGone(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	admin := mkUser(t, "root", models.RoleAdmin)
	pet := mkPet(t, seller, 2, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)
	_, err := svc.Cancel(asActor(buyer), order.ID)
	require.NoError(t, err)

	// Stock moved on while the order sat cancelled.
	require.NoError(t, database.DB.Model(&models.Pet{}).Where("id = ?", pet.ID).Update("stock_quantity", 1).Error)

	_, err = svc.UpdateStatus(asActor(admin), order.ID, models.OrderPending)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 1, insufficient.Available)

	got, err := svc.Get(asActor(admin), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, got.Status)
}

func TestOrderUpdateQuantity(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 10, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 2)
	assert.Equal(t, 8, stockOf(t, pet.ID))

	grown, err := svc.UpdateQuantity(asActor(buyer), order.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, grown.Quantity)
	assert.Equal(t, 500.0, grown.TotalPrice)
	assert.Equal(t, 5, stockOf(t, pet.ID))

	shrunk, err := svc.UpdateQuantity(asActor(buyer), order.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, shrunk.Quantity)
	assert.Equal(t, 100.0, shrunk.TotalPrice)
	assert.Equal(t, 9, stockOf(t, pet.ID))

	_, err = svc.UpdateQuantity(asActor(buyer), order.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(asActor(buyer), order.ID, 100)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 9, stockOf(t, pet.ID))

	_, err = svc.Complete(asActor(buyer), order.ID)
	require.NoError(t, err)
	_, err = svc.UpdateQuantity(asActor(buyer), order.ID, 2)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestOrderUpdateQuantityTakesLastUnits(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 3)
	assert.Equal(t, 2, stockOf(t, pet.ID))

	// Growing by exactly what remains must succeed and drain the shelf.
	grown, err := svc.UpdateQuantity(asActor(buyer), order.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, grown.Quantity)
	assert.Equal(t, 500.0, grown.TotalPrice)
	assert.Equal(t, 0, stockOf(t, pet.ID))
}

func TestSellerOrderScope(t *testing.T) {
	setupDB(t)
	config.Set("SELLER_ORDER_SCOPE", "own_pets")
	svc := NewOrderService()

	owner := mkUser(t, "shop", models.RoleSeller)
	rival := mkUser(t, "rival", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	other := mkUser(t, "other", models.RoleCustomer)
	pet := mkPet(t, owner, 5, 1)

	order := placeOrder(t, svc, buyer, pet.ID, 1)

	_, err := svc.Get(asActor(rival), order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = svc.Get(asActor(other), order.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Get(asActor(owner), order.ID)
	require.NoError(t, err)
	_, err = svc.Get(asActor(buyer), order.ID)
	require.NoError(t, err)

	visible, _, err := svc.List(asActor(rival), repositories.OrderFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, visible)

	visible, _, err = svc.List(asActor(owner), repositories.OrderFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestOrderStats(t *testing.T) {
	setupDB(t)
	svc := NewOrderService()
	seller := mkUser(t, "shop", models.RoleSeller)
	buyer := mkUser(t, "buyer", models.RoleCustomer)
	pet := mkPet(t, seller, 20, 1)

	_, err := svc.Stats(asActor(buyer))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	completed := placeOrder(t, svc, buyer, pet.ID, 2) // 200
	_, err = svc.Complete(asActor(buyer), completed.ID)
	require.NoError(t, err)

	cancelled := placeOrder(t, svc, buyer, pet.ID, 1)
	_, err = svc.Cancel(asActor(buyer), cancelled.ID)
	require.NoError(t, err)

	placeOrder(t, svc, buyer, pet.ID, 3)

	stats, err := svc.Stats(asActor(seller))
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(1), stats.Cancelled)
	assert.Equal(t, 200.0, stats.Revenue)
}
