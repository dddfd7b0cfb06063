package resources

import (
	"time"

	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/resource"
)

// Order transforms an order for API output.
func Order(o models.Order) resource.Map {
	out := resource.Map{
		"id":              o.ID,
		"reference":       o.Reference,
		"user_id":         o.UserID,
		"pet_id":          o.PetID,
		"quantity":        o.Quantity,
		"total_price":     o.TotalPrice,
		"status":          string(o.Status),
		"delivery_method": string(o.DeliveryMethod),
		"recipient_name":  o.RecipientName,
		"created_at":      o.CreatedAt.Format(time.RFC3339),
		"updated_at":      o.UpdatedAt.Format(time.RFC3339),
	}

	if o.PickupDate != nil {
		out["pickup_date"] = o.PickupDate.Format("2006-01-02")
	}
	if o.Pet.ID != 0 {
		out["pet"] = Pet(o.Pet)
	}
	if o.User.ID != 0 {
		out["buyer"] = User(o.User)
	}

	return out
}

// User transforms a user for API output. The password hash never leaves
// the model anyway, but the transformer keeps the surface explicit.
func User(u models.User) resource.Map {
	return resource.Map{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"full_name":  u.FullName(),
		"phone":      u.Phone,
		"role":       string(u.Role),
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}
