package seeders

import (
	"errors"

	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("categories", SeedCategories)
	Register("pets", SeedPets)
}

// SeedAdminUser creates the initial admin account if none exists.
// Change the password immediately after first login.
func SeedAdminUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := auth.HashPassword("admin12345")
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  "admin",
		Email:     "admin@pawmart.local",
		Password:  hashed,
		FirstName: "Store",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedCategories inserts the starter categories.
func SeedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Dogs", Description: "Puppies and adult dogs"},
		{Name: "Cats", Description: "Kittens and adult cats"},
		{Name: "Birds", Description: "Parrots, canaries, and finches"},
		{Name: "Fish", Description: "Freshwater and marine fish"},
		{Name: "Small Pets", Description: "Hamsters, rabbits, and guinea pigs"},
	}

	for _, c := range categories {
		var existing models.Category
		err := db.Where("name = ?", c.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedPets inserts a handful of demo listings owned by the admin.
func SeedPets(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Pet{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return err
	}

	var dogs, cats models.Category
	if err := db.Where("name = ?", "Dogs").First(&dogs).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Cats").First(&cats).Error; err != nil {
		return err
	}

	pets := []models.Pet{
		{
			Name:              "Golden Retriever Puppy",
			Description:       "Friendly and great with kids",
			CategoryID:        dogs.ID,
			Price:             450.00,
			Gender:            "male",
			IsAvailable:       true,
			StockQuantity:     3,
			MinStockThreshold: 2,
			CreatedByID:       admin.ID,
		},
		{
			Name:              "Siamese Kitten",
			Description:       "Blue-eyed and vocal",
			CategoryID:        cats.ID,
			Price:             250.00,
			Gender:            "female",
			IsAvailable:       true,
			StockQuantity:     5,
			MinStockThreshold: 2,
			CreatedByID:       admin.ID,
		},
		{
			Name:              "Beagle",
			Description:       "Energetic scent hound",
			CategoryID:        dogs.ID,
			Price:             380.00,
			Gender:            "male",
			IsAvailable:       true,
			StockQuantity:     1,
			MinStockThreshold: 2,
			CreatedByID:       admin.ID,
		},
	}

	for i := range pets {
		if err := db.Create(&pets[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
