package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tanakrit/pawmart/app/authz"
	"github.com/tanakrit/pawmart/app/models"
	"github.com/tanakrit/pawmart/config"
	"github.com/tanakrit/pawmart/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

var dbSeq int64

// setupDB points the global connection at a fresh in-memory database.
// The DSN must be unique per test: pooled connections to a bare
// ":memory:" DSN would each open their own separate database.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Pet{},
		&models.Order{},
	))

	database.DB = db

	config.Set("SELLER_ORDER_SCOPE", "all")
	config.Set("ORDER_REOPEN_ROLE", "admin")
}

func mkUser(t *testing.T, username string, role models.Role) models.User {
	t.Helper()

	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func mkCategory(t *testing.T, name string) models.Category {
	t.Helper()

	c := models.Category{Name: name}
	require.NoError(t, database.DB.Create(&c).Error)
	return c
}

func mkPet(t *testing.T, seller models.User, qty, threshold int) models.Pet {
	t.Helper()

	cat := mkCategory(t, fmt.Sprintf("cat-%s-%d", seller.Username, qty))
	p := models.Pet{
		Name:              "Buddy",
		CategoryID:        cat.ID,
		Price:             100,
		Gender:            "male",
		IsAvailable:       true,
		StockQuantity:     qty,
		MinStockThreshold: threshold,
		CreatedByID:       seller.ID,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func asActor(u models.User) authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role}
}

func stockOf(t *testing.T, petID uint) int {
	t.Helper()

	var p models.Pet
	require.NoError(t, database.DB.First(&p, petID).Error)
	return p.StockQuantity
}
