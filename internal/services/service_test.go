// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/return0ok/e-market/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test and migrates
// the full schema. The named shared-cache DSN keeps the database alive
// across the connections gorm pools.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Seller{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.ShippingAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:   "Test",
		LastName:    "User",
		Email:       email,
		AccountType: models.AccountTypeBuyer,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestSeller(t *testing.T, db *gorm.DB, email string) *models.Seller {
	t.Helper()

	user := createTestUser(t, db, email)
	user.AccountType = models.AccountTypeSeller
	require.NoError(t, db.Save(user).Error)

	seller := &models.Seller{
		UserID:       user.ID,
		BusinessName: "Shop of " + email,
		Slug:         "shop-" + user.ID.String()[:8],
		IsApproved:   true,
	}
	require.NoError(t, db.Create(seller).Error)
	seller.User = *user
	return seller
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: name + "-slug"}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, seller *models.Seller, category *models.Category, name string, price string) *models.Product {
	t.Helper()

	d, err := decimal.NewFromString(price)
	require.NoError(t, err)

	product := &models.Product{
		SellerID:     &seller.ID,
		Name:         name,
		Slug:         name + "-slug",
		Desc:         "description of " + name,
		PriceCurrent: d,
		CategoryID:   category.ID,
		InStock:      5,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func createTestShipping(t *testing.T, db *gorm.DB, user *models.User) *models.ShippingAddress {
	t.Helper()

	address := &models.ShippingAddress{
		UserID:   user.ID,
		FullName: "Test User",
		Email:    "ship@example.com",
		Phone:    "+100000000",
		Address:  "1 Test Street",
		City:     "Testville",
		Country:  "Testland",
		Zipcode:  "12345",
	}
	require.NoError(t, db.Create(address).Error)
	return address
}
