// internal/database/connection_test.go
package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/return0ok/e-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))
	return db
}

func TestSeedInitialDataIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedInitialData(db))
	require.NoError(t, SeedInitialData(db))

	var staffCount int64
	require.NoError(t, db.Model(&models.User{}).Where("is_staff = ?", true).Count(&staffCount).Error)
	assert.EqualValues(t, 1, staffCount)

	var admin models.User
	require.NoError(t, db.Where("is_staff = ?", true).First(&admin).Error)
	assert.True(t, admin.IsActive)
	assert.NoError(t, admin.CheckPassword("admin123!@#"))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := openTestDB(t)

	boom := errors.New("boom")
	err := WithTransaction(db, func(tx *gorm.DB) error {
		user := &models.User{
			FirstName:   "Ghost",
			LastName:    "User",
			Email:       "ghost@example.com",
			AccountType: models.AccountTypeBuyer,
			IsActive:    true,
		}
		if err := user.SetPassword("password123"); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestPendingCartUniqueIndex(t *testing.T) {
	db := openTestDB(t)

	user := &models.User{
		FirstName:   "Test",
		LastName:    "User",
		Email:       "buyer@example.com",
		AccountType: models.AccountTypeBuyer,
		IsActive:    true,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)

	category := &models.Category{Name: "books", Slug: "books"}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{
		Name:       "kettle",
		Slug:       "kettle",
		Desc:       "test",
		CategoryID: category.ID,
		InStock:    5,
	}
	require.NoError(t, db.Create(product).Error)

	first := &models.OrderItem{UserID: user.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, db.Create(first).Error)

	// A second pending row for the same (user, product) violates the
	// partial unique index.
	dup := &models.OrderItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	assert.Error(t, db.Create(dup).Error)

	// Finalized history rows are outside the index scope.
	order := &models.Order{
		UserID:         user.ID,
		TxRef:          "AAAABBBBCCCC",
		DeliveryStatus: models.DeliveryStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		FullName:       "x", Email: "x", Phone: "x", Address: "x", City: "x", Country: "x", Zipcode: "x",
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Model(first).Update("order_id", order.ID).Error)

	again := &models.OrderItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}
	assert.NoError(t, db.Create(again).Error)
}
