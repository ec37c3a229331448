// internal/services/checkout_service_test.go
package services

import (
	"testing"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckoutService(db)

	user := createTestUser(t, db, "buyer@example.com")
	shipping := createTestShipping(t, db, user)

	_, err := svc.Checkout(user.ID, &CheckoutRequest{ShippingID: shipping.ID})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// No order row may survive the failed checkout.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCheckoutForeignShippingAddress(t *testing.T) {
	db := setupTestDB(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db)

	buyer := createTestUser(t, db, "buyer@example.com")
	other := createTestUser(t, db, "other@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")

	_, _, err := cart.Toggle(buyer.ID, &ToggleCartItemRequest{Slug: product.Slug, Quantity: 1})
	require.NoError(t, err)

	foreign := createTestShipping(t, db, other)

	_, err = svc.Checkout(buyer.ID, &CheckoutRequest{ShippingID: foreign.ID})
	assert.ErrorIs(t, err, ErrInvalidShipping)

	// Cart stays intact on failure.
	items, err := cart.List(buyer.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutDrainsCartAndComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	first := createTestProduct(t, db, seller, category, "first", "10.00")
	second := createTestProduct(t, db, seller, category, "second", "5.00")
	shipping := createTestShipping(t, db, user)

	_, _, err := cart.Toggle(user.ID, &ToggleCartItemRequest{Slug: first.Slug, Quantity: 2})
	require.NoError(t, err)
	_, _, err = cart.Toggle(user.ID, &ToggleCartItemRequest{Slug: second.Slug, Quantity: 1})
	require.NoError(t, err)

	order, err := svc.Checkout(user.ID, &CheckoutRequest{ShippingID: shipping.ID})
	require.NoError(t, err)

	assert.Len(t, order.TxRef, utils.TxRefLength)
	assert.Equal(t, models.DeliveryStatusPending, order.DeliveryStatus)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.OrderItems, 2)

	// 2 x 10.00 + 1 x 5.00
	assert.True(t, order.Subtotal.Equal(mustDecimal(t, "25.00")), "subtotal %s", order.Subtotal)
	assert.True(t, order.Total.Equal(order.Subtotal))

	// Shipping snapshot copied by value.
	assert.Equal(t, shipping.FullName, order.FullName)
	assert.Equal(t, shipping.Address, order.Address)
	assert.Equal(t, shipping.Zipcode, order.Zipcode)

	// Cart is drained.
	items, err := cart.List(user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCheckoutRetriesOnTxRefCollision(t *testing.T) {
	db := setupTestDB(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")
	shipping := createTestShipping(t, db, user)

	taken := "AAAABBBBCCCC"
	require.NoError(t, db.Create(&models.Order{
		UserID:         user.ID,
		TxRef:          taken,
		DeliveryStatus: models.DeliveryStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		FullName:       "x", Email: "x", Phone: "x", Address: "x", City: "x", Country: "x", Zipcode: "x",
	}).Error)

	// First draw collides with the existing order, second succeeds.
	draws := []string{taken, "DDDDEEEEFFFF"}
	svc.genTxRef = func() (string, error) {
		next := draws[0]
		if len(draws) > 1 {
			draws = draws[1:]
		}
		return next, nil
	}

	_, _, err := cart.Toggle(user.ID, &ToggleCartItemRequest{Slug: product.Slug, Quantity: 1})
	require.NoError(t, err)

	order, err := svc.Checkout(user.ID, &CheckoutRequest{ShippingID: shipping.ID})
	require.NoError(t, err)
	assert.Equal(t, "DDDDEEEEFFFF", order.TxRef)
}

func TestCheckoutGivesUpAfterBoundedAttempts(t *testing.T) {
	db := setupTestDB(t)
	cart := NewCartService(db)
	svc := NewCheckoutService(db)

	user := createTestUser(t, db, "buyer@example.com")
	seller := createTestSeller(t, db, "seller@example.com")
	category := createTestCategory(t, db, "books")
	product := createTestProduct(t, db, seller, category, "go-in-action", "10.00")
	shipping := createTestShipping(t, db, user)

	taken := "AAAABBBBCCCC"
	require.NoError(t, db.Create(&models.Order{
		UserID:         user.ID,
		TxRef:          taken,
		DeliveryStatus: models.DeliveryStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		FullName:       "x", Email: "x", Phone: "x", Address: "x", City: "x", Country: "x", Zipcode: "x",
	}).Error)

	calls := 0
	svc.genTxRef = func() (string, error) {
		calls++
		return taken, nil
	}

	_, _, err := cart.Toggle(user.ID, &ToggleCartItemRequest{Slug: product.Slug, Quantity: 1})
	require.NoError(t, err)

	_, err = svc.Checkout(user.ID, &CheckoutRequest{ShippingID: shipping.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")
	assert.Equal(t, maxTxRefAttempts, calls)

	// The failed transaction rolled back: cart untouched, one order total.
	items, err := cart.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
