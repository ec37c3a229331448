// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

// The original reference generator recursed on collision with no bound;
// a pathological collision rate would exhaust the stack. Capped here.
const maxTxRefAttempts = 10

type CheckoutService struct {
	db *gorm.DB

	// Injectable for tests that need to force tx_ref collisions.
	genTxRef func() (string, error)
}

type CheckoutRequest struct {
	ShippingID uuid.UUID `json:"shipping_id" validate:"required"`
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{
		db:       db,
		genTxRef: utils.GenerateTxRef,
	}
}

// Checkout converts the user's pending cart into an order.
//
// Preconditions, first failure wins: the cart must be non-empty, and the
// shipping address must exist and belong to the user. The order creation
// and the reassignment of every pending item run in one transaction; a
// concurrent reader sees either the full cart or the full order, never a
// mix. The seven shipping fields are copied by value onto the order so
// address-book edits never rewrite history.
func (s *CheckoutService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var pendingCount int64
	if err := s.db.Model(&models.OrderItem{}).
		Where("user_id = ? AND order_id IS NULL", userID).
		Count(&pendingCount).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if pendingCount == 0 {
		return nil, ErrEmptyCart
	}

	var shipping models.ShippingAddress
	err := s.db.Where("id = ? AND user_id = ?", req.ShippingID, userID).First(&shipping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidShipping
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	order := &models.Order{
		UserID:         userID,
		DeliveryStatus: models.DeliveryStatusPending,
		PaymentStatus:  models.PaymentStatusPending,

		FullName: shipping.FullName,
		Email:    shipping.Email,
		Phone:    shipping.Phone,
		Address:  shipping.Address,
		City:     shipping.City,
		Country:  shipping.Country,
		Zipcode:  shipping.Zipcode,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRef, err := s.newUniqueTxRef(tx)
		if err != nil {
			return err
		}
		order.TxRef = txRef

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Drain the cart: every pending item becomes order history.
		result := tx.Model(&models.OrderItem{}).
			Where("user_id = ? AND order_id IS NULL", userID).
			Update("order_id", order.ID)
		if result.Error != nil {
			return fmt.Errorf("failed to attach cart items: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// Cart was drained under us by a concurrent checkout.
			return ErrEmptyCart
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

// newUniqueTxRef draws candidates until one is unused, with a hard cap.
func (s *CheckoutService) newUniqueTxRef(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxTxRefAttempts; attempt++ {
		candidate, err := s.genTxRef()
		if err != nil {
			return "", fmt.Errorf("failed to generate tx_ref: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Order{}).Where("tx_ref = ?", candidate).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check tx_ref uniqueness: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique tx_ref", maxTxRefAttempts)
}

func (s *CheckoutService) loadOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderItems").Preload("OrderItems.Product").
		Preload("OrderItems.Product.Seller").Preload("OrderItems.Product.Seller.User").
		Preload("User").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	order.ComputeTotals()
	return &order, nil
}
