// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
)

// OrderService is the read-only surface over completed orders, scoped by
// buyer or by seller through the product-ownership join.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

func (s *OrderService) preloadItems(q *gorm.DB) *gorm.DB {
	return q.Preload("OrderItems").Preload("OrderItems.Product").
		Preload("OrderItems.Product.Seller").Preload("OrderItems.Product.Seller.User").
		Preload("OrderItems.Product.Category").
		Preload("User")
}

// ListForBuyer returns the user's orders, newest first, with items and
// products resolved in one pass.
func (s *OrderService) ListForBuyer(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.preloadItems(s.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	for i := range orders {
		orders[i].ComputeTotals()
	}
	return orders, nil
}

// ListForSeller returns orders containing at least one of the seller's
// products, once each, newest first.
func (s *OrderService) ListForSeller(sellerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.preloadItems(s.db).
		Where("orders.id IN (?)", s.db.Model(&models.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.seller_id = ? AND order_items.order_id IS NOT NULL", sellerID)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller orders: %w", err)
	}

	for i := range orders {
		orders[i].ComputeTotals()
	}
	return orders, nil
}

func (s *OrderService) orderByTxRef(txRef string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("tx_ref = ?", txRef).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ItemsForBuyer returns the items of the buyer's own order. A missing
// order and someone else's order produce the same NotFound.
func (s *OrderService) ItemsForBuyer(userID uuid.UUID, txRef string) ([]models.OrderItem, error) {
	order, err := s.orderByTxRef(txRef)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}

	var items []models.OrderItem
	err = s.db.Preload("Product").Preload("Product.Seller").Preload("Product.Seller.User").
		Preload("Product.Category").
		Where("order_id = ?", order.ID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	return items, nil
}

// ItemsForSeller returns only the seller's own products within the
// order. A seller with no item in the order gets NotFound, not an empty
// list, so foreign orders stay invisible.
func (s *OrderService) ItemsForSeller(sellerID uuid.UUID, txRef string) ([]models.OrderItem, error) {
	order, err := s.orderByTxRef(txRef)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	err = s.db.Preload("Product").Preload("Product.Seller").Preload("Product.Seller.User").
		Preload("Product.Category").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.seller_id = ?", order.ID, sellerID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return items, nil
}
