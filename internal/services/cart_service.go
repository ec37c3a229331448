// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type ToggleCartItemRequest struct {
	Slug     string `json:"slug" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// ToggleStatus reports which of create/update/delete the toggle ended up
// performing.
type ToggleStatus string

const (
	ToggleCreated ToggleStatus = "created"
	ToggleUpdated ToggleStatus = "updated"
	ToggleRemoved ToggleStatus = "removed"
)

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// pendingItemLookup selects the single pending row for (user, product)
// under a row lock, so concurrent toggles serialize on it. SQLite drops
// the locking clause; its single-writer model covers the same ground.
func pendingItemLookup(tx *gorm.DB, userID, productID uuid.UUID) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND product_id = ? AND order_id IS NULL", userID, productID)
}

// List returns the user's pending line items with product and seller
// display data resolved.
func (s *CartService) List(userID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.Preload("Product").Preload("Product.Seller").Preload("Product.Seller.User").
		Where("user_id = ? AND order_id IS NULL", userID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	return items, nil
}

// Toggle upserts the single pending line item for (user, product).
// Quantity > 0 creates or overwrites the item; quantity 0 removes it,
// and removing a non-existent item is a no-op that still reports
// ToggleRemoved. The find-or-create/update-or-delete sequence runs in
// one transaction with a locked lookup so two concurrent toggles cannot
// produce duplicate pending rows.
func (s *CartService) Toggle(userID uuid.UUID, req *ToggleCartItemRequest) (ToggleStatus, *models.OrderItem, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	err := s.db.Preload("Seller").Preload("Seller.User").Preload("Category").
		Where("slug = ?", req.Slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: no product with that slug", ErrNotFound)
		}
		return "", nil, fmt.Errorf("database error: %w", err)
	}

	var status ToggleStatus
	var item models.OrderItem

	err = s.db.Transaction(func(tx *gorm.DB) error {
		findErr := pendingItemLookup(tx, userID, product.ID).First(&item).Error

		switch {
		case findErr == nil:
			if req.Quantity == 0 {
				status = ToggleRemoved
				return tx.Delete(&item).Error
			}
			status = ToggleUpdated
			return tx.Model(&item).Update("quantity", req.Quantity).Error

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if req.Quantity == 0 {
				// Nothing to remove; still a removal from the caller's view.
				status = ToggleRemoved
				return nil
			}
			status = ToggleCreated
			item = models.OrderItem{
				UserID:    userID,
				ProductID: product.ID,
				Quantity:  req.Quantity,
			}
			return tx.Create(&item).Error

		default:
			return fmt.Errorf("database error: %w", findErr)
		}
	})
	if err != nil {
		return "", nil, err
	}

	if status == ToggleRemoved {
		return status, nil, nil
	}

	item.Product = product
	return status, &item, nil
}
