// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type ReviewRequest struct {
	Rating int    `json:"rating" validate:"gte=0,lte=5"`
	Text   string `json:"text" validate:"required"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) productBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ReviewService) ListForProduct(productSlug string) ([]models.Review, error) {
	product, err := s.productBySlug(productSlug)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	err = s.db.Preload("User").Where("product_id = ?", product.ID).Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

// Create adds the user's review for a product. A second review for the
// same product is rejected; use Update instead.
func (s *ReviewService) Create(userID uuid.UUID, productSlug string, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.productBySlug(productSlug)
	if err != nil {
		return nil, err
	}

	var existing models.Review
	err = s.db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: this product already has your review", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: product.ID,
		Rating:    req.Rating,
		Text:      req.Text,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) getOwn(userID uuid.UUID, productSlug string) (*models.Review, error) {
	product, err := s.productBySlug(productSlug)
	if err != nil {
		return nil, err
	}

	var review models.Review
	err = s.db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: review", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) GetOwn(userID uuid.UUID, productSlug string) (*models.Review, error) {
	return s.getOwn(userID, productSlug)
}

func (s *ReviewService) Update(userID uuid.UUID, productSlug string, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	review, err := s.getOwn(userID, productSlug)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Text = req.Text
	if err := s.db.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(userID uuid.UUID, productSlug string) error {
	review, err := s.getOwn(userID, productSlug)
	if err != nil {
		return err
	}
	if err := s.db.Delete(review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
