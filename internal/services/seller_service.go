// internal/services/seller_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

type SellerService struct {
	db *gorm.DB
}

type ApplySellerRequest struct {
	BusinessName         string `json:"business_name" validate:"required,max=255"`
	IdentificationNumber string `json:"inn_identification_number" validate:"required,max=50"`
	WebsiteURL           string `json:"website_url,omitempty" validate:"omitempty,url"`
	PhoneNumber          string `json:"phone_number" validate:"required,max=20"`
	BusinessDescription  string `json:"business_description" validate:"required"`

	BusinessAddress string `json:"business_address" validate:"required,max=255"`
	City            string `json:"city" validate:"required,max=100"`
	PostalCode      string `json:"postal_code" validate:"required,max=20"`

	BankName          string `json:"bank_name" validate:"required,max=255"`
	BankBicNumber     string `json:"bank_bic_number" validate:"required,max=9"`
	BankAccountNumber string `json:"bank_account_number" validate:"required,max=50"`
	BankRoutingNumber string `json:"bank_routing_number" validate:"required,max=50"`
}

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Desc         string          `json:"desc" validate:"required"`
	PriceCurrent decimal.Decimal `json:"price_current" validate:"required"`
	CategorySlug string          `json:"category_slug" validate:"required"`
	InStock      int             `json:"in_stock" validate:"gte=0"`
	Images       []string        `json:"images,omitempty" validate:"omitempty,max=3"`
}

type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Desc         string           `json:"desc,omitempty"`
	PriceCurrent *decimal.Decimal `json:"price_current,omitempty"`
	CategorySlug string           `json:"category_slug,omitempty"`
	InStock      *int             `json:"in_stock,omitempty" validate:"omitempty,gte=0"`
	Images       []string         `json:"images,omitempty" validate:"omitempty,max=3"`
}

func NewSellerService(db *gorm.DB) *SellerService {
	return &SellerService{db: db}
}

// Apply upserts the caller's seller profile and flips the account type.
// Approval stays with the back office: a resubmission never resets or
// grants is_approved.
func (s *SellerService) Apply(userID uuid.UUID, req *ApplySellerRequest) (*models.Seller, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}

	var seller models.Seller
	err := s.db.Where("user_id = ?", userID).First(&seller).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		slug, slugErr := uniqueSlug(s.db, "sellers", req.BusinessName)
		if slugErr != nil {
			return nil, slugErr
		}
		seller = models.Seller{UserID: userID, Slug: slug}
	}

	seller.BusinessName = req.BusinessName
	seller.IdentificationNumber = req.IdentificationNumber
	seller.WebsiteURL = req.WebsiteURL
	seller.PhoneNumber = req.PhoneNumber
	seller.BusinessDescription = req.BusinessDescription
	seller.BusinessAddress = req.BusinessAddress
	seller.City = req.City
	seller.PostalCode = req.PostalCode
	seller.BankName = req.BankName
	seller.BankBicNumber = req.BankBicNumber
	seller.BankAccountNumber = req.BankAccountNumber
	seller.BankRoutingNumber = req.BankRoutingNumber

	if err := s.db.Save(&seller).Error; err != nil {
		return nil, fmt.Errorf("failed to save seller profile: %w", err)
	}

	if user.AccountType != models.AccountTypeSeller {
		if err := s.db.Model(&user).Update("account_type", models.AccountTypeSeller).Error; err != nil {
			return nil, fmt.Errorf("failed to update account type: %w", err)
		}
	}

	return &seller, nil
}

// ApprovedSeller resolves the approved seller profile for a user, or
// ErrForbidden when the user has none.
func (s *SellerService) ApprovedSeller(userID uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	err := s.db.Where("user_id = ? AND is_approved = ?", userID, true).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no approved seller profile", ErrForbidden)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &seller, nil
}

func (s *SellerService) ListProducts(sellerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("Category").Preload("Seller").Preload("Seller.User").
		Where("seller_id = ?", sellerID).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *SellerService) CreateProduct(seller *models.Seller, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.Where("slug = ?", req.CategorySlug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	slug, err := uniqueSlug(s.db, "products", req.Name)
	if err != nil {
		return nil, err
	}

	inStock := req.InStock
	if inStock == 0 {
		inStock = 5 // default stock for new listings
	}

	product := &models.Product{
		SellerID:     &seller.ID,
		Name:         req.Name,
		Slug:         slug,
		Desc:         req.Desc,
		PriceCurrent: req.PriceCurrent,
		CategoryID:   category.ID,
		InStock:      inStock,
		Images:       req.Images,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.db.Preload("Category").Preload("Seller").Preload("Seller.User").First(product, "id = ?", product.ID)
	return product, nil
}

// ownedProduct fetches a product by slug and verifies seller ownership.
func (s *SellerService) ownedProduct(seller *models.Seller, slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Seller").Preload("Seller.User").
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if product.SellerID == nil || *product.SellerID != seller.ID {
		return nil, fmt.Errorf("%w: not the product owner", ErrForbidden)
	}
	return &product, nil
}

func (s *SellerService) GetProduct(seller *models.Seller, slug string) (*models.Product, error) {
	return s.ownedProduct(seller, slug)
}

// UpdateProduct applies the changed fields. When the price changes, the
// previous price_current is copied into price_old in the same update so
// storefronts can show the markdown.
func (s *SellerService) UpdateProduct(seller *models.Seller, slug string, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.ownedProduct(seller, slug)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Desc != "" {
		updates["desc"] = req.Desc
	}
	if req.PriceCurrent != nil && !req.PriceCurrent.Equal(product.PriceCurrent) {
		updates["price_old"] = product.PriceCurrent
		updates["price_current"] = *req.PriceCurrent
	}
	if req.CategorySlug != "" {
		var category models.Category
		if err := s.db.Where("slug = ?", req.CategorySlug).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category", ErrNotFound)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		updates["category_id"] = category.ID
	}
	if req.InStock != nil {
		updates["in_stock"] = *req.InStock
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Category").Preload("Seller").Preload("Seller.User").First(product, "id = ?", product.ID)
	return product, nil
}

// DeleteProduct tombstones the listing; the record stays for order
// history and audit.
func (s *SellerService) DeleteProduct(seller *models.Seller, slug string) error {
	product, err := s.ownedProduct(seller, slug)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// HardDeleteProduct permanently removes a product, tombstoned or not.
// Reserved for staff.
func (s *SellerService) HardDeleteProduct(slug string) error {
	var product models.Product
	err := s.db.Unscoped().Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Unscoped().Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to hard delete product: %w", err)
	}
	return nil
}

func (s *SellerService) SetProductImages(seller *models.Seller, slug string, urls []string) (*models.Product, error) {
	if len(urls) > 3 {
		urls = urls[:3] // only 3 images are allowed
	}
	return s.UpdateProduct(seller, slug, &UpdateProductRequest{Images: urls})
}
