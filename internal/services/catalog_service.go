// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Image string `json:"image,omitempty" validate:"omitempty,url"`
}

// Filter set matching the public product listing: price bounds, minimum
// stock and a created-after cutoff.
type ProductFilterParams struct {
	utils.PaginationParams
	MaxPrice     *decimal.Decimal
	MinPrice     *decimal.Decimal
	InStock      *int
	CreatedAfter *time.Time
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// uniqueSlug derives a slug from name and disambiguates collisions in
// table with a short random suffix. Slugs are stable once assigned; this
// only runs at creation time.
func uniqueSlug(db *gorm.DB, table, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "item"
	}
	slug := base
	for {
		var count int64
		if err := db.Table(table).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug uniqueness: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		suffix, err := utils.GenerateSlugSuffix()
		if err != nil {
			return "", err
		}
		slug = base + "-" + suffix
	}
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: category with this name already exists", ErrConflict)
	}

	slug, err := uniqueSlug(s.db, "categories", req.Name)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  req.Name,
		Slug:  slug,
		Image: req.Image,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CatalogService) ListProducts(params ProductFilterParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("Category").Preload("Seller").Preload("Seller.User")

	if params.MinPrice != nil {
		query = query.Where("price_current >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price_current <= ?", *params.MaxPrice)
	}
	if params.InStock != nil {
		query = query.Where("in_stock >= ?", *params.InStock)
	}
	if params.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *params.CreatedAfter)
	}
	if params.Search != "" {
		searchTerm := "%" + params.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(\"desc\") LIKE LOWER(?)", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price_current", "in_stock"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Seller").Preload("Seller.User").
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) ProductsByCategory(categorySlug string) ([]models.Product, error) {
	category, err := s.GetCategoryBySlug(categorySlug)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	err = s.db.Preload("Category").Preload("Seller").Preload("Seller.User").
		Where("category_id = ?", category.ID).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) ProductsBySeller(sellerSlug string) ([]models.Product, error) {
	var seller models.Seller
	if err := s.db.Where("slug = ?", sellerSlug).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var products []models.Product
	err := s.db.Preload("Category").Preload("Seller").Preload("Seller.User").
		Where("seller_id = ?", seller.ID).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seller products: %w", err)
	}
	return products, nil
}
