// internal/handlers/shop.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/return0ok/e-market/internal/i18n"
	"github.com/return0ok/e-market/internal/services"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShopHandler struct {
	catalogService *services.CatalogService
	reviewService  *services.ReviewService
}

func NewShopHandler(catalogService *services.CatalogService, reviewService *services.ReviewService) *ShopHandler {
	return &ShopHandler{
		catalogService: catalogService,
		reviewService:  reviewService,
	}
}

// ListCategories returns all categories.
// GET /api/v1/shop/categories
func (h *ShopHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch categories")
		return
	}
	utils.SuccessResponse(c, categories)
}

// CreateCategory adds a category. Staff only.
// POST /api/v1/shop/categories
func (h *ShopHandler) CreateCategory(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryExists))
			return
		}
		utils.InternalErrorResponse(c, "Failed to create category")
		return
	}

	utils.CreatedResponse(c, category)
}

// parseProductFilters reads the listing query params. An inverted price
// window (max below min) is rejected outright rather than returning an
// empty list, since it always means a client bug. An exact window where
// the two are equal is a legitimate price-point query.
func parseProductFilters(c *gin.Context) (services.ProductFilterParams, bool) {
	params := services.ProductFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid max_price", nil)
			return params, false
		}
		params.MaxPrice = &d
	}

	if raw := c.Query("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid min_price", nil)
			return params, false
		}
		params.MinPrice = &d
	}

	if params.MaxPrice != nil && params.MinPrice != nil && params.MaxPrice.LessThan(*params.MinPrice) {
		utils.BadRequestResponse(c, "max_price must not be less than min_price", nil)
		return params, false
	}

	if raw := c.Query("in_stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.BadRequestResponse(c, "Invalid in_stock", nil)
			return params, false
		}
		params.InStock = &n
	}

	if raw := c.Query("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// Date-only form is accepted too.
			t, err = time.Parse("2006-01-02", raw)
			if err != nil {
				utils.BadRequestResponse(c, "Invalid created_after, expected RFC3339 or YYYY-MM-DD", nil)
				return params, false
			}
		}
		params.CreatedAfter = &t
	}

	return params, true
}

// ListProducts is the public product listing with filters and search.
// GET /api/v1/shop/products
func (h *ShopHandler) ListProducts(c *gin.Context) {
	params, ok := parseProductFilters(c)
	if !ok {
		return
	}

	products, total, err := h.catalogService.ListProducts(params)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GetProduct returns one product by slug, with category and seller.
// GET /api/v1/shop/products/:slug
func (h *ShopHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch product")
		return
	}
	utils.SuccessResponse(c, product)
}

// ProductsByCategory lists products belonging to a category slug.
// GET /api/v1/shop/categories/:slug/products
func (h *ShopHandler) ProductsByCategory(c *gin.Context) {
	products, err := h.catalogService.ProductsByCategory(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	utils.SuccessResponse(c, products)
}

// ProductsBySeller lists products of an approved seller by slug.
// GET /api/v1/shop/sellers/:slug/products
func (h *ShopHandler) ProductsBySeller(c *gin.Context) {
	products, err := h.catalogService.ProductsBySeller(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "seller")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	utils.SuccessResponse(c, products)
}

// ListReviews returns all reviews of a product.
// GET /api/v1/shop/products/:slug/reviews
func (h *ShopHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListForProduct(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch reviews")
		return
	}
	utils.SuccessResponse(c, reviews)
}

// CreateReview adds the caller's review of a product. One per user.
// POST /api/v1/shop/products/:slug/reviews
func (h *ShopHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	review, err := h.reviewService.Create(userID, c.Param("slug"), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrConflict):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReviewExists))
		default:
			utils.InternalErrorResponse(c, "Failed to create review")
		}
		return
	}

	utils.CreatedResponse(c, review)
}

// GetOwnReview returns the caller's review of a product.
// GET /api/v1/shop/products/:slug/reviews/me
func (h *ShopHandler) GetOwnReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetOwn(userID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch review")
		return
	}
	utils.SuccessResponse(c, review)
}

// UpdateOwnReview replaces the caller's review of a product.
// PUT /api/v1/shop/products/:slug/reviews/me
func (h *ShopHandler) UpdateOwnReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	review, err := h.reviewService.Update(userID, c.Param("slug"), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update review")
		return
	}
	utils.SuccessResponse(c, review)
}

// DeleteOwnReview removes the caller's review of a product.
// DELETE /api/v1/shop/products/:slug/reviews/me
func (h *ShopHandler) DeleteOwnReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(userID, c.Param("slug")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete review")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyReviewDeleted)})
}

// currentUserID reads the authenticated user's id from the context.
// Auth middleware guarantees presence on protected routes; the parse
// guard covers misuse.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}
