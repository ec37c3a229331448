// internal/handlers/seller.go
package handlers

import (
	"errors"

	"github.com/return0ok/e-market/internal/i18n"
	"github.com/return0ok/e-market/internal/models"
	"github.com/return0ok/e-market/internal/services"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	sellerService  *services.SellerService
	orderService   *services.OrderService
	storageService *services.StorageService
}

func NewSellerHandler(sellerService *services.SellerService, orderService *services.OrderService, storageService *services.StorageService) *SellerHandler {
	return &SellerHandler{
		sellerService:  sellerService,
		orderService:   orderService,
		storageService: storageService,
	}
}

// Apply submits or resubmits the caller's seller application. The
// account type flips to SELLER immediately; approval stays with staff.
// POST /api/v1/sellers/apply
func (h *SellerHandler) Apply(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ApplySellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	seller, err := h.sellerService.Apply(userID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to submit seller application")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySellerApplied),
		"seller":  seller,
	})
}

// approvedSeller resolves the caller to an approved seller profile or
// writes the error response itself.
func (h *SellerHandler) approvedSeller(c *gin.Context) (*models.Seller, bool) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	seller, err := h.sellerService.ApprovedSeller(userID)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			return nil, false
		}
		utils.InternalErrorResponse(c, "Failed to resolve seller profile")
		return nil, false
	}
	return seller, true
}

// ListProducts returns the caller's own products, soft-deleted ones
// excluded.
// GET /api/v1/sellers/me/products
func (h *SellerHandler) ListProducts(c *gin.Context) {
	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	products, err := h.sellerService.ListProducts(seller.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	utils.SuccessResponse(c, products)
}

// CreateProduct adds a product under the caller's shop.
// POST /api/v1/sellers/me/products
func (h *SellerHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	product, err := h.sellerService.CreateProduct(seller, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "Failed to create product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// GetProduct returns one of the caller's products by slug.
// GET /api/v1/sellers/me/products/:slug
func (h *SellerHandler) GetProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	product, err := h.sellerService.GetProduct(seller, c.Param("slug"))
	if err != nil {
		h.ownedProductError(c, lang, err)
		return
	}
	utils.SuccessResponse(c, product)
}

func (h *SellerHandler) ownedProductError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
	default:
		utils.InternalErrorResponse(c, "Failed to load product")
	}
}

// UpdateProduct partially updates one of the caller's products. A
// price change archives the previous price.
// PUT /api/v1/sellers/me/products/:slug
func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	product, err := h.sellerService.UpdateProduct(seller, c.Param("slug"), &req)
	if err != nil {
		h.ownedProductError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DeleteProduct soft-deletes one of the caller's products. It drops
// out of listings but stays referenced by past orders.
// DELETE /api/v1/sellers/me/products/:slug
func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	if err := h.sellerService.DeleteProduct(seller, c.Param("slug")); err != nil {
		h.ownedProductError(c, lang, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}

// UploadProductImages accepts up to three image files and replaces the
// product's image set with the uploaded URLs.
// POST /api/v1/sellers/me/products/:slug/images
func (h *SellerHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No image files provided", nil)
		return
	}
	if len(files) > 3 {
		utils.BadRequestResponse(c, "At most 3 images per product", nil)
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}

		result, err := h.storageService.UploadImage(file, header, services.ImageUploadOptions("products"))
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		urls = append(urls, result.URL)
	}

	product, err := h.sellerService.SetProductImages(seller, c.Param("slug"), urls)
	if err != nil {
		h.ownedProductError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// ListOrders returns orders containing at least one of the caller's
// products.
// GET /api/v1/sellers/me/orders
func (h *SellerHandler) ListOrders(c *gin.Context) {
	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForSeller(seller.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}
	utils.SuccessResponse(c, orders)
}

// ListOrderItems returns only the caller's items within an order
// looked up by transaction reference.
// GET /api/v1/sellers/me/orders/:tx_ref/items
func (h *SellerHandler) ListOrderItems(c *gin.Context) {
	seller, ok := h.approvedSeller(c)
	if !ok {
		return
	}

	items, err := h.orderService.ItemsForSeller(seller.ID, c.Param("tx_ref"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "order")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch order items")
		return
	}
	utils.SuccessResponse(c, items)
}

// HardDeleteProduct permanently removes a product. Staff only.
// DELETE /api/v1/admin/products/:slug
func (h *SellerHandler) HardDeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.sellerService.HardDeleteProduct(c.Param("slug")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete product")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}
