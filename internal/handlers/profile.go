// internal/handlers/profile.go
package handlers

import (
	"errors"

	"github.com/return0ok/e-market/internal/i18n"
	"github.com/return0ok/e-market/internal/services"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	orderService   *services.OrderService
}

func NewProfileHandler(profileService *services.ProfileService, orderService *services.OrderService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		orderService:   orderService,
	}
}

// GetProfile returns the caller's account.
// GET /api/v1/profiles/me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch profile")
		return
	}
	utils.SuccessResponse(c, user)
}

// UpdateProfile changes name and avatar. Email and account type are
// not editable here.
// PUT /api/v1/profiles/me
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	user, err := h.profileService.Update(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update profile")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProfileUpdated),
		"user":    user,
	})
}

// DeactivateProfile disables the account. Data stays; login stops
// working until reactivated by staff.
// DELETE /api/v1/profiles/me
func (h *ProfileHandler) DeactivateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.Deactivate(userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, "Failed to deactivate profile")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProfileDeactivated)})
}

// ListShippingAddresses returns the caller's address book.
// GET /api/v1/profiles/me/shipping
func (h *ProfileHandler) ListShippingAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.profileService.ListShippingAddresses(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch shipping addresses")
		return
	}
	utils.SuccessResponse(c, addresses)
}

// CreateShippingAddress is a get-or-create on the full field set, so a
// resubmitted identical address answers 200 with the existing row.
// POST /api/v1/profiles/me/shipping
func (h *ProfileHandler) CreateShippingAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	address, created, err := h.profileService.CreateShippingAddress(userID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to save shipping address")
		return
	}

	if created {
		utils.CreatedResponse(c, address)
		return
	}
	utils.SuccessResponse(c, address)
}

func shippingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid shipping address id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// GetShippingAddress returns one of the caller's addresses.
// GET /api/v1/profiles/me/shipping/:id
func (h *ProfileHandler) GetShippingAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shippingID, ok := shippingIDParam(c)
	if !ok {
		return
	}

	address, err := h.profileService.GetShippingAddress(userID, shippingID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "shipping")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch shipping address")
		return
	}
	utils.SuccessResponse(c, address)
}

// UpdateShippingAddress replaces one of the caller's addresses.
// PUT /api/v1/profiles/me/shipping/:id
func (h *ProfileHandler) UpdateShippingAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shippingID, ok := shippingIDParam(c)
	if !ok {
		return
	}

	var req services.ShippingAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	address, err := h.profileService.UpdateShippingAddress(userID, shippingID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "shipping")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update shipping address")
		return
	}
	utils.SuccessResponse(c, address)
}

// DeleteShippingAddress removes an address. Orders keep their snapshot.
// DELETE /api/v1/profiles/me/shipping/:id
func (h *ProfileHandler) DeleteShippingAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	shippingID, ok := shippingIDParam(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteShippingAddress(userID, shippingID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "shipping")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete shipping address")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyShippingDeleted)})
}

// ListOrders returns the caller's orders, newest first.
// GET /api/v1/profiles/me/orders
func (h *ProfileHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForBuyer(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}
	utils.SuccessResponse(c, orders)
}

// ListOrderItems returns the items of one of the caller's orders,
// looked up by transaction reference.
// GET /api/v1/profiles/me/orders/:tx_ref/items
func (h *ProfileHandler) ListOrderItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.orderService.ItemsForBuyer(userID, c.Param("tx_ref"))
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
