// internal/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/return0ok/e-market/internal/i18n"
	"github.com/return0ok/e-market/internal/services"
	"github.com/return0ok/e-market/internal/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService     *services.CartService
	checkoutService *services.CheckoutService
}

func NewCartHandler(cartService *services.CartService, checkoutService *services.CheckoutService) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// ListCart returns the caller's pending cart items.
// GET /api/v1/shop/cart
func (h *CartHandler) ListCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.cartService.List(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch cart")
		return
	}
	utils.SuccessResponse(c, items)
}

// ToggleCartItem adds, requantifies or removes one cart line. The
// request carries the product slug and an absolute quantity; zero
// removes the line. Created lines answer 201, everything else 200.
// POST /api/v1/shop/cart
func (h *CartHandler) ToggleCartItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ToggleCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	status, item, err := h.cartService.Toggle(userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update cart")
		return
	}

	var messageKey string
	statusCode := http.StatusOK
	switch status {
	case services.ToggleCreated:
		messageKey = i18n.KeyCartItemAdded
		statusCode = http.StatusCreated
	case services.ToggleUpdated:
		messageKey = i18n.KeyCartItemUpdated
	case services.ToggleRemoved:
		messageKey = i18n.KeyCartItemRemoved
	}

	c.JSON(statusCode, utils.APIResponse{
		Success: true,
		Data: gin.H{
			"status":  status,
			"message": i18n.T(lang, messageKey),
			"item":    item,
		},
	})
}

// Checkout turns the cart into an order against one of the caller's
// shipping addresses. An empty cart or foreign shipping id is a 404,
// matching the lookup semantics of both resources.
// POST /api/v1/shop/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request format", err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	order, err := h.checkoutService.Checkout(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.ErrorResponse(c, http.StatusNotFound, "CART_EMPTY", i18n.T(lang, i18n.KeyCartEmpty), nil)
		case errors.Is(err, services.ErrInvalidShipping):
			utils.ErrorResponse(c, http.StatusNotFound, "SHIPPING_NOT_FOUND", i18n.T(lang, i18n.KeyShippingNotFound), nil)
		default:
			utils.InternalErrorResponse(c, "Failed to place order")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCheckoutSuccess),
		"order":   order,
	})
}
