// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// POST /carts
func (h *CartHandler) CreateCart(c *gin.Context) {
	cart, err := h.cartService.CreateCart(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, newCartResponse(cart))
}

// GET /carts/:id
func (h *CartHandler) GetCart(c *gin.Context) {
	id, ok := pathCartID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, newCartResponse(cart))
}

// DELETE /carts/:id
func (h *CartHandler) DeleteCart(c *gin.Context) {
	id, ok := pathCartID(c)
	if !ok {
		return
	}

	if err := h.cartService.DeleteCart(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
