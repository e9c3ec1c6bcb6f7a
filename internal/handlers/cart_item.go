// internal/handlers/cart_item.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

type CartItemHandler struct {
	cartService *services.CartService
}

func NewCartItemHandler(cartService *services.CartService) *CartItemHandler {
	return &CartItemHandler{cartService: cartService}
}

// GET /carts/:id/items
func (h *CartItemHandler) GetItems(c *gin.Context) {
	cartID, ok := pathCartID(c)
	if !ok {
		return
	}

	items, err := h.cartService.ListItems(c.Request.Context(), cartID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]interface{}, 0, len(items))
	for i := range items {
		response = append(response, serializeCartItem(cartItemRead, &items[i]))
	}
	utils.SuccessResponse(c, response)
}

// POST /carts/:id/items
func (h *CartItemHandler) AddItem(c *gin.Context) {
	cartID, ok := pathCartID(c)
	if !ok {
		return
	}

	var req services.AddCartItemRequest
	if !bindRequest(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), cartID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, serializeCartItem(cartItemAdd, item))
}

// GET /carts/:id/items/:item_id
func (h *CartItemHandler) GetItem(c *gin.Context) {
	cartID, itemID, ok := cartItemPath(c)
	if !ok {
		return
	}

	item, err := h.cartService.GetItem(c.Request.Context(), cartID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, serializeCartItem(cartItemRead, item))
}

// PATCH /carts/:id/items/:item_id
func (h *CartItemHandler) UpdateItem(c *gin.Context) {
	cartID, itemID, ok := cartItemPath(c)
	if !ok {
		return
	}

	var req services.UpdateCartItemRequest
	if !bindRequest(c, &req) {
		return
	}

	item, err := h.cartService.UpdateItem(c.Request.Context(), cartID, itemID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, serializeCartItem(cartItemUpdate, item))
}

// DELETE /carts/:id/items/:item_id
func (h *CartItemHandler) DeleteItem(c *gin.Context) {
	cartID, itemID, ok := cartItemPath(c)
	if !ok {
		return
	}

	if err := h.cartService.DeleteItem(c.Request.Context(), cartID, itemID); err != nil {
		respondError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

func cartItemPath(c *gin.Context) (uuid.UUID, uint, bool) {
	cartID, ok := pathCartID(c)
	if !ok {
		return uuid.Nil, 0, false
	}
	itemID, ok := pathID(c, "item_id", services.ResourceCartItem)
	if !ok {
		return uuid.Nil, 0, false
	}
	return cartID, itemID, true
}
