package handler

import (
	"github.com/gin-gonic/gin"
	basketapp "github.com/teeforge/backend/internal/application/basket"
)

// BasketHandler exposes basket line items created by studio checkout
type BasketHandler struct {
	BaseHandler
	basket *basketapp.BasketService
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basket *basketapp.BasketService) *BasketHandler {
	return &BasketHandler{basket: basket}
}

// ListItems lists all basket entries
func (h *BasketHandler) ListItems(c *gin.Context) {
	items, err := h.basket.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetItem returns one basket entry
func (h *BasketHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid line item id")
		return
	}

	item, err := h.basket.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RemoveItem deletes a basket entry
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid line item id")
		return
	}

	if err := h.basket.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket")
	{
		basket.GET("/items", h.ListItems)
		basket.GET("/items/:id", h.GetItem)
		basket.DELETE("/items/:id", h.RemoveItem)
	}
}
