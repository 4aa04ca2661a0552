package handler

import (
	"github.com/gin-gonic/gin"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/interfaces/http/dto"
)

// StudioHandler exposes the design editor API: sessions, element
// operations, undo/redo and checkout.
type StudioHandler struct {
	BaseHandler
	editor   *studioapp.EditorService
	checkout *studioapp.CheckoutService
}

// NewStudioHandler creates a new StudioHandler
func NewStudioHandler(editor *studioapp.EditorService, checkout *studioapp.CheckoutService) *StudioHandler {
	return &StudioHandler{
		editor:   editor,
		checkout: checkout,
	}
}

// CreateSession opens a new design session
func (h *StudioHandler) CreateSession(c *gin.Context) {
	var req studioapp.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.CreateSession(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, state)
}

// GetSession returns the current editor state
func (h *StudioHandler) GetSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	state, err := h.editor.GetState(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// GetQuote returns the current price breakdown for a session
func (h *StudioHandler) GetQuote(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	state, err := h.editor.GetState(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state.Quote)
}

// CloseSession tears a session down and discards its in-flight work
func (h *StudioHandler) CloseSession(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	if err := h.editor.CloseSession(c.Request.Context(), sessionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddText places a new text element
func (h *StudioHandler) AddText(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	var req studioapp.AddTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.AddText(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, state)
}

// AddImage places a new image element
func (h *StudioHandler) AddImage(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	var req studioapp.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.AddImage(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, state)
}

// UpdateElement partially updates an element
func (h *StudioHandler) UpdateElement(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	elementID, ok := parseIDParam(c, "elementId")
	if !ok {
		h.BadRequest(c, "Invalid element id")
		return
	}
	var req studioapp.UpdateElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.UpdateElement(c.Request.Context(), sessionID, elementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// RemoveElement deletes an element from the scene
func (h *StudioHandler) RemoveElement(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	elementID, ok := parseIDParam(c, "elementId")
	if !ok {
		h.BadRequest(c, "Invalid element id")
		return
	}

	state, err := h.editor.RemoveElement(c.Request.Context(), sessionID, elementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ReorderElement moves an element in the z-order
func (h *StudioHandler) ReorderElement(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	elementID, ok := parseIDParam(c, "elementId")
	if !ok {
		h.BadRequest(c, "Invalid element id")
		return
	}
	var req studioapp.ReorderElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.ReorderElement(c.Request.Context(), sessionID, elementID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// SetProduct switches the base garment of the session
func (h *StudioHandler) SetProduct(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	var req studioapp.ProductDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	state, err := h.editor.SetProduct(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Undo steps the session back one snapshot
func (h *StudioHandler) Undo(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	state, err := h.editor.Undo(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Redo steps the session forward one snapshot
func (h *StudioHandler) Redo(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	state, err := h.editor.Redo(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Reset clears the canvas and drops all history
func (h *StudioHandler) Reset(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}

	state, err := h.editor.Reset(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// Checkout finalizes the design into a basket line item
func (h *StudioHandler) Checkout(c *gin.Context) {
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid session id")
		return
	}
	var req studioapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	resp, err := h.checkout.Finalize(c.Request.Context(), sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// RegisterRoutes registers studio editor routes
func (h *StudioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/studio/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.GET("/:id", h.GetSession)
		sessions.GET("/:id/quote", h.GetQuote)
		sessions.DELETE("/:id", h.CloseSession)

		sessions.POST("/:id/elements/text", h.AddText)
		sessions.POST("/:id/elements/image", h.AddImage)
		sessions.PATCH("/:id/elements/:elementId", h.UpdateElement)
		sessions.DELETE("/:id/elements/:elementId", h.RemoveElement)
		sessions.POST("/:id/elements/:elementId/reorder", h.ReorderElement)

		sessions.PUT("/:id/product", h.SetProduct)
		sessions.POST("/:id/undo", h.Undo)
		sessions.POST("/:id/redo", h.Redo)
		sessions.POST("/:id/reset", h.Reset)

		sessions.POST("/:id/checkout", h.Checkout)
	}
}
