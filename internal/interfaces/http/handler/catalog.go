package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/domain/studio"
)

// CatalogHandler exposes design assets: color swatches and template logos
type CatalogHandler struct {
	BaseHandler
	catalog *studioapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *studioapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListSwatches lists garment colors, optionally filtered by fit style
func (h *CatalogHandler) ListSwatches(c *gin.Context) {
	fitStyle := c.Query("fit_style")
	if fitStyle != "" && !studio.ValidFitStyle(studio.FitStyle(fitStyle)) {
		h.BadRequest(c, "Fit style must be slim or oversized")
		return
	}

	swatches, err := h.catalog.Swatches(c.Request.Context(), fitStyle)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, swatches)
}

// ListLogos lists one page of template logos
func (h *CatalogHandler) ListLogos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(studioapp.DefaultLogoPageSize)))

	result, err := h.catalog.Logos(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, int64(result.TotalItems), result.Page, result.PageSize)
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	studio := rg.Group("/studio")
	{
		studio.GET("/swatches", h.ListSwatches)
		studio.GET("/logos", h.ListLogos)
	}
}
