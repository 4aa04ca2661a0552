package studio

import (
	"context"

	"github.com/teeforge/backend/internal/domain/studio"
	"go.uber.org/zap"
)

// DefaultLogoPageSize is how many template logos a page carries when the
// caller does not say
const DefaultLogoPageSize = 12

// CatalogService serves design assets (color swatches, template logos)
// from the content backend. Fetch failures never break the editor; they
// surface as CATALOG_FETCH_FAILED and the session stays usable.
type CatalogService struct {
	catalog AssetCatalog
	logger  *zap.Logger
}

// NewCatalogService creates a catalog service
func NewCatalogService(catalog AssetCatalog, logger *zap.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, logger: logger}
}

// Swatches lists garment colors, optionally filtered to those available
// for a fit style. A cancelled context (for example a session torn down
// mid-fetch) discards the result.
func (s *CatalogService) Swatches(ctx context.Context, fitStyle string) ([]ColorSwatch, error) {
	swatches, err := s.catalog.Swatches(ctx)
	if err != nil {
		s.logger.Warn("swatch fetch failed", zap.Error(err))
		return nil, studio.ErrCatalogFetchFailed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if fitStyle == "" {
		return swatches, nil
	}
	filtered := make([]ColorSwatch, 0, len(swatches))
	for _, sw := range swatches {
		if len(sw.FitStyles) == 0 {
			filtered = append(filtered, sw)
			continue
		}
		for _, fs := range sw.FitStyles {
			if fs == fitStyle {
				filtered = append(filtered, sw)
				break
			}
		}
	}
	return filtered, nil
}

// Logos lists one page of template logos
func (s *CatalogService) Logos(ctx context.Context, page, pageSize int) (LogoPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultLogoPageSize
	}

	result, err := s.catalog.Logos(ctx, page, pageSize)
	if err != nil {
		s.logger.Warn("logo fetch failed", zap.Int("page", page), zap.Error(err))
		return LogoPage{}, studio.ErrCatalogFetchFailed
	}
	if err := ctx.Err(); err != nil {
		return LogoPage{}, err
	}
	return result, nil
}
