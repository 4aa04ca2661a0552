package studio

import (
	"context"

	"github.com/teeforge/backend/internal/domain/studio"
)

// ColorSwatch is one orderable garment color from the content backend
type ColorSwatch struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Hex       string   `json:"hex"`
	FitStyles []string `json:"fit_styles"`
	ImageRef  string   `json:"image_ref"`
}

// TemplateLogo is one ready-made artwork from the content backend
type TemplateLogo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageRef string `json:"image_ref"`
}

// LogoPage is one page of template logos
type LogoPage struct {
	Items      []TemplateLogo `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalItems int            `json:"total_items"`
}

// AssetCatalog fetches design assets from the content backend
type AssetCatalog interface {
	Swatches(ctx context.Context) ([]ColorSwatch, error)
	Logos(ctx context.Context, page, pageSize int) (LogoPage, error)
}

// AssetResolver loads raw image bytes for a source reference so the
// render surface can draw them
type AssetResolver interface {
	Fetch(ctx context.Context, sourceRef string) ([]byte, error)
}

// DesignExport is the flattened output of rendering a finalized scene
type DesignExport struct {
	// Composite is the garment with the design applied, PNG encoded
	Composite []byte
	// Overlay is the design alone on a transparent background, PNG encoded
	Overlay []byte
	// ElementCrops holds one tight PNG crop per element, keyed by element id
	ElementCrops map[string][]byte
}

// Renderer flattens a scene into exportable images
type Renderer interface {
	Export(ctx context.Context, scene *studio.Scene) (*DesignExport, error)
}

// ObjectStorage persists exported design artifacts
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	URL(ctx context.Context, key string) (string, error)
}
