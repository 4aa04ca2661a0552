// Package render flattens design scenes into exportable PNG artifacts.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/domain/studio"
	"github.com/teeforge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var _ studioapp.Renderer = (*Surface)(nil)

// Surface rasterizes scenes onto a fixed-size canvas. Fonts are loaded
// from the configured font directory by family name and cached; an
// unknown family falls back to a built-in face so an export never fails
// on a missing font file.
type Surface struct {
	width    int
	height   int
	fontDir  string
	resolver studioapp.AssetResolver
	logger   *zap.Logger

	mu    sync.Mutex
	fonts map[string]*truetype.Font
}

// NewSurface creates a render surface from studio configuration
func NewSurface(cfg *config.StudioConfig, resolver studioapp.AssetResolver, logger *zap.Logger) *Surface {
	return &Surface{
		width:    cfg.CanvasWidth,
		height:   cfg.CanvasHeight,
		fontDir:  cfg.FontDir,
		resolver: resolver,
		logger:   logger,
		fonts:    make(map[string]*truetype.Font),
	}
}

// Export renders the scene into a garment composite, a transparent
// design overlay, and one tight crop per element.
func (s *Surface) Export(ctx context.Context, scene *studio.Scene) (*studioapp.DesignExport, error) {
	composite := gg.NewContext(s.width, s.height)
	if err := s.drawGarment(ctx, composite, scene.Product()); err != nil {
		return nil, err
	}

	overlay := gg.NewContext(s.width, s.height)

	crops := make(map[string][]byte, scene.Len())
	for _, el := range scene.Elements() {
		if err := s.drawElement(ctx, composite, el); err != nil {
			return nil, fmt.Errorf("failed to render element %s: %w", el.ID, err)
		}
		if err := s.drawElement(ctx, overlay, el); err != nil {
			return nil, fmt.Errorf("failed to render element %s: %w", el.ID, err)
		}

		crop, err := s.renderCrop(ctx, el)
		if err != nil {
			return nil, fmt.Errorf("failed to crop element %s: %w", el.ID, err)
		}
		crops[el.ID.String()] = crop
	}

	compositePNG, err := encodePNG(composite.Image())
	if err != nil {
		return nil, err
	}
	overlayPNG, err := encodePNG(overlay.Image())
	if err != nil {
		return nil, err
	}

	return &studioapp.DesignExport{
		Composite:    compositePNG,
		Overlay:      overlayPNG,
		ElementCrops: crops,
	}, nil
}

// drawGarment paints the base product: the garment image when one is
// referenced, otherwise a flat fill in the swatch color.
func (s *Surface) drawGarment(ctx context.Context, dc *gg.Context, product studio.BaseProduct) error {
	if product.GarmentRef != "" {
		data, err := s.resolver.Fetch(ctx, product.GarmentRef)
		if err == nil {
			img, _, decodeErr := image.Decode(bytes.NewReader(data))
			if decodeErr == nil {
				dc.Push()
				bounds := img.Bounds()
				dc.Scale(float64(s.width)/float64(bounds.Dx()), float64(s.height)/float64(bounds.Dy()))
				dc.DrawImage(img, 0, 0)
				dc.Pop()
				return nil
			}
			err = decodeErr
		}
		s.logger.Warn("garment image unavailable, falling back to flat color",
			zap.String("garment_ref", product.GarmentRef),
			zap.Error(err))
	}

	hex := product.ColorHex
	if hex == "" {
		hex = "#FFFFFF"
	}
	dc.SetHexColor(hex)
	dc.Clear()
	return nil
}

func (s *Surface) drawElement(ctx context.Context, dc *gg.Context, el *studio.Element) error {
	p := el.Placement

	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(p.Rotation), p.X, p.Y)
	dc.ScaleAbout(p.ScaleX, p.ScaleY, p.X, p.Y)

	switch el.Kind {
	case studio.ElementKindText:
		dc.SetFontFace(s.face(el.Text.FontFamily, el.Text.FontSize))
		dc.SetHexColor(el.Text.FillColor)
		dc.DrawStringAnchored(el.Text.Content, p.X, p.Y, 0.5, 0.5)
		return nil
	case studio.ElementKindImage:
		data, err := s.resolver.Fetch(ctx, el.Image.SourceRef)
		if err != nil {
			return err
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to decode image asset: %w", err)
		}
		dc.DrawImageAnchored(img, int(p.X), int(p.Y), 0.5, 0.5)
		return nil
	default:
		return fmt.Errorf("unknown element kind %q", el.Kind)
	}
}

// renderCrop draws the element alone on a transparent canvas and trims
// it to its opaque bounding box
func (s *Surface) renderCrop(ctx context.Context, el *studio.Element) ([]byte, error) {
	dc := gg.NewContext(s.width, s.height)
	if err := s.drawElement(ctx, dc, el); err != nil {
		return nil, err
	}
	return encodePNG(tightCrop(dc.Image()))
}

// tightCrop trims fully transparent borders. An all-transparent image
// is returned unchanged.
func tightCrop(img image.Image) image.Image {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if minX > maxX || minY > maxY {
		return img
	}

	rect := image.Rect(minX, minY, maxX+1, maxY+1)
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}
	return img
}

// face resolves a font family to a sized face, caching parsed fonts
func (s *Surface) face(family string, size float64) font.Face {
	if size <= 0 {
		size = 24
	}

	s.mu.Lock()
	parsed, ok := s.fonts[family]
	s.mu.Unlock()

	if !ok {
		data, err := os.ReadFile(filepath.Join(s.fontDir, family+".ttf"))
		if err == nil {
			parsed, err = truetype.Parse(data)
		}
		if err != nil {
			s.logger.Debug("font unavailable, using fallback face",
				zap.String("family", family),
				zap.Error(err))
			return basicfont.Face7x13
		}
		s.mu.Lock()
		s.fonts[family] = parsed
		s.mu.Unlock()
	}

	return truetype.NewFace(parsed, &truetype.Options{Size: size})
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
