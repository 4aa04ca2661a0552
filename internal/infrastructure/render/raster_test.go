package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teeforge/backend/internal/domain/studio"
	"github.com/teeforge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

type fakeResolver struct {
	assets map[string][]byte
}

func (f *fakeResolver) Fetch(ctx context.Context, ref string) ([]byte, error) {
	data, ok := f.assets[ref]
	if !ok {
		return nil, errors.New("asset not found")
	}
	return data, nil
}

func redSquarePNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestSurface(resolver *fakeResolver) *Surface {
	return NewSurface(&config.StudioConfig{
		CanvasWidth:  100,
		CanvasHeight: 100,
		FontDir:      "testdata/fonts",
	}, resolver, zap.NewNop())
}

func testScene(t *testing.T) *studio.Scene {
	t.Helper()
	scene, err := studio.NewScene(studio.BaseProduct{
		FitStyle:  studio.FitStyleSlim,
		SwatchID:  "sw-1",
		ColorName: "White",
		ColorHex:  "#FFFFFF",
	})
	require.NoError(t, err)
	return scene
}

func TestSurfaceExport(t *testing.T) {
	resolver := &fakeResolver{assets: map[string][]byte{
		"uploads/art.png": redSquarePNG(t, 10),
	}}
	surface := newTestSurface(resolver)

	t.Run("renders text and image elements", func(t *testing.T) {
		scene := testScene(t)

		text, err := studio.NewTextElement(
			studio.TextAttrs{Content: "HELLO", FillColor: "#000000", FontSize: 14},
			studio.Placement{X: 50, Y: 30, ScaleX: 1, ScaleY: 1},
			decimal.NewFromFloat(0.5),
		)
		require.NoError(t, err)
		scene.AddElement(text)

		img, err := studio.NewImageElement(
			studio.ImageAttrs{SourceRef: "uploads/art.png", Origin: studio.ImageOriginUploaded},
			studio.Placement{X: 50, Y: 70, ScaleX: 1, ScaleY: 1},
			decimal.NewFromFloat(5),
		)
		require.NoError(t, err)
		scene.AddElement(img)

		export, err := surface.Export(context.Background(), scene)
		require.NoError(t, err)

		composite, err := png.Decode(bytes.NewReader(export.Composite))
		require.NoError(t, err)
		assert.Equal(t, 100, composite.Bounds().Dx())
		assert.Equal(t, 100, composite.Bounds().Dy())

		overlay, err := png.Decode(bytes.NewReader(export.Overlay))
		require.NoError(t, err)
		assert.Equal(t, 100, overlay.Bounds().Dx())

		require.Len(t, export.ElementCrops, 2)
		crop, err := png.Decode(bytes.NewReader(export.ElementCrops[img.ID.String()]))
		require.NoError(t, err)
		assert.Equal(t, 10, crop.Bounds().Dx())
		assert.Equal(t, 10, crop.Bounds().Dy())
	})

	t.Run("empty scene exports flat garment", func(t *testing.T) {
		scene := testScene(t)

		export, err := surface.Export(context.Background(), scene)
		require.NoError(t, err)
		assert.Empty(t, export.ElementCrops)

		composite, err := png.Decode(bytes.NewReader(export.Composite))
		require.NoError(t, err)
		r, g, b, _ := composite.At(50, 50).RGBA()
		assert.Equal(t, uint32(0xffff), r)
		assert.Equal(t, uint32(0xffff), g)
		assert.Equal(t, uint32(0xffff), b)
	})

	t.Run("missing image asset fails the export", func(t *testing.T) {
		scene := testScene(t)
		img, err := studio.NewImageElement(
			studio.ImageAttrs{SourceRef: "uploads/gone.png", Origin: studio.ImageOriginUploaded},
			studio.DefaultPlacement(),
			decimal.NewFromFloat(5),
		)
		require.NoError(t, err)
		scene.AddElement(img)

		_, err = surface.Export(context.Background(), scene)
		require.Error(t, err)
	})

	t.Run("missing garment image falls back to flat color", func(t *testing.T) {
		scene, err := studio.NewScene(studio.BaseProduct{
			FitStyle:   studio.FitStyleSlim,
			ColorHex:   "#112233",
			GarmentRef: "garments/missing.png",
		})
		require.NoError(t, err)

		export, exportErr := surface.Export(context.Background(), scene)
		require.NoError(t, exportErr)
		assert.NotEmpty(t, export.Composite)
	})
}

func TestTightCrop(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	img.Set(5, 7, color.RGBA{A: 255})
	img.Set(9, 12, color.RGBA{A: 255})

	cropped := tightCrop(img)
	assert.Equal(t, image.Rect(5, 7, 10, 13), cropped.Bounds())

	t.Run("fully transparent image is unchanged", func(t *testing.T) {
		blank := image.NewRGBA(image.Rect(0, 0, 8, 8))
		assert.Equal(t, blank.Bounds(), tightCrop(blank).Bounds())
	})
}
