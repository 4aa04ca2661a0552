package studio

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/basket"
	"github.com/teeforge/backend/internal/domain/studio"
	"go.uber.org/zap"
)

// CheckoutService turns a finalized design session into a basket line
// item. The whole flow runs with the session locked so the design cannot
// change between quoting and export.
type CheckoutService struct {
	editor   *EditorService
	engine   *studio.CostEngine
	renderer Renderer
	storage  ObjectStorage
	basket   basket.Repository
	logger   *zap.Logger
}

// NewCheckoutService creates a checkout service
func NewCheckoutService(
	editor *EditorService,
	engine *studio.CostEngine,
	renderer Renderer,
	storage ObjectStorage,
	basketRepo basket.Repository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		editor:   editor,
		engine:   engine,
		renderer: renderer,
		storage:  storage,
		basket:   basketRepo,
		logger:   logger,
	}
}

// Finalize exports the session's design, stores the artifacts and adds a
// basket entry. The total is always recomputed server-side; the client
// supplied total is advisory and only logged when it disagrees. On any
// failure no basket entry is created.
func (s *CheckoutService) Finalize(ctx context.Context, sessionID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	if !basket.ValidSize(req.Size) {
		return nil, basket.ErrInvalidSize
	}

	var resp *CheckoutResponse
	err := s.editor.WithSession(sessionID, func(sess *EditorSession) error {
		scene := sess.Scene()

		quote, err := s.engine.QuoteScene(scene)
		if err != nil {
			return err
		}
		if req.ClientTotal != "" && req.ClientTotal != quote.Total.StringFixed(2) {
			s.logger.Warn("client total disagrees with server quote",
				zap.String("session_id", sessionID.String()),
				zap.String("client_total", req.ClientTotal),
				zap.String("server_total", quote.Total.StringFixed(2)))
		}

		export, err := s.renderer.Export(ctx, scene)
		if err != nil {
			s.logger.Error("design export failed",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
			return studio.ErrExportFailed
		}

		archive, err := s.buildArchive(scene, quote, req, export)
		if err != nil {
			return studio.ErrExportFailed
		}

		prefix := fmt.Sprintf("designs/%s", sessionID.String())
		imageKey := prefix + "/design.png"
		archiveKey := prefix + "/design.zip"
		if err := s.storage.Put(ctx, imageKey, export.Composite, "image/png"); err != nil {
			return fmt.Errorf("failed to store design image: %w", err)
		}
		if err := s.storage.Put(ctx, archiveKey, archive, "application/zip"); err != nil {
			return fmt.Errorf("failed to store design archive: %w", err)
		}

		product := scene.Product()
		item, err := basket.NewLineItem(basket.NewLineItemParams{
			Name:            req.Name,
			Slug:            slugify(req.Name),
			Size:            req.Size,
			FitStyle:        string(product.FitStyle),
			ColorName:       product.ColorName,
			ColorHex:        product.ColorHex,
			Price:           quote.Base,
			ExtraCost:       quote.Extra,
			ImageKey:        imageKey,
			ArchiveKey:      archiveKey,
			ElementCount:    scene.Len(),
			DesignSessionID: sessionID,
		})
		if err != nil {
			return err
		}
		if err := s.basket.Save(ctx, item); err != nil {
			return fmt.Errorf("failed to save basket item: %w", err)
		}

		total, err := item.Total()
		if err != nil {
			return err
		}
		resp = &CheckoutResponse{
			LineItemID:   item.ID.String(),
			Name:         item.Name,
			Size:         item.Size,
			Total:        total.StringFixed(2),
			Currency:     item.Currency,
			ImageKey:     imageKey,
			ArchiveKey:   archiveKey,
			ElementCount: item.ElementCount,
		}

		s.logger.Info("design checked out",
			zap.String("session_id", sessionID.String()),
			zap.String("line_item_id", item.ID.String()),
			zap.String("total", resp.Total))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// designInfo is the manifest written into the design archive
type designInfo struct {
	Name       string        `json:"name"`
	Size       string        `json:"size"`
	Product    ProductDTO    `json:"product"`
	Elements   []ElementView `json:"elements"`
	Quote      QuoteView     `json:"quote"`
	ExportedAt time.Time     `json:"exported_at"`
}

// buildArchive zips the composite, the transparent overlay, one crop per
// element and a JSON manifest describing the design
func (s *CheckoutService) buildArchive(scene *studio.Scene, quote studio.Quote, req CheckoutRequest, export *DesignExport) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name string, data []byte) error {
		f, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write(data)
		return err
	}

	if err := write("design.png", export.Composite); err != nil {
		return nil, err
	}
	if len(export.Overlay) > 0 {
		if err := write("overlay.png", export.Overlay); err != nil {
			return nil, err
		}
	}
	for id, crop := range export.ElementCrops {
		if err := write("elements/"+id+".png", crop); err != nil {
			return nil, err
		}
	}

	elements := scene.Elements()
	views := make([]ElementView, 0, len(elements))
	for _, el := range elements {
		views = append(views, elementViewFromDomain(el))
	}
	info, err := json.MarshalIndent(designInfo{
		Name:       req.Name,
		Size:       req.Size,
		Product:    productFromDomain(scene.Product()),
		Elements:   views,
		Quote:      quoteViewFromDomain(quote),
		ExportedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := write("design_info.json", info); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
