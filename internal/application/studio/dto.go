package studio

import (
	"github.com/teeforge/backend/internal/domain/studio"
)

// PlacementDTO mirrors an element's canvas placement
type PlacementDTO struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation float64 `json:"rotation"`
}

func (p PlacementDTO) toDomain() studio.Placement {
	return studio.Placement{X: p.X, Y: p.Y, ScaleX: p.ScaleX, ScaleY: p.ScaleY, Rotation: p.Rotation}
}

func placementFromDomain(p studio.Placement) PlacementDTO {
	return PlacementDTO{X: p.X, Y: p.Y, ScaleX: p.ScaleX, ScaleY: p.ScaleY, Rotation: p.Rotation}
}

// ProductDTO mirrors the base garment of a scene
type ProductDTO struct {
	FitStyle   string `json:"fit_style" binding:"required,oneof=slim oversized"`
	SwatchID   string `json:"swatch_id"`
	ColorName  string `json:"color_name"`
	ColorHex   string `json:"color_hex"`
	GarmentRef string `json:"garment_ref"`
}

func (p ProductDTO) toDomain() studio.BaseProduct {
	return studio.BaseProduct{
		FitStyle:   studio.FitStyle(p.FitStyle),
		SwatchID:   p.SwatchID,
		ColorName:  p.ColorName,
		ColorHex:   p.ColorHex,
		GarmentRef: p.GarmentRef,
	}
}

func productFromDomain(p studio.BaseProduct) ProductDTO {
	return ProductDTO{
		FitStyle:   string(p.FitStyle),
		SwatchID:   p.SwatchID,
		ColorName:  p.ColorName,
		ColorHex:   p.ColorHex,
		GarmentRef: p.GarmentRef,
	}
}

// CreateSessionRequest opens a new design session
type CreateSessionRequest struct {
	Product ProductDTO `json:"product" binding:"required"`
}

// AddTextRequest places a new text element
type AddTextRequest struct {
	Content    string        `json:"content" binding:"required"`
	FontFamily string        `json:"font_family"`
	FillColor  string        `json:"fill_color"`
	FontSize   float64       `json:"font_size"`
	Placement  *PlacementDTO `json:"placement"`
}

// AddImageRequest places a new image element
type AddImageRequest struct {
	SourceRef string        `json:"source_ref" binding:"required"`
	Origin    string        `json:"origin" binding:"required,oneof=uploaded template"`
	Placement *PlacementDTO `json:"placement"`
}

// UpdateElementRequest partially updates an element. Absent fields are
// left untouched; cost is not updatable.
type UpdateElementRequest struct {
	Placement  *PlacementDTO `json:"placement"`
	Content    *string       `json:"content"`
	FontFamily *string       `json:"font_family"`
	FillColor  *string       `json:"fill_color"`
	FontSize   *float64      `json:"font_size"`
}

// ReorderElementRequest moves an element in the z-order
type ReorderElementRequest struct {
	ToIndex int `json:"to_index"`
}

// TextView mirrors the text payload of an element
type TextView struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"font_family"`
	FillColor  string  `json:"fill_color"`
	FontSize   float64 `json:"font_size"`
}

// ImageView mirrors the image payload of an element
type ImageView struct {
	SourceRef string `json:"source_ref"`
	Origin    string `json:"origin"`
}

// ElementView mirrors one scene element
type ElementView struct {
	ID        string       `json:"id"`
	Kind      string       `json:"kind"`
	Placement PlacementDTO `json:"placement"`
	Text      *TextView    `json:"text,omitempty"`
	Image     *ImageView   `json:"image,omitempty"`
	Cost      string       `json:"cost"`
}

func elementViewFromDomain(el *studio.Element) ElementView {
	view := ElementView{
		ID:        el.ID.String(),
		Kind:      string(el.Kind),
		Placement: placementFromDomain(el.Placement),
		Cost:      el.Cost().StringFixed(2),
	}
	if el.Text != nil {
		view.Text = &TextView{
			Content:    el.Text.Content,
			FontFamily: el.Text.FontFamily,
			FillColor:  el.Text.FillColor,
			FontSize:   el.Text.FontSize,
		}
	}
	if el.Image != nil {
		view.Image = &ImageView{
			SourceRef: el.Image.SourceRef,
			Origin:    string(el.Image.Origin),
		}
	}
	return view
}

// QuoteLineView mirrors one priced component of a quote
type QuoteLineView struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	Amount string `json:"amount"`
}

// QuoteView mirrors a full quote
type QuoteView struct {
	Base     string          `json:"base"`
	Extra    string          `json:"extra"`
	Total    string          `json:"total"`
	Currency string          `json:"currency"`
	Lines    []QuoteLineView `json:"lines"`
}

func quoteViewFromDomain(q studio.Quote) QuoteView {
	lines := make([]QuoteLineView, 0, len(q.Lines))
	for _, line := range q.Lines {
		lines = append(lines, QuoteLineView{
			Label:  line.Label,
			Kind:   line.Kind,
			Amount: line.Amount.StringFixed(2),
		})
	}
	return QuoteView{
		Base:     q.Base.StringFixed(2),
		Extra:    q.Extra.StringFixed(2),
		Total:    q.Total.StringFixed(2),
		Currency: string(q.Total.Currency()),
		Lines:    lines,
	}
}

// SessionStateResponse is the full editor state returned after every operation
type SessionStateResponse struct {
	SessionID string        `json:"session_id"`
	Product   ProductDTO    `json:"product"`
	Elements  []ElementView `json:"elements"`
	Quote     QuoteView     `json:"quote"`
	CanUndo   bool          `json:"can_undo"`
	CanRedo   bool          `json:"can_redo"`
}

// CheckoutRequest finalizes a design into the basket
type CheckoutRequest struct {
	Name        string `json:"name" binding:"required"`
	Size        string `json:"size" binding:"required"`
	ClientTotal string `json:"client_total"`
}

// CheckoutResponse describes the basket entry created from a session
type CheckoutResponse struct {
	LineItemID   string `json:"line_item_id"`
	Name         string `json:"name"`
	Size         string `json:"size"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
	ImageKey     string `json:"image_key"`
	ArchiveKey   string `json:"archive_key"`
	ElementCount int    `json:"element_count"`
}
