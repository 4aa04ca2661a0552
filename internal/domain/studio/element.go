package studio

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teeforge/backend/internal/domain/shared"
)

// ElementKind identifies the kind of a placeable element
type ElementKind string

const (
	ElementKindText  ElementKind = "text"
	ElementKindImage ElementKind = "image"
)

// ImageOrigin identifies where an image element came from
type ImageOrigin string

const (
	ImageOriginUploaded ImageOrigin = "uploaded"
	ImageOriginTemplate ImageOrigin = "template"
)

// Placement describes where and how an element sits on the canvas.
// It is opaque to pricing.
type Placement struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation float64 `json:"rotation"` // degrees
}

// DefaultPlacement returns the placement new elements start with
func DefaultPlacement() Placement {
	return Placement{X: 175, Y: 175, ScaleX: 1, ScaleY: 1}
}

// TextAttrs holds the text-specific payload of an element
type TextAttrs struct {
	Content    string  `json:"content"`
	FontFamily string  `json:"font_family"`
	FillColor  string  `json:"fill_color"`
	FontSize   float64 `json:"font_size"`
}

// ImageAttrs holds the image-specific payload of an element
type ImageAttrs struct {
	SourceRef string      `json:"source_ref"`
	Origin    ImageOrigin `json:"origin"`
}

// Element is one placeable unit on a scene: a text run or an image.
// Its cost is assigned at creation time and never changes afterwards,
// even when the content is edited later.
type Element struct {
	ID        uuid.UUID
	Kind      ElementKind
	Placement Placement
	Text      *TextAttrs
	Image     *ImageAttrs

	cost decimal.Decimal
}

// Cost returns the immutable cost assigned at creation
func (e *Element) Cost() decimal.Decimal {
	return e.cost
}

// NewTextElement creates a text element with the given creation-time cost.
// The cost is computed by the cost engine from the initial content and is
// not re-derived when the text is edited later.
func NewTextElement(attrs TextAttrs, placement Placement, cost decimal.Decimal) (*Element, error) {
	if strings.TrimSpace(attrs.Content) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Text content cannot be empty")
	}
	if attrs.FontSize <= 0 {
		attrs.FontSize = 24
	}
	if attrs.FontFamily == "" {
		attrs.FontFamily = "Inter"
	}
	if attrs.FillColor == "" {
		attrs.FillColor = "#000000"
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Element cost cannot be negative")
	}

	return &Element{
		ID:        uuid.New(),
		Kind:      ElementKindText,
		Placement: placement,
		Text:      &attrs,
		cost:      cost,
	}, nil
}

// NewImageElement creates an image element with the given creation-time cost
func NewImageElement(attrs ImageAttrs, placement Placement, cost decimal.Decimal) (*Element, error) {
	if attrs.SourceRef == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Image source reference cannot be empty")
	}
	if attrs.Origin != ImageOriginUploaded && attrs.Origin != ImageOriginTemplate {
		return nil, shared.NewDomainError("INVALID_INPUT", "Image origin must be uploaded or template")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Element cost cannot be negative")
	}

	return &Element{
		ID:        uuid.New(),
		Kind:      ElementKindImage,
		Placement: placement,
		Image:     &attrs,
		cost:      cost,
	}, nil
}

// restoreElement rebuilds an element from snapshot data, preserving its
// original id and cost. Used only by Scene.Restore.
func restoreElement(id uuid.UUID, kind ElementKind, placement Placement, text *TextAttrs, image *ImageAttrs, cost decimal.Decimal) *Element {
	return &Element{
		ID:        id,
		Kind:      kind,
		Placement: placement,
		Text:      text,
		Image:     image,
		cost:      cost,
	}
}

// ElementPatch describes a partial update to an element.
// Nil fields are left untouched. Cost is deliberately absent:
// it cannot be changed after creation.
type ElementPatch struct {
	Placement  *Placement
	Content    *string
	FontFamily *string
	FillColor  *string
	FontSize   *float64
}

// apply mutates the element in place according to the patch
func (e *Element) apply(patch ElementPatch) error {
	if patch.Placement != nil {
		e.Placement = *patch.Placement
	}
	if e.Kind == ElementKindText {
		if patch.Content != nil {
			if strings.TrimSpace(*patch.Content) == "" {
				return shared.NewDomainError("INVALID_INPUT", "Text content cannot be empty")
			}
			e.Text.Content = *patch.Content
		}
		if patch.FontFamily != nil {
			e.Text.FontFamily = *patch.FontFamily
		}
		if patch.FillColor != nil {
			e.Text.FillColor = *patch.FillColor
		}
		if patch.FontSize != nil && *patch.FontSize > 0 {
			e.Text.FontSize = *patch.FontSize
		}
	} else if patch.Content != nil || patch.FontFamily != nil || patch.FillColor != nil || patch.FontSize != nil {
		return shared.NewDomainError("INVALID_INPUT", "Text attributes cannot be applied to an image element")
	}
	return nil
}

// clone returns a deep copy of the element
func (e *Element) clone() *Element {
	copied := &Element{
		ID:        e.ID,
		Kind:      e.Kind,
		Placement: e.Placement,
		cost:      e.cost,
	}
	if e.Text != nil {
		text := *e.Text
		copied.Text = &text
	}
	if e.Image != nil {
		image := *e.Image
		copied.Image = &image
	}
	return copied
}
