package studio

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/teeforge/backend/internal/domain/shared"
)

// FitStyle is the base garment cut
type FitStyle string

const (
	FitStyleSlim      FitStyle = "slim"
	FitStyleOversized FitStyle = "oversized"
)

// ValidFitStyle reports whether the given style is a known cut
func ValidFitStyle(s FitStyle) bool {
	return s == FitStyleSlim || s == FitStyleOversized
}

// BaseProduct is the garment a design is placed on
type BaseProduct struct {
	FitStyle   FitStyle `json:"fit_style"`
	SwatchID   string   `json:"swatch_id"`
	ColorName  string   `json:"color_name"`
	ColorHex   string   `json:"color_hex"`
	GarmentRef string   `json:"garment_ref"`
}

// Scene is the aggregate root for one design composition: an ordered set
// of elements (slice order = z-order) on a base product. It is fully
// serializable to a Snapshot and fully reconstructable from one; the
// round trip preserves placement, kind and cost exactly.
type Scene struct {
	shared.BaseAggregateRoot
	product  BaseProduct
	elements []*Element
}

// NewScene creates an empty scene on the given base product
func NewScene(product BaseProduct) (*Scene, error) {
	if !ValidFitStyle(product.FitStyle) {
		return nil, shared.NewDomainError("INVALID_FIT_STYLE", "Fit style must be slim or oversized")
	}
	return &Scene{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		product:           product,
		elements:          make([]*Element, 0),
	}, nil
}

// Product returns the base product the design sits on
func (s *Scene) Product() BaseProduct {
	return s.product
}

// SetProduct switches the base garment (fit style and/or color swatch)
func (s *Scene) SetProduct(product BaseProduct) error {
	if !ValidFitStyle(product.FitStyle) {
		return shared.NewDomainError("INVALID_FIT_STYLE", "Fit style must be slim or oversized")
	}
	s.product = product
	s.touch()
	s.AddDomainEvent(NewProductChangedEvent(s))
	return nil
}

// Elements returns the elements in z-order. The returned slice is a copy;
// the elements themselves are shared and must only be mutated through
// scene operations.
func (s *Scene) Elements() []*Element {
	out := make([]*Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// Len returns the number of elements on the scene
func (s *Scene) Len() int {
	return len(s.elements)
}

// AddElement appends an element at the top of the z-order
func (s *Scene) AddElement(el *Element) {
	s.elements = append(s.elements, el)
	s.touch()
	s.AddDomainEvent(NewElementAddedEvent(s, el))
}

// RemoveElement deletes the element with the given id
func (s *Scene) RemoveElement(id uuid.UUID) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrElementNotFound
	}
	el := s.elements[idx]
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	s.touch()
	s.AddDomainEvent(NewElementRemovedEvent(s, el))
	return nil
}

// UpdateElement applies a partial update to the element with the given id.
// The element's cost is never touched: editing content does not reprice.
func (s *Scene) UpdateElement(id uuid.UUID, patch ElementPatch) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrElementNotFound
	}
	if err := s.elements[idx].apply(patch); err != nil {
		return err
	}
	s.touch()
	s.AddDomainEvent(NewElementUpdatedEvent(s, s.elements[idx]))
	return nil
}

// MoveElement moves the element to a new z-order position
func (s *Scene) MoveElement(id uuid.UUID, toIndex int) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrElementNotFound
	}
	if toIndex < 0 || toIndex >= len(s.elements) {
		return shared.NewDomainError("INVALID_INPUT", "Reorder target index out of range")
	}
	el := s.elements[idx]
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	rest := append(make([]*Element, 0, len(s.elements)+1), s.elements[:toIndex]...)
	rest = append(rest, el)
	s.elements = append(rest, s.elements[toIndex:]...)
	s.touch()
	s.AddDomainEvent(NewElementReorderedEvent(s, el, toIndex))
	return nil
}

// Element returns the element with the given id
func (s *Scene) Element(id uuid.UUID) (*Element, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, ErrElementNotFound
	}
	return s.elements[idx], nil
}

func (s *Scene) indexOf(id uuid.UUID) int {
	for i, el := range s.elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

func (s *Scene) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// sceneDocument is the wire shape of a serialized scene
type sceneDocument struct {
	Product  BaseProduct       `json:"product"`
	Elements []elementDocument `json:"elements"`
}

type elementDocument struct {
	ID        string      `json:"id"`
	Kind      ElementKind `json:"kind"`
	Cost      *string     `json:"cost"`
	Placement Placement   `json:"placement"`
	Text      *TextAttrs  `json:"text,omitempty"`
	Image     *ImageAttrs `json:"image,omitempty"`
}

// Serialize captures the full scene state as an immutable snapshot.
// Kind and cost are carried explicitly: they are the only fields the
// cost engine reads, so dropping either would silently break pricing.
func (s *Scene) Serialize() (Snapshot, error) {
	doc := sceneDocument{
		Product:  s.product,
		Elements: make([]elementDocument, 0, len(s.elements)),
	}
	for _, el := range s.elements {
		cost := el.cost.String()
		doc.Elements = append(doc.Elements, elementDocument{
			ID:        el.ID.String(),
			Kind:      el.Kind,
			Cost:      &cost,
			Placement: el.Placement,
			Text:      el.Text,
			Image:     el.Image,
		})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to serialize scene: %w", err)
	}
	return newSnapshot(data), nil
}

// Restore replaces the scene contents wholesale from a snapshot.
// On any validation failure the scene is left untouched and
// ErrCorruptSnapshot is returned.
func (s *Scene) Restore(snap Snapshot) error {
	if snap.IsZero() {
		return ErrCorruptSnapshot
	}
	var doc sceneDocument
	if err := json.Unmarshal(snap.data, &doc); err != nil {
		return ErrCorruptSnapshot
	}
	if !ValidFitStyle(doc.Product.FitStyle) {
		return ErrCorruptSnapshot
	}

	// Rebuild every element before mutating anything so a bad entry
	// cannot leave the scene half restored.
	restored := make([]*Element, 0, len(doc.Elements))
	for _, entry := range doc.Elements {
		el, err := entry.toElement()
		if err != nil {
			return err
		}
		restored = append(restored, el)
	}

	s.product = doc.Product
	s.elements = restored
	s.touch()
	s.AddDomainEvent(NewSceneRestoredEvent(s))
	return nil
}

// toElement validates one serialized element and rebuilds it with its
// original id and cost
func (d elementDocument) toElement() (*Element, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, ErrCorruptSnapshot
	}
	if d.Cost == nil {
		return nil, ErrCorruptSnapshot
	}
	cost, err := decimal.NewFromString(*d.Cost)
	if err != nil || cost.IsNegative() {
		return nil, ErrCorruptSnapshot
	}

	switch d.Kind {
	case ElementKindText:
		if d.Text == nil {
			return nil, ErrCorruptSnapshot
		}
		text := *d.Text
		return restoreElement(id, d.Kind, d.Placement, &text, nil, cost), nil
	case ElementKindImage:
		if d.Image == nil {
			return nil, ErrCorruptSnapshot
		}
		image := *d.Image
		return restoreElement(id, d.Kind, d.Placement, nil, &image, cost), nil
	default:
		return nil, ErrCorruptSnapshot
	}
}
