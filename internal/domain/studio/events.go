package studio

import (
	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/shared"
)

// Event types for the design studio
const (
	EventTypeElementAdded     = "studio.scene.element_added"
	EventTypeElementUpdated   = "studio.scene.element_updated"
	EventTypeElementRemoved   = "studio.scene.element_removed"
	EventTypeElementReordered = "studio.scene.element_reordered"
	EventTypeProductChanged   = "studio.scene.product_changed"
	EventTypeSceneRestored    = "studio.scene.restored"
)

// AggregateTypeScene is the aggregate type for scene events
const AggregateTypeScene = "Scene"

// ElementAddedEvent is published when an element is placed on the scene
type ElementAddedEvent struct {
	shared.BaseDomainEvent
	SceneID   uuid.UUID   `json:"scene_id"`
	ElementID uuid.UUID   `json:"element_id"`
	Kind      ElementKind `json:"kind"`
	Cost      string      `json:"cost"`
}

// NewElementAddedEvent creates a new ElementAddedEvent
func NewElementAddedEvent(scene *Scene, el *Element) *ElementAddedEvent {
	return &ElementAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeElementAdded, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		ElementID:       el.ID,
		Kind:            el.Kind,
		Cost:            el.cost.String(),
	}
}

// ElementUpdatedEvent is published when an element's content or placement changes
type ElementUpdatedEvent struct {
	shared.BaseDomainEvent
	SceneID   uuid.UUID   `json:"scene_id"`
	ElementID uuid.UUID   `json:"element_id"`
	Kind      ElementKind `json:"kind"`
}

// NewElementUpdatedEvent creates a new ElementUpdatedEvent
func NewElementUpdatedEvent(scene *Scene, el *Element) *ElementUpdatedEvent {
	return &ElementUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeElementUpdated, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		ElementID:       el.ID,
		Kind:            el.Kind,
	}
}

// ElementRemovedEvent is published when an element is deleted from the scene
type ElementRemovedEvent struct {
	shared.BaseDomainEvent
	SceneID   uuid.UUID   `json:"scene_id"`
	ElementID uuid.UUID   `json:"element_id"`
	Kind      ElementKind `json:"kind"`
}

// NewElementRemovedEvent creates a new ElementRemovedEvent
func NewElementRemovedEvent(scene *Scene, el *Element) *ElementRemovedEvent {
	return &ElementRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeElementRemoved, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		ElementID:       el.ID,
		Kind:            el.Kind,
	}
}

// ElementReorderedEvent is published when an element moves in the z-order
type ElementReorderedEvent struct {
	shared.BaseDomainEvent
	SceneID   uuid.UUID `json:"scene_id"`
	ElementID uuid.UUID `json:"element_id"`
	NewIndex  int       `json:"new_index"`
}

// NewElementReorderedEvent creates a new ElementReorderedEvent
func NewElementReorderedEvent(scene *Scene, el *Element, newIndex int) *ElementReorderedEvent {
	return &ElementReorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeElementReordered, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		ElementID:       el.ID,
		NewIndex:        newIndex,
	}
}

// ProductChangedEvent is published when the base garment changes
type ProductChangedEvent struct {
	shared.BaseDomainEvent
	SceneID  uuid.UUID `json:"scene_id"`
	FitStyle FitStyle  `json:"fit_style"`
	SwatchID string    `json:"swatch_id"`
}

// NewProductChangedEvent creates a new ProductChangedEvent
func NewProductChangedEvent(scene *Scene) *ProductChangedEvent {
	return &ProductChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductChanged, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		FitStyle:        scene.product.FitStyle,
		SwatchID:        scene.product.SwatchID,
	}
}

// SceneRestoredEvent is published when the scene is replaced from a snapshot
type SceneRestoredEvent struct {
	shared.BaseDomainEvent
	SceneID      uuid.UUID `json:"scene_id"`
	ElementCount int       `json:"element_count"`
}

// NewSceneRestoredEvent creates a new SceneRestoredEvent
func NewSceneRestoredEvent(scene *Scene) *SceneRestoredEvent {
	return &SceneRestoredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSceneRestored, AggregateTypeScene, scene.ID),
		SceneID:         scene.ID,
		ElementCount:    len(scene.elements),
	}
}
