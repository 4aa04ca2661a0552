package basket

import (
	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/shared"
)

// Event types for the basket
const (
	EventTypeLineItemAdded   = "basket.line_item.added"
	EventTypeLineItemRemoved = "basket.line_item.removed"
)

// AggregateTypeLineItem is the aggregate type for basket events
const AggregateTypeLineItem = "LineItem"

// LineItemAddedEvent is published when a finalized design enters the basket
type LineItemAddedEvent struct {
	shared.BaseDomainEvent
	LineItemID      uuid.UUID `json:"line_item_id"`
	Name            string    `json:"name"`
	Size            string    `json:"size"`
	DesignSessionID uuid.UUID `json:"design_session_id"`
}

// NewLineItemAddedEvent creates a new LineItemAddedEvent
func NewLineItemAddedEvent(item *LineItem) *LineItemAddedEvent {
	return &LineItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineItemAdded, AggregateTypeLineItem, item.ID),
		LineItemID:      item.ID,
		Name:            item.Name,
		Size:            item.Size,
		DesignSessionID: item.DesignSessionID,
	}
}

// LineItemRemovedEvent is published when a basket entry is deleted
type LineItemRemovedEvent struct {
	shared.BaseDomainEvent
	LineItemID uuid.UUID `json:"line_item_id"`
}

// NewLineItemRemovedEvent creates a new LineItemRemovedEvent
func NewLineItemRemovedEvent(item *LineItem) *LineItemRemovedEvent {
	return &LineItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineItemRemoved, AggregateTypeLineItem, item.ID),
		LineItemID:      item.ID,
	}
}
