package basket

import (
	"strings"

	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/shared"
	"github.com/teeforge/backend/internal/domain/shared/valueobject"
)

// Sizes a garment can be ordered in
var ValidSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// ValidSize reports whether the given size is orderable
func ValidSize(size string) bool {
	for _, s := range ValidSizes {
		if s == size {
			return true
		}
	}
	return false
}

// LineItem is one finalized design added to the basket. It is immutable
// after creation: a buyer who wants a different design starts a new
// studio session instead of editing a basket entry.
type LineItem struct {
	shared.BaseAggregateRoot
	Name            string            `gorm:"size:255;not null"`
	Slug            string            `gorm:"size:255;not null;index"`
	Size            string            `gorm:"size:8;not null"`
	FitStyle        string            `gorm:"size:16;not null"`
	ColorName       string            `gorm:"size:64"`
	ColorHex        string            `gorm:"size:16"`
	Price           valueobject.Money `gorm:"type:decimal(12,2)"`
	ExtraCost       valueobject.Money `gorm:"type:decimal(12,2)"`
	Currency        string            `gorm:"size:8;not null"`
	ImageKey        string            `gorm:"size:512;not null"`
	ArchiveKey      string            `gorm:"size:512"`
	ElementCount    int               `gorm:"not null"`
	DesignSessionID uuid.UUID         `gorm:"type:uuid;index"`
}

// TableName returns the database table name
func (LineItem) TableName() string {
	return "basket_line_items"
}

// NewLineItemParams carries everything needed to build a basket entry
type NewLineItemParams struct {
	Name            string
	Slug            string
	Size            string
	FitStyle        string
	ColorName       string
	ColorHex        string
	Price           valueobject.Money
	ExtraCost       valueobject.Money
	ImageKey        string
	ArchiveKey      string
	ElementCount    int
	DesignSessionID uuid.UUID
}

// NewLineItem creates a basket entry for a finalized design
func NewLineItem(p NewLineItemParams) (*LineItem, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item name cannot be empty")
	}
	if !ValidSize(p.Size) {
		return nil, ErrInvalidSize
	}
	if p.ImageKey == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item requires an exported design image")
	}
	if p.Price.IsNegative() || p.ExtraCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item amounts cannot be negative")
	}

	item := &LineItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              p.Name,
		Slug:              p.Slug,
		Size:              p.Size,
		FitStyle:          p.FitStyle,
		ColorName:         p.ColorName,
		ColorHex:          p.ColorHex,
		Price:             p.Price,
		ExtraCost:         p.ExtraCost,
		Currency:          string(p.Price.Currency()),
		ImageKey:          p.ImageKey,
		ArchiveKey:        p.ArchiveKey,
		ElementCount:      p.ElementCount,
		DesignSessionID:   p.DesignSessionID,
	}
	item.AddDomainEvent(NewLineItemAddedEvent(item))
	return item, nil
}

// Total returns the full price of the entry (base price plus design extras)
func (l *LineItem) Total() (valueobject.Money, error) {
	return l.Price.Add(l.ExtraCost)
}
