package basket

import "github.com/teeforge/backend/internal/domain/shared"

// Domain errors for the basket
var (
	// ErrInvalidSize is returned when a checkout names a size the garment
	// does not come in
	ErrInvalidSize = shared.NewDomainError("INVALID_SIZE", "Size must be one of XS, S, M, L, XL, XXL")

	// ErrLineItemNotFound is returned when a basket entry does not exist
	ErrLineItemNotFound = shared.NewDomainError("LINE_ITEM_NOT_FOUND", "Basket line item not found")
)
