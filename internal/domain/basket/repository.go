package basket

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists basket line items
type Repository interface {
	Save(ctx context.Context, item *LineItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*LineItem, error)
	List(ctx context.Context) ([]*LineItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
