package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/basket"
	"gorm.io/gorm"
)

// GormLineItemRepository implements basket.Repository using GORM
type GormLineItemRepository struct {
	db *gorm.DB
}

// NewGormLineItemRepository creates a new GormLineItemRepository
func NewGormLineItemRepository(db *gorm.DB) *GormLineItemRepository {
	return &GormLineItemRepository{db: db}
}

// Save creates or updates a basket line item
func (r *GormLineItemRepository) Save(ctx context.Context, item *basket.LineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// FindByID finds a line item by its ID
func (r *GormLineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*basket.LineItem, error) {
	var item basket.LineItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, basket.ErrLineItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// List returns all line items, newest first
func (r *GormLineItemRepository) List(ctx context.Context) ([]*basket.LineItem, error) {
	var items []*basket.LineItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a line item
func (r *GormLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&basket.LineItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return basket.ErrLineItemNotFound
	}
	return nil
}

var _ basket.Repository = (*GormLineItemRepository)(nil)
