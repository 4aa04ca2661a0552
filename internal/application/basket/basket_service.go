package basket

import (
	"context"

	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/basket"
	"go.uber.org/zap"
)

// LineItemResponse mirrors one basket entry
type LineItemResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Size         string `json:"size"`
	FitStyle     string `json:"fit_style"`
	ColorName    string `json:"color_name"`
	ColorHex     string `json:"color_hex"`
	Price        string `json:"price"`
	ExtraCost    string `json:"extra_cost"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
	ImageKey     string `json:"image_key"`
	ArchiveKey   string `json:"archive_key"`
	ElementCount int    `json:"element_count"`
}

// BasketService reads and removes basket entries. Entries are created by
// the studio checkout flow, never directly.
type BasketService struct {
	repo   basket.Repository
	logger *zap.Logger
}

// NewBasketService creates a basket service
func NewBasketService(repo basket.Repository, logger *zap.Logger) *BasketService {
	return &BasketService{repo: repo, logger: logger}
}

// List returns all basket entries
func (s *BasketService) List(ctx context.Context) ([]LineItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		resp, err := toResponse(item)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Get returns one basket entry
func (s *BasketService) Get(ctx context.Context, id uuid.UUID) (*LineItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := toResponse(item)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Remove deletes a basket entry
func (s *BasketService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("basket item removed", zap.String("line_item_id", id.String()))
	return nil
}

func toResponse(item *basket.LineItem) (LineItemResponse, error) {
	total, err := item.Total()
	if err != nil {
		return LineItemResponse{}, err
	}
	return LineItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Slug:         item.Slug,
		Size:         item.Size,
		FitStyle:     item.FitStyle,
		ColorName:    item.ColorName,
		ColorHex:     item.ColorHex,
		Price:        item.Price.StringFixed(2),
		ExtraCost:    item.ExtraCost.StringFixed(2),
		Total:        total.StringFixed(2),
		Currency:     item.Currency,
		ImageKey:     item.ImageKey,
		ArchiveKey:   item.ArchiveKey,
		ElementCount: item.ElementCount,
	}, nil
}
