// Package catalog fetches design assets from the content backend.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

var (
	_ studioapp.AssetCatalog  = (*Client)(nil)
	_ studioapp.AssetResolver = (*Client)(nil)
)

// maxAssetBytes caps how much image data one asset fetch may return
const maxAssetBytes = 20 << 20

// Client talks to the content backend's REST API for swatches, template
// logos and raw image assets.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a content backend client
func NewClient(cfg *config.CatalogConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type swatchesPayload struct {
	Data []studioapp.ColorSwatch `json:"data"`
}

type logosPayload struct {
	Data []studioapp.TemplateLogo `json:"data"`
	Meta struct {
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
			Total    int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// Swatches fetches all garment color swatches
func (c *Client) Swatches(ctx context.Context) ([]studioapp.ColorSwatch, error) {
	var payload swatchesPayload
	if err := c.getJSON(ctx, c.baseURL+"/api/swatches", &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// Logos fetches one page of template logos
func (c *Client) Logos(ctx context.Context, page, pageSize int) (studioapp.LogoPage, error) {
	endpoint := fmt.Sprintf("%s/api/logos?page=%s&page_size=%s",
		c.baseURL, strconv.Itoa(page), strconv.Itoa(pageSize))

	var payload logosPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return studioapp.LogoPage{}, err
	}
	return studioapp.LogoPage{
		Items:      payload.Data,
		Page:       payload.Meta.Pagination.Page,
		PageSize:   payload.Meta.Pagination.PageSize,
		TotalItems: payload.Meta.Pagination.Total,
	}, nil
}

// Fetch loads raw image bytes for a source reference. Absolute URLs are
// fetched as-is; relative references are resolved against the content
// backend.
func (c *Client) Fetch(ctx context.Context, sourceRef string) ([]byte, error) {
	target := sourceRef
	if parsed, err := url.Parse(sourceRef); err != nil || !parsed.IsAbs() {
		target = c.baseURL + "/" + strings.TrimLeft(sourceRef, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("asset fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset body: %w", err)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("content backend returned non-200",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}
