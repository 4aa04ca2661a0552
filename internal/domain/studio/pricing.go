package studio

import (
	"github.com/shopspring/decimal"
	"github.com/teeforge/backend/internal/domain/shared/valueobject"
)

// PriceList holds the tariff the cost engine prices against
type PriceList struct {
	BaseFee       decimal.Decimal
	TextPerChar   decimal.Decimal
	UploadedImage decimal.Decimal
	TemplateImage decimal.Decimal
}

// DefaultPriceList returns the standard storefront tariff
func DefaultPriceList() PriceList {
	return PriceList{
		BaseFee:       decimal.NewFromFloat(6.00),
		TextPerChar:   decimal.NewFromFloat(0.10),
		UploadedImage: decimal.NewFromFloat(5.00),
		TemplateImage: decimal.NewFromFloat(3.00),
	}
}

// QuoteLine is one priced component of a quote
type QuoteLine struct {
	Label  string            `json:"label"`
	Kind   string            `json:"kind"`
	Amount valueobject.Money `json:"amount"`
}

// Quote is the full price of a design at one instant: the garment base
// fee plus the creation-time cost of every element on the scene.
type Quote struct {
	Base  valueobject.Money `json:"base"`
	Extra valueobject.Money `json:"extra"`
	Total valueobject.Money `json:"total"`
	Lines []QuoteLine       `json:"lines"`
}

// CostEngine derives quotes and creation-time element costs from a price
// list. It is stateless apart from the tariff: quoting the same scene
// twice yields the same quote, and element order does not affect totals.
type CostEngine struct {
	prices PriceList
}

// NewCostEngine creates a cost engine over the given tariff
func NewCostEngine(prices PriceList) *CostEngine {
	return &CostEngine{prices: prices}
}

// Prices returns the tariff the engine quotes against
func (c *CostEngine) Prices() PriceList {
	return c.prices
}

// TextCost prices a new text element from its initial content.
// The result is fixed onto the element at creation and never recomputed.
func (c *CostEngine) TextCost(content string) decimal.Decimal {
	runes := []rune(content)
	return c.prices.TextPerChar.Mul(decimal.NewFromInt(int64(len(runes))))
}

// ImageCost prices a new image element from its origin
func (c *CostEngine) ImageCost(origin ImageOrigin) decimal.Decimal {
	if origin == ImageOriginUploaded {
		return c.prices.UploadedImage
	}
	return c.prices.TemplateImage
}

// QuoteScene prices the whole scene: base fee plus the stored cost of
// every element. Placement, content edits and z-order are invisible to
// the quote; only stored costs count.
func (c *CostEngine) QuoteScene(scene *Scene) (Quote, error) {
	base, err := valueobject.NewMoney(c.prices.BaseFee, valueobject.DefaultCurrency)
	if err != nil {
		return Quote{}, err
	}

	extraAmount := decimal.Zero
	lines := []QuoteLine{{Label: "Base garment", Kind: "base", Amount: base}}
	for _, el := range scene.Elements() {
		amount, err := valueobject.NewMoney(el.Cost(), valueobject.DefaultCurrency)
		if err != nil {
			return Quote{}, err
		}
		lines = append(lines, QuoteLine{
			Label:  elementLabel(el),
			Kind:   string(el.Kind),
			Amount: amount,
		})
		extraAmount = extraAmount.Add(el.Cost())
	}

	extra, err := valueobject.NewMoney(extraAmount, valueobject.DefaultCurrency)
	if err != nil {
		return Quote{}, err
	}
	total, err := base.Add(extra)
	if err != nil {
		return Quote{}, err
	}

	return Quote{Base: base, Extra: extra, Total: total, Lines: lines}, nil
}

func elementLabel(el *Element) string {
	if el.Kind == ElementKindText && el.Text != nil {
		return "Text: " + truncateLabel(el.Text.Content, 24)
	}
	if el.Image != nil && el.Image.Origin == ImageOriginUploaded {
		return "Uploaded image"
	}
	return "Template logo"
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
