package studio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostEngineElementCosts(t *testing.T) {
	engine := NewCostEngine(DefaultPriceList())

	t.Run("text cost scales with character count", func(t *testing.T) {
		assert.Equal(t, "0.5", engine.TextCost("Hello").String())
		assert.Equal(t, "0", engine.TextCost("").String())
	})

	t.Run("text cost counts runes not bytes", func(t *testing.T) {
		assert.Equal(t, "0.4", engine.TextCost("héll").String())
	})

	t.Run("image cost depends on origin", func(t *testing.T) {
		assert.Equal(t, "5", engine.ImageCost(ImageOriginUploaded).String())
		assert.Equal(t, "3", engine.ImageCost(ImageOriginTemplate).String())
	})
}

func TestCostEngineQuoteScene(t *testing.T) {
	engine := NewCostEngine(DefaultPriceList())

	t.Run("empty scene is just the base fee", func(t *testing.T) {
		scene, err := NewScene(testProduct())
		require.NoError(t, err)

		quote, err := engine.QuoteScene(scene)
		require.NoError(t, err)
		assert.Equal(t, "6.00", quote.Total.StringFixed(2))
		assert.Equal(t, "0.00", quote.Extra.StringFixed(2))
		require.Len(t, quote.Lines, 1)
		assert.Equal(t, "base", quote.Lines[0].Kind)
	})

	t.Run("sums stored element costs", func(t *testing.T) {
		scene, err := NewScene(testProduct())
		require.NoError(t, err)
		scene.AddElement(mustTextElement(t, "Hello", 0.50))
		scene.AddElement(mustImageElement(t, ImageOriginUploaded, 5.00))
		scene.AddElement(mustImageElement(t, ImageOriginTemplate, 3.00))

		quote, err := engine.QuoteScene(scene)
		require.NoError(t, err)
		assert.Equal(t, "14.50", quote.Total.StringFixed(2))
		assert.Equal(t, "8.50", quote.Extra.StringFixed(2))
		assert.Len(t, quote.Lines, 4)
	})

	t.Run("editing text does not change the quote", func(t *testing.T) {
		scene, err := NewScene(testProduct())
		require.NoError(t, err)
		el := mustTextElement(t, "ab", 0.20)
		scene.AddElement(el)

		before, err := engine.QuoteScene(scene)
		require.NoError(t, err)

		longer := "a dramatically longer replacement text"
		require.NoError(t, scene.UpdateElement(el.ID, ElementPatch{Content: &longer}))

		after, err := engine.QuoteScene(scene)
		require.NoError(t, err)
		assert.True(t, before.Total.Equals(after.Total))
	})

	t.Run("quote is order invariant", func(t *testing.T) {
		scene, err := NewScene(testProduct())
		require.NoError(t, err)
		a := mustTextElement(t, "a", 0.10)
		b := mustImageElement(t, ImageOriginUploaded, 5.00)
		scene.AddElement(a)
		scene.AddElement(b)

		before, err := engine.QuoteScene(scene)
		require.NoError(t, err)

		require.NoError(t, scene.MoveElement(b.ID, 0))

		after, err := engine.QuoteScene(scene)
		require.NoError(t, err)
		assert.True(t, before.Total.Equals(after.Total))
	})

	t.Run("quote survives a snapshot round trip", func(t *testing.T) {
		scene, err := NewScene(testProduct())
		require.NoError(t, err)
		scene.AddElement(mustTextElement(t, "Hello", 0.50))

		before, err := engine.QuoteScene(scene)
		require.NoError(t, err)

		snap, err := scene.Serialize()
		require.NoError(t, err)
		require.NoError(t, scene.Restore(snap))

		after, err := engine.QuoteScene(scene)
		require.NoError(t, err)
		assert.True(t, before.Total.Equals(after.Total))
	})
}

func TestCustomPriceList(t *testing.T) {
	engine := NewCostEngine(PriceList{
		BaseFee:       decimal.NewFromInt(10),
		TextPerChar:   decimal.NewFromFloat(0.25),
		UploadedImage: decimal.NewFromInt(8),
		TemplateImage: decimal.NewFromInt(4),
	})

	assert.Equal(t, "1", engine.TextCost("abcd").String())
	assert.Equal(t, "8", engine.ImageCost(ImageOriginUploaded).String())

	scene, err := NewScene(testProduct())
	require.NoError(t, err)
	quote, err := engine.QuoteScene(scene)
	require.NoError(t, err)
	assert.Equal(t, "10.00", quote.Total.StringFixed(2))
}
