package studio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teeforge/backend/internal/domain/studio"
	"go.uber.org/zap"
)

func newTestEditor() *EditorService {
	engine := studio.NewCostEngine(studio.DefaultPriceList())
	return NewEditorService(engine, nil, zap.NewNop(), 50)
}

func slimSessionRequest() CreateSessionRequest {
	return CreateSessionRequest{Product: ProductDTO{
		FitStyle:   "slim",
		SwatchID:   "swatch-white",
		ColorName:  "White",
		ColorHex:   "#FFFFFF",
		GarmentRef: "garments/slim-white.png",
	}}
}

func TestEditorServiceCreateSession(t *testing.T) {
	svc := newTestEditor()

	state, err := svc.CreateSession(context.Background(), slimSessionRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, state.SessionID)
	assert.Empty(t, state.Elements)
	assert.Equal(t, "6.00", state.Quote.Total)
	assert.False(t, state.CanUndo)
	assert.False(t, state.CanRedo)
	assert.Equal(t, 1, svc.SessionCount())

	t.Run("rejects bad fit style", func(t *testing.T) {
		req := slimSessionRequest()
		req.Product.FitStyle = "boxy"
		_, err := svc.CreateSession(context.Background(), req)
		require.Error(t, err)
	})
}

func TestEditorServiceUnknownSession(t *testing.T) {
	svc := newTestEditor()
	_, err := svc.GetState(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.CloseSession(context.Background(), uuid.New()), ErrSessionNotFound)
}

func TestEditorServiceAddText(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	state, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "Hello"})
	require.NoError(t, err)
	require.Len(t, state.Elements, 1)
	assert.Equal(t, "0.50", state.Elements[0].Cost)
	assert.Equal(t, "6.50", state.Quote.Total)
	assert.True(t, state.CanUndo)

	t.Run("empty content commits nothing", func(t *testing.T) {
		_, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "  "})
		require.Error(t, err)

		state, err := svc.GetState(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, state.Elements, 1)
		assert.Equal(t, "6.50", state.Quote.Total)
	})
}

func TestEditorServiceAddImage(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	state, err := svc.AddImage(ctx, sessionID, AddImageRequest{SourceRef: "uploads/a.png", Origin: "uploaded"})
	require.NoError(t, err)
	assert.Equal(t, "11.00", state.Quote.Total)

	state, err = svc.AddImage(ctx, sessionID, AddImageRequest{SourceRef: "logos/b.png", Origin: "template"})
	require.NoError(t, err)
	assert.Equal(t, "14.00", state.Quote.Total)
}

func TestEditorServiceUpdateElement(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	state, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "ab"})
	require.NoError(t, err)
	elementID := uuid.MustParse(state.Elements[0].ID)

	t.Run("editing content keeps the original cost", func(t *testing.T) {
		longer := "a much longer piece of text"
		state, err := svc.UpdateElement(ctx, sessionID, elementID, UpdateElementRequest{Content: &longer})
		require.NoError(t, err)
		assert.Equal(t, longer, state.Elements[0].Text.Content)
		assert.Equal(t, "0.20", state.Elements[0].Cost)
		assert.Equal(t, "6.20", state.Quote.Total)
	})

	t.Run("moving an element keeps the quote", func(t *testing.T) {
		state, err := svc.UpdateElement(ctx, sessionID, elementID, UpdateElementRequest{
			Placement: &PlacementDTO{X: 10, Y: 20, ScaleX: 2, ScaleY: 2, Rotation: 30},
		})
		require.NoError(t, err)
		assert.Equal(t, float64(10), state.Elements[0].Placement.X)
		assert.Equal(t, "6.20", state.Quote.Total)
	})

	t.Run("unknown element", func(t *testing.T) {
		_, err := svc.UpdateElement(ctx, sessionID, uuid.New(), UpdateElementRequest{})
		assert.ErrorIs(t, err, studio.ErrElementNotFound)
	})
}

func TestEditorServiceRemoveAndReorder(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	a, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "a"})
	require.NoError(t, err)
	b, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "b"})
	require.NoError(t, err)

	firstID := uuid.MustParse(a.Elements[0].ID)
	secondID := uuid.MustParse(b.Elements[1].ID)

	state, err := svc.ReorderElement(ctx, sessionID, secondID, ReorderElementRequest{ToIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, secondID.String(), state.Elements[0].ID)

	state, err = svc.RemoveElement(ctx, sessionID, firstID)
	require.NoError(t, err)
	require.Len(t, state.Elements, 1)
	assert.Equal(t, "6.10", state.Quote.Total)
}

func TestEditorServiceUndoRedo(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	_, err = svc.AddText(ctx, sessionID, AddTextRequest{Content: "Hello"})
	require.NoError(t, err)

	t.Run("undo removes the element and reprices", func(t *testing.T) {
		state, err := svc.Undo(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, state.Elements)
		assert.Equal(t, "6.00", state.Quote.Total)
		assert.False(t, state.CanUndo)
		assert.True(t, state.CanRedo)
	})

	t.Run("redo restores the element with its cost", func(t *testing.T) {
		state, err := svc.Redo(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, state.Elements, 1)
		assert.Equal(t, "0.50", state.Elements[0].Cost)
		assert.Equal(t, "6.50", state.Quote.Total)
		assert.False(t, state.CanRedo)
	})

	t.Run("undo at the floor fails cleanly", func(t *testing.T) {
		_, err := svc.Undo(ctx, sessionID)
		require.NoError(t, err)
		_, err = svc.Undo(ctx, sessionID)
		assert.ErrorIs(t, err, studio.ErrNothingToUndo)
	})

	t.Run("a new edit discards the redo branch", func(t *testing.T) {
		_, err := svc.AddText(ctx, sessionID, AddTextRequest{Content: "new branch"})
		require.NoError(t, err)
		state, err := svc.GetState(ctx, sessionID)
		require.NoError(t, err)
		assert.False(t, state.CanRedo)
	})
}

func TestEditorServiceRestoreFailureKeepsSessionUsable(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	id := uuid.MustParse(created.SessionID)

	t.Run("a panicking restore step does not wedge the session", func(t *testing.T) {
		require.Panics(t, func() {
			_, _ = svc.restore(id, func(*EditorSession) error {
				panic("corrupted history entry")
			})
		})

		// Commits must still push history afterwards.
		state, err := svc.AddText(ctx, id, AddTextRequest{Content: "HI"})
		require.NoError(t, err)
		assert.True(t, state.CanUndo)
	})

	t.Run("a failing restore step surfaces its error and commits nothing", func(t *testing.T) {
		_, err := svc.restore(id, func(*EditorSession) error {
			return studio.ErrCorruptSnapshot
		})
		require.ErrorIs(t, err, studio.ErrCorruptSnapshot)

		state, err := svc.AddText(ctx, id, AddTextRequest{Content: "YO"})
		require.NoError(t, err)
		assert.True(t, state.CanUndo)
	})
}

func TestEditorServiceReset(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	_, err = svc.AddText(ctx, sessionID, AddTextRequest{Content: "Hello"})
	require.NoError(t, err)

	state, err := svc.Reset(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, state.Elements)
	assert.Equal(t, "6.00", state.Quote.Total)
	assert.False(t, state.CanUndo)
	assert.False(t, state.CanRedo)
	assert.Equal(t, "slim", state.Product.FitStyle)
}

func TestEditorServiceCloseSession(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	var sessCtx context.Context
	require.NoError(t, svc.WithSession(sessionID, func(sess *EditorSession) error {
		sessCtx = sess.Context()
		return nil
	}))

	require.NoError(t, svc.CloseSession(ctx, sessionID))
	assert.Equal(t, 0, svc.SessionCount())
	assert.Error(t, sessCtx.Err())

	_, err = svc.GetState(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestEditorServiceSetProduct(t *testing.T) {
	svc := newTestEditor()
	ctx := context.Background()
	created, err := svc.CreateSession(ctx, slimSessionRequest())
	require.NoError(t, err)
	sessionID := uuid.MustParse(created.SessionID)

	_, err = svc.AddText(ctx, sessionID, AddTextRequest{Content: "Hi"})
	require.NoError(t, err)

	next := slimSessionRequest().Product
	next.FitStyle = "oversized"
	next.SwatchID = "swatch-black"
	state, err := svc.SetProduct(ctx, sessionID, next)
	require.NoError(t, err)
	assert.Equal(t, "oversized", state.Product.FitStyle)
	assert.Len(t, state.Elements, 1)

	// Product change participates in history like any edit.
	state, err = svc.Undo(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "slim", state.Product.FitStyle)
}
