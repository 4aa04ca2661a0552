package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	basketapp "github.com/teeforge/backend/internal/application/basket"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/domain/basket"
	"github.com/teeforge/backend/internal/domain/studio"
	"github.com/teeforge/backend/internal/infrastructure/storage"
	"github.com/teeforge/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

type stubRenderer struct{}

func (stubRenderer) Export(ctx context.Context, scene *studio.Scene) (*studioapp.DesignExport, error) {
	crops := make(map[string][]byte)
	for _, el := range scene.Elements() {
		crops[el.ID.String()] = []byte("crop")
	}
	return &studioapp.DesignExport{
		Composite:    []byte("composite"),
		Overlay:      []byte("overlay"),
		ElementCrops: crops,
	}, nil
}

type memoryBasketRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*basket.LineItem
}

func newMemoryBasketRepo() *memoryBasketRepo {
	return &memoryBasketRepo{items: make(map[uuid.UUID]*basket.LineItem)}
}

func (r *memoryBasketRepo) Save(ctx context.Context, item *basket.LineItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *memoryBasketRepo) FindByID(ctx context.Context, id uuid.UUID) (*basket.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, basket.ErrLineItemNotFound
	}
	return item, nil
}

func (r *memoryBasketRepo) List(ctx context.Context) ([]*basket.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]*basket.LineItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *memoryBasketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return basket.ErrLineItemNotFound
	}
	delete(r.items, id)
	return nil
}

type studioFixture struct {
	engine *gin.Engine
	repo   *memoryBasketRepo
}

func newStudioFixture(t *testing.T) *studioFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	costEngine := studio.NewCostEngine(studio.DefaultPriceList())
	editor := studioapp.NewEditorService(costEngine, nil, zap.NewNop(), 50)
	repo := newMemoryBasketRepo()
	checkout := studioapp.NewCheckoutService(
		editor, costEngine, stubRenderer{}, storage.NewMemoryObjectStorage(), repo, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewStudioHandler(editor, checkout).RegisterRoutes(api)
	NewBasketHandler(basketapp.NewBasketService(repo, zap.NewNop())).RegisterRoutes(api)

	return &studioFixture{engine: engine, repo: repo}
}

func (f *studioFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func (f *studioFixture) createSession(t *testing.T) string {
	t.Helper()
	w, resp := f.do(t, http.MethodPost, "/api/v1/studio/sessions", gin.H{
		"product": gin.H{
			"fit_style":  "slim",
			"swatch_id":  "sw-1",
			"color_name": "White",
			"color_hex":  "#FFFFFF",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	state := decodeState(t, resp)
	return state.SessionID
}

func decodeState(t *testing.T, resp dto.Response) studioapp.SessionStateResponse {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var state studioapp.SessionStateResponse
	require.NoError(t, json.Unmarshal(data, &state))
	return state
}

func TestStudioSessionLifecycle(t *testing.T) {
	f := newStudioFixture(t)

	t.Run("create returns an empty scene quoted at the base fee", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPost, "/api/v1/studio/sessions", gin.H{
			"product": gin.H{"fit_style": "oversized", "color_hex": "#101820"},
		})
		require.Equal(t, http.StatusCreated, w.Code)

		state := decodeState(t, resp)
		assert.Empty(t, state.Elements)
		assert.Equal(t, "6.00", state.Quote.Total)
		assert.False(t, state.CanUndo)
	})

	t.Run("invalid fit style is rejected", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPost, "/api/v1/studio/sessions", gin.H{
			"product": gin.H{"fit_style": "boxy"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
	})

	t.Run("unknown session is a 404", func(t *testing.T) {
		w, resp := f.do(t, http.MethodGet, "/api/v1/studio/sessions/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("quote endpoint returns the breakdown", func(t *testing.T) {
		id := f.createSession(t)
		base := "/api/v1/studio/sessions/" + id

		w, _ := f.do(t, http.MethodPost, base+"/elements/text", gin.H{"content": "HELLO"})
		require.Equal(t, http.StatusCreated, w.Code)

		w, resp := f.do(t, http.MethodGet, base+"/quote", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var quote studioapp.QuoteView
		require.NoError(t, json.Unmarshal(data, &quote))

		assert.Equal(t, "6.00", quote.Base)
		assert.Equal(t, "0.50", quote.Extra)
		assert.Equal(t, "6.50", quote.Total)
		require.Len(t, quote.Lines, 2)
		assert.Equal(t, "base", quote.Lines[0].Kind)
		assert.Equal(t, "text", quote.Lines[1].Kind)
	})

	t.Run("delete closes the session", func(t *testing.T) {
		id := f.createSession(t)

		w, _ := f.do(t, http.MethodDelete, "/api/v1/studio/sessions/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = f.do(t, http.MethodGet, "/api/v1/studio/sessions/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStudioElementOperations(t *testing.T) {
	f := newStudioFixture(t)
	id := f.createSession(t)
	base := "/api/v1/studio/sessions/" + id

	w, resp := f.do(t, http.MethodPost, base+"/elements/text", gin.H{
		"content": "HELLO",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	state := decodeState(t, resp)
	require.Len(t, state.Elements, 1)
	assert.Equal(t, "0.50", state.Elements[0].Cost)
	assert.Equal(t, "6.50", state.Quote.Total)
	textID := state.Elements[0].ID

	w, resp = f.do(t, http.MethodPost, base+"/elements/image", gin.H{
		"source_ref": "uploads/art.png",
		"origin":     "uploaded",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	state = decodeState(t, resp)
	require.Len(t, state.Elements, 2)
	assert.Equal(t, "11.50", state.Quote.Total)

	t.Run("editing text does not reprice it", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPatch, base+"/elements/"+textID, gin.H{
			"content": "a much longer line of text",
		})
		require.Equal(t, http.StatusOK, w.Code)
		state := decodeState(t, resp)
		assert.Equal(t, "0.50", state.Elements[0].Cost)
		assert.Equal(t, "11.50", state.Quote.Total)
	})

	t.Run("reorder moves z-order", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPost, base+"/elements/"+textID+"/reorder", gin.H{
			"to_index": 1,
		})
		require.Equal(t, http.StatusOK, w.Code)
		state := decodeState(t, resp)
		assert.Equal(t, textID, state.Elements[1].ID)
	})

	t.Run("unknown element is a 404", func(t *testing.T) {
		w, _ := f.do(t, http.MethodDelete, base+"/elements/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("undo and redo walk the history", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPost, base+"/undo", nil)
		require.Equal(t, http.StatusOK, w.Code)
		state := decodeState(t, resp)
		assert.True(t, state.CanRedo)

		w, resp = f.do(t, http.MethodPost, base+"/redo", nil)
		require.Equal(t, http.StatusOK, w.Code)
		state = decodeState(t, resp)
		assert.Len(t, state.Elements, 2)
	})

	t.Run("undo past the initial state is a conflict", func(t *testing.T) {
		// Reset leaves nothing to undo.
		w, _ := f.do(t, http.MethodPost, base+"/reset", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w, resp := f.do(t, http.MethodPost, base+"/undo", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
	})
}

func TestStudioCheckout(t *testing.T) {
	f := newStudioFixture(t)
	id := f.createSession(t)
	base := "/api/v1/studio/sessions/" + id

	w, _ := f.do(t, http.MethodPost, base+"/elements/text", gin.H{"content": "HELLO"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("invalid size is rejected", func(t *testing.T) {
		w, _ := f.do(t, http.MethodPost, base+"/checkout", gin.H{
			"name": "My Tee", "size": "XXS",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("checkout creates a basket entry", func(t *testing.T) {
		w, resp := f.do(t, http.MethodPost, base+"/checkout", gin.H{
			"name": "My Tee", "size": "M", "client_total": "6.50",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var out studioapp.CheckoutResponse
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "6.50", out.Total)
		assert.Equal(t, fmt.Sprintf("designs/%s/design.png", id), out.ImageKey)

		w, resp = f.do(t, http.MethodGet, "/api/v1/basket/items/"+out.LineItemID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})
}

func TestBasketEndpoints(t *testing.T) {
	f := newStudioFixture(t)

	t.Run("empty basket lists nothing", func(t *testing.T) {
		w, resp := f.do(t, http.MethodGet, "/api/v1/basket/items", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})

	t.Run("missing item is a 404", func(t *testing.T) {
		w, resp := f.do(t, http.MethodGet, "/api/v1/basket/items/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("delete removes a checked-out item", func(t *testing.T) {
		id := f.createSession(t)
		_, resp := f.do(t, http.MethodPost, "/api/v1/studio/sessions/"+id+"/checkout", gin.H{
			"name": "Plain Tee", "size": "L",
		})
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var out studioapp.CheckoutResponse
		require.NoError(t, json.Unmarshal(data, &out))

		w, _ := f.do(t, http.MethodDelete, "/api/v1/basket/items/"+out.LineItemID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = f.do(t, http.MethodGet, "/api/v1/basket/items/"+out.LineItemID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
