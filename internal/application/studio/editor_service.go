package studio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teeforge/backend/internal/domain/shared"
	"github.com/teeforge/backend/internal/domain/studio"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a design session id is unknown or
// already closed
var ErrSessionNotFound = shared.NewDomainError("SESSION_NOT_FOUND", "Design session not found")

// EditorSession is one live design session: a scene, its undo/redo
// history and the current quote. All access goes through the session
// mutex; the session context is cancelled on teardown so slow asset
// fetches started for this session are discarded.
type EditorSession struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu      sync.Mutex
	scene   *studio.Scene
	history *studio.History
	quote   studio.Quote

	// restoring suppresses history pushes while a snapshot is being
	// applied, so restore side effects cannot spawn new history entries
	restoring bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the session-scoped context. It is cancelled when the
// session closes.
func (s *EditorSession) Context() context.Context {
	return s.ctx
}

// Scene returns the live scene. Callers must hold the session via
// EditorService.WithSession.
func (s *EditorSession) Scene() *studio.Scene {
	return s.scene
}

// Quote returns the current quote
func (s *EditorSession) Quote() studio.Quote {
	return s.quote
}

// EditorService owns all live design sessions and applies editor
// operations to them. Every mutating operation commits synchronously:
// snapshot pushed, quote recomputed, state returned. There is no window
// where the returned state and the history disagree.
type EditorService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*EditorSession

	engine       *studio.CostEngine
	publisher    shared.EventPublisher
	logger       *zap.Logger
	historyLimit int
}

// NewEditorService creates an editor service with the given cost engine
func NewEditorService(engine *studio.CostEngine, publisher shared.EventPublisher, logger *zap.Logger, historyLimit int) *EditorService {
	if historyLimit <= 0 {
		historyLimit = studio.DefaultHistoryLimit
	}
	return &EditorService{
		sessions:     make(map[uuid.UUID]*EditorSession),
		engine:       engine,
		publisher:    publisher,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// CreateSession opens a new design session on the given base product
func (s *EditorService) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionStateResponse, error) {
	scene, err := studio.NewScene(req.Product.toDomain())
	if err != nil {
		return nil, err
	}
	initial, err := scene.Serialize()
	if err != nil {
		return nil, err
	}
	quote, err := s.engine.QuoteScene(scene)
	if err != nil {
		return nil, err
	}

	sessCtx, cancel := context.WithCancel(context.Background())
	sess := &EditorSession{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		scene:     scene,
		history:   studio.NewHistory(initial, s.historyLimit),
		quote:     quote,
		ctx:       sessCtx,
		cancel:    cancel,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("design session opened",
		zap.String("session_id", sess.ID.String()),
		zap.String("fit_style", req.Product.FitStyle))

	return s.stateLocked(sess), nil
}

// GetState returns the current editor state of a session
func (s *EditorService) GetState(ctx context.Context, sessionID uuid.UUID) (*SessionStateResponse, error) {
	var state *SessionStateResponse
	err := s.WithSession(sessionID, func(sess *EditorSession) error {
		state = s.stateLocked(sess)
		return nil
	})
	return state, err
}

// AddText places a new text element. Its cost is derived from the
// initial content and fixed onto the element permanently.
func (s *EditorService) AddText(ctx context.Context, sessionID uuid.UUID, req AddTextRequest) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		attrs := studio.TextAttrs{
			Content:    req.Content,
			FontFamily: req.FontFamily,
			FillColor:  req.FillColor,
			FontSize:   req.FontSize,
		}
		el, err := studio.NewTextElement(attrs, placementOrDefault(req.Placement), s.engine.TextCost(req.Content))
		if err != nil {
			return err
		}
		sess.scene.AddElement(el)
		return nil
	})
}

// AddImage places a new image element priced by its origin
func (s *EditorService) AddImage(ctx context.Context, sessionID uuid.UUID, req AddImageRequest) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		origin := studio.ImageOrigin(req.Origin)
		attrs := studio.ImageAttrs{SourceRef: req.SourceRef, Origin: origin}
		el, err := studio.NewImageElement(attrs, placementOrDefault(req.Placement), s.engine.ImageCost(origin))
		if err != nil {
			return err
		}
		sess.scene.AddElement(el)
		return nil
	})
}

// UpdateElement applies a partial update to an element. The element's
// stored cost is never touched.
func (s *EditorService) UpdateElement(ctx context.Context, sessionID, elementID uuid.UUID, req UpdateElementRequest) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		patch := studio.ElementPatch{
			Content:    req.Content,
			FontFamily: req.FontFamily,
			FillColor:  req.FillColor,
			FontSize:   req.FontSize,
		}
		if req.Placement != nil {
			placement := req.Placement.toDomain()
			patch.Placement = &placement
		}
		return sess.scene.UpdateElement(elementID, patch)
	})
}

// RemoveElement deletes an element from the scene
func (s *EditorService) RemoveElement(ctx context.Context, sessionID, elementID uuid.UUID) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		return sess.scene.RemoveElement(elementID)
	})
}

// ReorderElement moves an element in the z-order
func (s *EditorService) ReorderElement(ctx context.Context, sessionID, elementID uuid.UUID, req ReorderElementRequest) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		return sess.scene.MoveElement(elementID, req.ToIndex)
	})
}

// SetProduct switches the base garment of the session
func (s *EditorService) SetProduct(ctx context.Context, sessionID uuid.UUID, req ProductDTO) (*SessionStateResponse, error) {
	return s.mutate(sessionID, func(sess *EditorSession) error {
		return sess.scene.SetProduct(req.toDomain())
	})
}

// Undo steps the session back one snapshot. If the target snapshot
// cannot be restored the live scene and the history cursor are both
// left unchanged.
func (s *EditorService) Undo(ctx context.Context, sessionID uuid.UUID) (*SessionStateResponse, error) {
	return s.restore(sessionID, func(sess *EditorSession) error {
		return sess.history.Undo(sess.scene.Restore)
	})
}

// Redo steps the session forward one snapshot
func (s *EditorService) Redo(ctx context.Context, sessionID uuid.UUID) (*SessionStateResponse, error) {
	return s.restore(sessionID, func(sess *EditorSession) error {
		return sess.history.Redo(sess.scene.Restore)
	})
}

// Reset clears the canvas back to an empty scene on the current garment
// and drops all history
func (s *EditorService) Reset(ctx context.Context, sessionID uuid.UUID) (*SessionStateResponse, error) {
	var state *SessionStateResponse
	err := s.WithSession(sessionID, func(sess *EditorSession) error {
		fresh, err := studio.NewScene(sess.scene.Product())
		if err != nil {
			return err
		}
		initial, err := fresh.Serialize()
		if err != nil {
			return err
		}
		quote, err := s.engine.QuoteScene(fresh)
		if err != nil {
			return err
		}

		sess.scene = fresh
		sess.history.Reset(initial)
		sess.quote = quote
		state = s.stateLocked(sess)
		return nil
	})
	return state, err
}

// CloseSession tears a session down. The session context is cancelled so
// in-flight work scoped to it is discarded.
func (s *EditorService) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.cancel()
	s.logger.Info("design session closed", zap.String("session_id", sessionID.String()))
	return nil
}

// SessionCount returns the number of live sessions
func (s *EditorService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// WithSession runs fn with the session locked
func (s *EditorService) WithSession(sessionID uuid.UUID, fn func(*EditorSession) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// mutate applies a scene mutation and commits it: snapshot pushed onto
// the history, quote recomputed, events published. A failed mutation
// commits nothing.
func (s *EditorService) mutate(sessionID uuid.UUID, fn func(*EditorSession) error) (*SessionStateResponse, error) {
	var state *SessionStateResponse
	err := s.WithSession(sessionID, func(sess *EditorSession) error {
		if err := fn(sess); err != nil {
			return err
		}
		if err := s.commit(sess); err != nil {
			return err
		}
		state = s.stateLocked(sess)
		return nil
	})
	return state, err
}

// restore runs an undo/redo step and recomputes the quote from the
// restored scene. No snapshot is pushed. The restoring flag is cleared
// by defer so the session keeps committing even if the step panics.
func (s *EditorService) restore(sessionID uuid.UUID, fn func(*EditorSession) error) (*SessionStateResponse, error) {
	var state *SessionStateResponse
	err := s.WithSession(sessionID, func(sess *EditorSession) error {
		sess.restoring = true
		defer func() {
			sess.restoring = false
		}()
		if err := fn(sess); err != nil {
			return err
		}

		quote, err := s.engine.QuoteScene(sess.scene)
		if err != nil {
			return err
		}
		sess.quote = quote
		s.publishEvents(sess)
		state = s.stateLocked(sess)
		return nil
	})
	return state, err
}

func (s *EditorService) commit(sess *EditorSession) error {
	if sess.restoring {
		return nil
	}
	snap, err := sess.scene.Serialize()
	if err != nil {
		return err
	}
	quote, err := s.engine.QuoteScene(sess.scene)
	if err != nil {
		return err
	}
	sess.history.Push(snap)
	sess.quote = quote
	s.publishEvents(sess)
	return nil
}

// publishEvents drains the scene's domain events onto the bus. Publish
// failures are logged, not surfaced: the edit already happened.
func (s *EditorService) publishEvents(sess *EditorSession) {
	events := sess.scene.GetDomainEvents()
	sess.scene.ClearDomainEvents()
	if s.publisher == nil {
		return
	}
	for _, event := range events {
		if err := s.publisher.Publish(sess.ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
}

func (s *EditorService) stateLocked(sess *EditorSession) *SessionStateResponse {
	elements := sess.scene.Elements()
	views := make([]ElementView, 0, len(elements))
	for _, el := range elements {
		views = append(views, elementViewFromDomain(el))
	}
	return &SessionStateResponse{
		SessionID: sess.ID.String(),
		Product:   productFromDomain(sess.scene.Product()),
		Elements:  views,
		Quote:     quoteViewFromDomain(sess.quote),
		CanUndo:   sess.history.CanUndo(),
		CanRedo:   sess.history.CanRedo(),
	}
}

func placementOrDefault(p *PlacementDTO) studio.Placement {
	if p == nil {
		return studio.DefaultPlacement()
	}
	return p.toDomain()
}
