package studio

import "github.com/teeforge/backend/internal/domain/shared"

// DefaultHistoryLimit caps how many snapshots a session keeps
const DefaultHistoryLimit = 50

// History errors
var (
	ErrNothingToUndo = shared.NewDomainError("NOTHING_TO_UNDO", "No earlier state to undo to")
	ErrNothingToRedo = shared.NewDomainError("NOTHING_TO_REDO", "No later state to redo to")
)

// History is a bounded undo/redo stack of scene snapshots. The cursor
// points at the snapshot representing the current live state. Pushing
// after an undo discards the redo branch; when the stack is full the
// oldest snapshot is evicted.
//
// History is not safe for concurrent use; the owning session serializes
// access to it.
type History struct {
	entries []Snapshot
	cursor  int
	limit   int
}

// NewHistory creates a history seeded with the initial scene state.
// The initial snapshot is never evicted into thin air: it simply becomes
// unreachable once the stack rotates past it.
func NewHistory(initial Snapshot, limit int) *History {
	if limit < 2 {
		limit = DefaultHistoryLimit
	}
	return &History{
		entries: []Snapshot{initial},
		cursor:  0,
		limit:   limit,
	}
}

// Push records a new current state. Any snapshots after the cursor
// (the redo branch) are discarded first.
func (h *History) Push(snap Snapshot) {
	h.entries = append(h.entries[:h.cursor+1], snap)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
}

// CanUndo reports whether an earlier snapshot exists
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Undo steps the cursor back one entry and hands the target snapshot to
// the restore callback. The cursor only moves if the restore succeeds,
// so a failed restore leaves both the history and the live state intact.
func (h *History) Undo(restore func(Snapshot) error) error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	if err := restore(h.entries[h.cursor-1]); err != nil {
		return err
	}
	h.cursor--
	return nil
}

// Redo steps the cursor forward one entry, with the same
// restore-then-move contract as Undo.
func (h *History) Redo(restore func(Snapshot) error) error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	if err := restore(h.entries[h.cursor+1]); err != nil {
		return err
	}
	h.cursor++
	return nil
}

// Current returns the snapshot the cursor points at
func (h *History) Current() Snapshot {
	return h.entries[h.cursor]
}

// Reset drops all history and reseeds it with the given snapshot
func (h *History) Reset(initial Snapshot) {
	h.entries = []Snapshot{initial}
	h.cursor = 0
}

// Len returns the number of retained snapshots
func (h *History) Len() int {
	return len(h.entries)
}
