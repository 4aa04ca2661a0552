package studio

import "time"

// Snapshot is an immutable serialized copy of a Scene at one instant.
// Snapshots are owned exclusively by the History manager; the payload is
// opaque to everything except Scene.Serialize and Scene.Restore.
type Snapshot struct {
	data    []byte
	takenAt time.Time
}

// newSnapshot wraps serialized scene data
func newSnapshot(data []byte) Snapshot {
	return Snapshot{data: data, takenAt: time.Now()}
}

// Bytes returns a copy of the serialized payload
func (s Snapshot) Bytes() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// TakenAt returns when the snapshot was captured
func (s Snapshot) TakenAt() time.Time {
	return s.takenAt
}

// IsZero reports whether the snapshot holds no data
func (s Snapshot) IsZero() bool {
	return len(s.data) == 0
}

// Equal reports whether two snapshots carry byte-identical scene state
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.data) != len(other.data) {
		return false
	}
	for i := range s.data {
		if s.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
