package placement

// DefaultHistoryDepth is the number of undo steps kept.
const DefaultHistoryDepth = 20

// Snapshot is a deep copy of a model's parts and screws.
type Snapshot struct {
	Parts  []Part
	Screws []Screw
}

// Snapshot copies the current parts and screws.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{Parts: copyParts(m.parts), Screws: copyScrews(m.screws)}
}

// Restore replaces the model's contents with a copy of s.
func (m *Model) Restore(s Snapshot) {
	m.parts = copyParts(s.Parts)
	m.screws = copyScrews(s.Screws)
	for _, p := range m.parts {
		m.ids.Observe(p.ID)
	}
}

func copyParts(in []Part) []Part {
	if in == nil {
		return nil
	}
	return append([]Part(nil), in...)
}

func copyScrews(in []Screw) []Screw {
	if in == nil {
		return nil
	}
	out := make([]Screw, len(in))
	for i, s := range in {
		if s.PartID != nil {
			id := *s.PartID
			s.PartID = &id
		}
		out[i] = s
	}
	return out
}

// History is a bounded stack of snapshots. Pushing past capacity drops the oldest.
type History struct {
	entries []Snapshot
	start   int
	size    int
}

// NewHistory returns a history holding at most depth snapshots.
func NewHistory(depth int) *History {
	if depth < 1 {
		depth = 1
	}
	return &History{entries: make([]Snapshot, depth)}
}

// Push stores s as the most recent entry.
func (h *History) Push(s Snapshot) {
	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.start+h.size)%capacity] = s
		h.size++
		return
	}
	h.entries[h.start] = s
	h.start = (h.start + 1) % capacity
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (Snapshot, bool) {
	if h.size == 0 {
		return Snapshot{}, false
	}
	i := (h.start + h.size - 1) % len(h.entries)
	s := h.entries[i]
	h.entries[i] = Snapshot{}
	h.size--
	return s, true
}

// Len is the number of stored snapshots.
func (h *History) Len() int {
	return h.size
}

// Reset drops every entry.
func (h *History) Reset() {
	for i := range h.entries {
		h.entries[i] = Snapshot{}
	}
	h.start, h.size = 0, 0
}
