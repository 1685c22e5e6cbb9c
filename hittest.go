package weft

// HitEntry records where one element was painted during a frame.
type HitEntry struct {
	ID  string
	El  *Element
	Box Rect
}

// HitMap is the per-frame registry of painted regions. Entries are stored
// in paint order, so the topmost element at a point is the last entry that
// contains it. A fresh map is produced by every Compose call; stale maps
// from earlier frames stay valid but describe earlier geometry.
type HitMap struct {
	entries []HitEntry
}

func (m *HitMap) record(el *Element, box Rect) {
	m.entries = append(m.entries, HitEntry{ID: el.id, El: el, Box: box})
}

func (m *HitMap) concat(other *HitMap) {
	m.entries = append(m.entries, other.entries...)
}

// At returns the topmost element painted over the given cell, or nil when
// the point is outside every painted box.
func (m *HitMap) At(x, y int) *Element {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Box.Contains(x, y) {
			return m.entries[i].El
		}
	}
	return nil
}

// Bounds returns the painted box of the element with the given id. When an
// id was painted more than once the most recent paint wins.
func (m *HitMap) Bounds(id string) (Rect, bool) {
	if id == "" {
		return Rect{}, false
	}
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].ID == id {
			return m.entries[i].Box, true
		}
	}
	return Rect{}, false
}

// Len reports how many boxes were painted into the map.
func (m *HitMap) Len() int {
	return len(m.entries)
}
