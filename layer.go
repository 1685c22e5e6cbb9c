package weft

import "sort"

// layer is one compositing surface: a subtree painted into its own buffer
// and merged back over the frame by z-order. The base tree is itself a
// layer at z 0, so negative z content can sit underneath it.
type layer struct {
	z    int
	x, y int // merge origin in frame coordinates
	buf  *Buffer
	hits *HitMap
}

// layerArena recycles layer buffers across frames. A frame acquires
// buffers while painting and releases the whole set after the merge, so
// steady-state composition allocates nothing.
type layerArena struct {
	free []*Buffer
}

// maxPooledLayers bounds how many buffers the arena keeps between frames.
const maxPooledLayers = 16

// acquire returns a buffer of exactly the requested size with every cell
// untouched. Layer buffers start untouched rather than blank so the merge
// can tell painted cells from never-written ones.
func (a *layerArena) acquire(w, h int) *Buffer {
	for i, b := range a.free {
		if b.w == w && b.h == h {
			last := len(a.free) - 1
			a.free[i] = a.free[last]
			a.free = a.free[:last]
			b.ClearUntouched()
			return b
		}
	}
	return NewLayerBuffer(w, h)
}

func (a *layerArena) release(b *Buffer) {
	if b == nil {
		return
	}
	if len(a.free) < maxPooledLayers {
		a.free = append(a.free, b)
	}
}

// mergeLayers blits every layer onto dst back to front: ascending z, and
// document order within equal z. Untouched cells are skipped so content
// from lower layers shows through, and touched cells replace the
// destination wholesale.
func mergeLayers(dst *Buffer, layers []layer) {
	sort.SliceStable(layers, func(i, j int) bool { return layers[i].z < layers[j].z })
	for _, l := range layers {
		dst.Blit(l.buf, l.x, l.y, false)
	}
}
