package waveview

// highlighter owns the flat per-point highlight flag buffer mirroring the
// dataset layout. The buffer length is fixed at construction; only contents
// change.
type highlighter struct {
	ds   *Dataset
	mask []int32
	rows []int // currently highlighted reordered rows
}

func newHighlighter(ds *Dataset) *highlighter {
	return &highlighter{
		ds:   ds,
		mask: make([]int32, ds.NPoints()),
	}
}

// set replaces the highlighted spike rows and rebuilds the flag buffer.
// Returns whether the rendering collaborator needs a buffer update: setting
// an empty set when nothing was highlighted is a no-op.
func (h *highlighter) set(rows []int) (update bool) {
	if len(rows) == 0 {
		update = len(h.rows) > 0
		for i := range h.mask {
			h.mask[i] = 0
		}
		h.rows = nil
		return update
	}

	for i := range h.mask {
		h.mask[i] = 0
	}
	nt := h.ds.NSamples
	span := h.ds.NSpikes * nt
	for _, row := range rows {
		for ch := 0; ch < h.ds.NChannels; ch++ {
			base := ch*span + row*nt
			for s := 0; s < nt; s++ {
				h.mask[base+s] = 1
			}
		}
	}
	h.rows = append(h.rows[:0], rows...)
	return true
}

// flags exposes the live buffer; callers must not mutate it.
func (h *highlighter) flags() []int32 { return h.mask }
