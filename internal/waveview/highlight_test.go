package waveview

import "testing"

func TestHighlightMarksAllChannelsAndSamples(t *testing.T) {
	raw := rawFixture(3, 2, 2, []int{0, 0, 0}, 1)
	ds, err := Organize(raw)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	h := newHighlighter(ds)

	if !h.set([]int{1}) {
		t.Fatal("expected update for non-empty set")
	}
	flags := h.flags()
	span := ds.NSpikes * ds.NSamples
	marked := 0
	for p, f := range flags {
		row := (p % span) / ds.NSamples
		want := int32(0)
		if row == 1 {
			want = 1
		}
		if f != want {
			t.Fatalf("point %d: expected flag %d, got %d", p, want, f)
		}
		if f == 1 {
			marked++
		}
	}
	if marked != ds.NSamples*ds.NChannels {
		t.Fatalf("expected %d marked points, got %d", ds.NSamples*ds.NChannels, marked)
	}
}

func TestHighlightIdempotence(t *testing.T) {
	raw := rawFixture(4, 2, 1, []int{0, 0, 0, 0}, 1)
	ds, err := Organize(raw)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	h := newHighlighter(ds)

	h.set([]int{0, 2})
	first := append([]int32(nil), h.flags()...)
	h.set([]int{0, 2})
	for i, f := range h.flags() {
		if f != first[i] {
			t.Fatalf("point %d changed on repeated set", i)
		}
	}
}

func TestHighlightEmptySetSkipsRedundantUpdate(t *testing.T) {
	raw := rawFixture(2, 2, 1, []int{0, 0}, 1)
	ds, err := Organize(raw)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	h := newHighlighter(ds)

	if h.set(nil) {
		t.Fatal("clearing an empty highlight must not request an update")
	}
	if !h.set([]int{0}) {
		t.Fatal("expected update for first highlight")
	}
	if !h.set(nil) {
		t.Fatal("expected update when clearing a non-empty highlight")
	}
	if h.set(nil) {
		t.Fatal("second clear must not request an update")
	}
}

func TestHighlightBufferLengthStable(t *testing.T) {
	raw := rawFixture(3, 4, 2, []int{0, 1, 0}, 2)
	ds, err := Organize(raw)
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	h := newHighlighter(ds)
	n := len(h.flags())
	h.set([]int{0, 1, 2})
	h.set(nil)
	h.set([]int{2})
	if len(h.flags()) != n {
		t.Fatalf("buffer length changed: %d vs %d", len(h.flags()), n)
	}
	if n != ds.NPoints() {
		t.Fatalf("buffer length %d, want npoints %d", n, ds.NPoints())
	}
}
