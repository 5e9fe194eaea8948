package nav

// openEntry is one frontier record. Stale entries are skipped on pop.
type openEntry struct {
	idx int
	g   float64
	f   float64
	h   float64
	seq int
}

// less orders by f, then h, then insertion order so equal-cost searches
// always expand nodes the same way.
func (a openEntry) less(b openEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

type openHeap struct {
	entries []openEntry
	seq     int
}

func (h *openHeap) len() int { return len(h.entries) }

func (h *openHeap) push(idx int, g, hScore float64) {
	e := openEntry{idx: idx, g: g, f: g + hScore, h: hScore, seq: h.seq}
	h.seq++
	h.entries = append(h.entries, e)
	// Sift up
	i := len(h.entries) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !h.entries[i].less(h.entries[parent]) {
			break
		}
		h.entries[parent], h.entries[i] = h.entries[i], h.entries[parent]
		i = parent
	}
}

func (h *openHeap) pop() openEntry {
	old := h.entries
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	h.entries = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(h.entries) {
			break
		}
		smallest := left
		if right := left + 1; right < len(h.entries) && h.entries[right].less(h.entries[left]) {
			smallest = right
		}
		if !h.entries[smallest].less(h.entries[i]) {
			break
		}
		h.entries[i], h.entries[smallest] = h.entries[smallest], h.entries[i]
		i = smallest
	}
	return e
}
