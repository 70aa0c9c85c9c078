package drivermock

// table is a slot table with a free list. Handles are 1-based so the zero
// value never names a live entry.
type table struct {
	entries  []slot
	freeList []uint64
}

type slot struct {
	value any
	valid bool
}

func (t *table) create(value any) uint64 {
	s := slot{value: value, valid: true}

	if n := len(t.freeList); n > 0 {
		h := t.freeList[n-1]
		t.freeList = t.freeList[:n-1]
		t.entries[h-1] = s
		return h
	}

	t.entries = append(t.entries, s)
	return uint64(len(t.entries))
}

func (t *table) get(h uint64) (any, bool) {
	if h == 0 || int(h) > len(t.entries) {
		return nil, false
	}
	s := t.entries[h-1]
	if !s.valid {
		return nil, false
	}
	return s.value, true
}

func (t *table) drop(h uint64) (any, bool) {
	if h == 0 || int(h) > len(t.entries) {
		return nil, false
	}
	s := &t.entries[h-1]
	if !s.valid {
		return nil, false
	}
	value := s.value
	s.valid = false
	s.value = nil
	t.freeList = append(t.freeList, h)
	return value, true
}

func (t *table) live() int {
	n := 0
	for _, s := range t.entries {
		if s.valid {
			n++
		}
	}
	return n
}
