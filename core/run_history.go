package core

import "sync"

const defaultRunHistoryCapacity = 100

type runHistory struct {
	mu    sync.Mutex
	items []RunRecord
	head  int
	count int
}

func newRunHistory(capacity int) *runHistory {
	if capacity < 1 {
		capacity = defaultRunHistoryCapacity
	}
	return &runHistory{items: make([]RunRecord, capacity)}
}

func (h *runHistory) Add(record RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return
	}

	h.items[h.head] = record
	h.head = (h.head + 1) % len(h.items)
	if h.count < len(h.items) {
		h.count++
	}
}

func (h *runHistory) Recent(limit int) []RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return nil
	}

	if limit <= 0 || limit > h.count {
		limit = h.count
	}

	out := make([]RunRecord, 0, limit)
	for i := range limit {
		idx := (h.head - 1 - i + len(h.items)) % len(h.items)
		out = append(out, h.items[idx])
	}
	return out
}

func (h *runHistory) Last() (RunRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return RunRecord{}, false
	}

	idx := (h.head - 1 + len(h.items)) % len(h.items)
	return h.items[idx], true
}
