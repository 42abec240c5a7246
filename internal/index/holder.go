package index

import "sync"

// Holder guards the reference to the active index. The index itself is never
// mutated after build; a new upload builds a complete replacement and swaps
// it in, so readers never observe a partial index.
type Holder struct {
	mu  sync.RWMutex
	idx *Index
}

// NewHolder returns an empty holder (no active index).
func NewHolder() *Holder {
	return &Holder{}
}

// Get returns the active index, or nil when no document has been loaded.
func (h *Holder) Get() *Index {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.idx
}

// Set replaces the active index wholesale. The previous index and its
// document become unreachable through the holder.
func (h *Holder) Set(idx *Index) {
	h.mu.Lock()
	h.idx = idx
	h.mu.Unlock()
}
