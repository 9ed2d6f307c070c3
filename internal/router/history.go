// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package router

// MemoryHistory keeps visited paths in memory. Nothing is persisted, so the
// history is empty again after a restart.
type MemoryHistory struct {
	entries []string
	index   int // -1 while empty
}

// NewMemoryHistory creates an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{
		entries: make([]string, 0),
		index:   -1,
	}
}

// Push appends path after the current entry. Entries ahead of the current
// position are dropped.
func (h *MemoryHistory) Push(path string) {
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry, or pushes when the history is empty.
func (h *MemoryHistory) Replace(path string) {
	if h.index < 0 {
		h.Push(path)
		return
	}
	h.entries[h.index] = path
}

// Back moves to the previous entry.
func (h *MemoryHistory) Back() bool {
	if h.index <= 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves to the next entry.
func (h *MemoryHistory) Forward() bool {
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Current returns the current path, or false when nothing was pushed yet.
func (h *MemoryHistory) Current() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}

// Position returns the zero-based index of the current entry, -1 when empty.
func (h *MemoryHistory) Position() int {
	return h.index
}
