// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

// isFree reports whether b is currently a member of the free list. The
// liveness state is stored as next == nil for an allocated block; a free
// block always has a non-nil next, even as last_free (whose next is the
// end-of-heap sentinel).
func isFree(b *blockHeader) bool { return b.next != nil }

// sentinel returns the placeholder block address standing for the
// current end of heap. It must never be dereferenced — only compared
// against.
func (h *Heap) sentinel() *blockHeader { return blockAt(h.heapEnd) }

func (h *Heap) isSentinel(b *blockHeader) bool { return addrOf(b) == h.heapEnd }

// removeFree splices b out of the free list. prev must be b's actual
// free-list predecessor, or nil if b is first_free. Removing the only
// free block leaves both first_free and last_free nil.
func (h *Heap) removeFree(prev, b *blockHeader) {
	next := b.next
	if prev == nil {
		if h.isSentinel(next) {
			h.firstFree = nil
		} else {
			h.firstFree = next
		}
	} else {
		prev.next = next
	}
	if h.isSentinel(next) {
		h.lastFree = prev
	} else {
		next.prev = prev
	}
}

// linkBetween installs b as a free block between prev and next, updating
// first_free/last_free as needed. prev == nil means b becomes first_free;
// next == h.sentinel() means b becomes last_free.
func (h *Heap) linkBetween(prev, b, next *blockHeader) {
	b.prev = prev
	b.next = next
	if prev == nil {
		h.firstFree = b
	} else {
		prev.next = b
	}
	if h.isSentinel(next) {
		h.lastFree = b
	} else {
		next.prev = b
	}
}

// walkFirstFit scans the free list from first_free for the first block
// whose length is at least size, per spec §4.5's first-fit placement
// rule. It returns nil if no free block fits. Unlike a literal port of
// a prev-tracking C walk, the free-list predecessor of whatever is
// returned never needs threading through separately — every free block
// already carries its own valid prev pointer.
func (h *Heap) walkFirstFit(size uintptr) *blockHeader {
	for cursor := h.firstFree; cursor != nil && !h.isSentinel(cursor); cursor = cursor.next {
		if cursor.length >= size {
			return cursor
		}
	}
	return nil
}
