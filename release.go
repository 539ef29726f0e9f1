// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"fmt"
	"os"
	"unsafe"
)

// Free releases memory previously returned by Malloc, Calloc or Resize.
// Freeing a nil or zero-capacity slice is a no-op.
func (h *Heap) Free(b []byte) (err error) {
	if trace {
		var p *byte
		if len(b) != 0 {
			p = &b[0]
		}
		defer func() {
			fmt.Fprintf(os.Stderr, "Free(%#x) %v\n", p, err)
		}()
	}

	b = b[:cap(b)]
	if len(b) == 0 {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&b[0]))

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inHeap(addr) {
		return h.freeLarge(addr)
	}

	h.freeSmall(addr)
	h.liveAllocs--
	return nil
}

// freeSmall implements the three-case coalescing release path of spec
// §4.6. addr is the payload address of the block being released, which
// must lie in [heap_start, heap_end).
func (h *Heap) freeSmall(addr uintptr) {
	b := blockFromPayload(addr)

	if h.firstFree == nil {
		// No free blocks exist at all; b becomes the only one.
		h.linkBetween(nil, b, h.sentinel())
		return
	}

	switch {
	case addrOf(b) > addrOf(h.lastFree):
		h.freeCaseA(b)
	case addrOf(b) < addrOf(h.firstFree):
		h.freeCaseB(b)
	default:
		h.freeCaseC(b)
	}
}

// freeCaseA handles releasing a block above every current free block:
// merge into last_free if address-adjacent, otherwise append.
func (h *Heap) freeCaseA(b *blockHeader) {
	last := h.lastFree
	if adjacent(last, b) {
		last.length += b.length + uintptr(headerSize)
		return
	}
	h.linkBetween(last, b, h.sentinel())
}

// freeCaseB handles releasing a block below every current free block:
// absorb first_free into b if address-adjacent, otherwise prepend.
func (h *Heap) freeCaseB(b *blockHeader) {
	first := h.firstFree
	if adjacent(b, first) {
		b.length += first.length + uintptr(headerSize)
		b.next = first.next
		if h.isSentinel(b.next) {
			// first_free was also last_free; b now spans both
			// roles. The reference C allocator this spec is
			// modeled on leaves last_free stale in exactly this
			// situation; brkalloc repairs it here so invariant
			// (3) (last_free.next == heap_end) keeps holding.
			h.lastFree = b
		} else {
			b.next.prev = b
		}
	} else {
		b.next = first
		first.prev = b
	}
	b.prev = nil
	h.firstFree = b
}

// freeCaseC handles releasing a block strictly between first_free and
// last_free. It first links b into the free list — merging with an
// immediately-free address-order successor, or else locating the
// enclosing free-list neighbors by a bidirectional scan — and only then
// checks whether the resulting block is address-adjacent to its
// free-list predecessor, merging forward if so. That final adjacency
// check is a single step shared by both branches above it (malloc.c's
// free() runs it unconditionally after either sub-case, not only after
// the locate-and-splice one); see DESIGN.md's Open Question
// resolutions for why the merge-with-successor branch cannot skip it.
func (h *Heap) freeCaseC(b *blockHeader) {
	var pred *blockHeader

	if s := blockAt(b.end()); isFree(s) {
		pred = s.prev

		b.length += s.length + uintptr(headerSize)
		b.next = s.next
		if h.isSentinel(b.next) {
			h.lastFree = b
		} else {
			b.next.prev = b
		}
	} else {
		var next *blockHeader
		pred, next = h.locateFreeNeighbors(addrOf(b))

		b.next = next
		if h.isSentinel(next) {
			h.lastFree = b
		} else {
			next.prev = b
		}
	}

	if pred != nil && adjacent(pred, b) {
		pred.length += b.length + uintptr(headerSize)
		pred.next = b.next
		if h.isSentinel(pred.next) {
			h.lastFree = pred
		} else {
			pred.next.prev = pred
		}
		return
	}

	b.prev = pred
	if pred == nil {
		h.firstFree = b
	} else {
		pred.next = b
	}
}

// locateFreeNeighbors finds the free-list nodes immediately surrounding
// address addr, which is known to lie strictly between first_free and
// last_free. It scans forward from first_free when addr is in the lower
// half of the heap and backward from last_free otherwise — a locality
// heuristic that ignores allocation density (spec §9's "half-heap
// heuristic"; carried over unchanged, imprecision and all).
func (h *Heap) locateFreeNeighbors(addr uintptr) (prev, next *blockHeader) {
	mid := h.heapStart + (h.heapEnd-h.heapStart)/2
	if addr < mid {
		prev = h.firstFree
		next = prev.next
		for !h.isSentinel(next) && addrOf(next) < addr {
			prev = next
			next = next.next
		}
		return prev, next
	}

	next = h.lastFree
	prev = next.prev
	for prev != nil && addrOf(prev) > addr {
		next = prev
		prev = prev.prev
	}
	return prev, next
}

// freeLarge releases a mapping obtained through mallocLarge. addr is the
// payload address; the mapping's base and recorded size are recovered
// from the large-allocation header immediately preceding it.
func (h *Heap) freeLarge(addr uintptr) error {
	headerWords := uintptr(unsafe.Sizeof(largeHeader{}))
	base := addr - headerWords
	hdr := (*largeHeader)(unsafe.Pointer(base))
	size := hdr.size

	if err := unmapRegion(unsafe.Pointer(base), size); err != nil {
		return err
	}

	h.mappedBytes -= int(size)
	h.mappedRegions--
	h.liveAllocs--
	return nil
}
