// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"fmt"
	"os"
	"reflect"
	"unsafe"
)

// Malloc returns size bytes of uninitialized memory, or nil if size is
// zero or the kernel refuses to extend the heap (or grant a mapping for
// a large request). The returned slice's length is size. For a heap
// block its capacity is the block's full payload length, which may
// exceed size once the request is rounded up to an 8-byte multiple or a
// split remainder was absorbed whole; for a large request it is the
// 8-byte-rounded size, without the mapping's page-rounding slack that
// UsableSize also counts.
func (h *Heap) Malloc(size int) (r []byte, err error) {
	if trace {
		defer func() {
			var p *byte
			if len(r) != 0 {
				p = &r[0]
			}
			fmt.Fprintf(os.Stderr, "Malloc(%#x) %p, %v\n", size, p, err)
		}()
	}

	if size < 0 {
		panic("brkalloc: negative size")
	}
	if size == 0 {
		return nil, nil
	}

	rounded := uintptr(roundup(size, allocAlign))

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureInit(); err != nil {
		return nil, err
	}

	if rounded >= largeThreshold {
		return h.mallocLarge(rounded, size)
	}

	return h.mallocSmall(rounded, size)
}

// mallocSmall implements the first-fit heap path (spec §4.5). h.mu is
// held and h is initialized.
func (h *Heap) mallocSmall(size uintptr, reqSize int) ([]byte, error) {
	fit := h.walkFirstFit(size)
	if fit == nil {
		var err error
		fit, err = h.growForAllocation(size)
		if err != nil {
			return nil, err
		}
	}

	b := h.placeInBlock(fit, size)
	h.liveAllocs++
	return sliceFromBlock(b, reqSize), nil
}

// growForAllocation extends the heap enough to satisfy size bytes when
// no existing free block fits, per spec §4.5 "Grow". If the trailing
// free block (last_free) abuts heap_end, it is extended in place;
// otherwise a brand-new trailing free block is created.
func (h *Heap) growForAllocation(size uintptr) (*blockHeader, error) {
	if h.lastFree != nil && h.lastFree.end() == h.heapEnd {
		last := h.lastFree
		need := size + uintptr(headerSize) - last.length
		pages, err := h.growHeap(need)
		if err != nil {
			return nil, err
		}
		last.length += pages * h.pageSize
		last.next = h.sentinel()
		return last, nil
	}

	pages, err := h.growHeap(size + uintptr(headerSize))
	if err != nil {
		return nil, err
	}

	start := h.heapEnd - pages*h.pageSize
	fresh := blockAt(start)
	fresh.length = pages*h.pageSize - uintptr(headerSize)
	h.linkBetween(h.lastFree, fresh, h.sentinel())
	return fresh, nil
}

// placeInBlock carves size bytes out of the free block b, splitting off
// a free remainder when it's large enough to host a minimal free block
// of its own, or absorbing the whole block otherwise (spec §4.5
// "Split-or-absorb"). b must currently be free; the returned header is
// the now-allocated block (next == nil).
func (h *Heap) placeInBlock(b *blockHeader, size uintptr) *blockHeader {
	remainder := b.length - size
	if remainder >= uintptr(headerSize)+allocAlign {
		prev, next := b.prev, b.next

		f := blockAt(b.payload() + size)
		f.length = remainder - uintptr(headerSize)
		h.linkBetween(prev, f, next)

		b.length = size
		b.prev, b.next = nil, nil
		return b
	}

	prev := b.prev
	h.removeFree(prev, b)
	b.prev, b.next = nil, nil

	if h.firstFree == nil {
		// The absorb emptied the free list entirely. Re-establish
		// invariant (1) before returning to the caller (spec §4.5
		// edge cases). A failure here is not fatal to this
		// allocation — it only means the heap will present zero
		// free blocks until the next successful growth, which the
		// next Malloc's "no free block at all" path already
		// tolerates.
		h.emergencyGrow()
	}
	return b
}

// emergencyGrow grows the heap by exactly one growth quantum and installs
// the result as the sole free block. Used only to repair invariant (1)
// after an absorb leaves the free list empty.
func (h *Heap) emergencyGrow() {
	pages, err := h.growHeap(1)
	if err != nil {
		return
	}
	start := h.heapEnd - pages*h.pageSize
	fresh := blockAt(start)
	fresh.length = pages*h.pageSize - uintptr(headerSize)
	h.linkBetween(nil, fresh, h.sentinel())
}

// sliceFromBlock builds the []byte a caller sees over b's payload: the
// requested length, and a capacity equal to the block's full usable
// length so callers may reslice up to what they were actually given.
func sliceFromBlock(b *blockHeader, length int) []byte {
	var s []byte
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&s))
	sh.Data = b.payload()
	sh.Len = length
	sh.Cap = int(b.length)
	return s
}
