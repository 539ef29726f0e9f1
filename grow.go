// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import "github.com/cznic/mathutil"

// growHeap advances the program break to cover at least need additional
// bytes, rounding up to a whole number of pages and then again to the
// fixed growth quantum (spec §4.4: 4 pages). It returns the number of
// pages the heap grew by. Callers must hold h.mu and have already run
// ensureInit.
func (h *Heap) growHeap(need uintptr) (uintptr, error) {
	// h.pageSize is always a power of two (the kernel's page size), so
	// BitLen gives us log2 directly and division becomes a shift —
	// the same trick the teacher reaches for its own size-class math.
	shift := uintptr(mathutil.BitLen(int(h.pageSize)) - 1)
	pages := (need + h.pageSize - 1) >> shift
	pages = uintptr(roundup(int(pages), growthQuantumPages))

	prevBreak, err := growBreak(pages * h.pageSize)
	if err != nil {
		return 0, err
	}
	if prevBreak != h.heapEnd {
		panic("brkalloc: program break moved outside the allocator")
	}

	h.heapEnd += pages * h.pageSize
	h.heapBytes += int(pages * h.pageSize)
	return pages, nil
}
