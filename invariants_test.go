// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"testing"
	"unsafe"
)

func uintptrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func rangesOverlap(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart, aEnd := uintptrOf(a), uintptrOf(a)+uintptr(len(a))
	bStart, bEnd := uintptrOf(b), uintptrOf(b)+uintptr(len(b))
	return aStart < bEnd && bStart < aEnd
}

// freeListShape walks the free list from first_free and reports the
// number of free blocks and their total free payload bytes (excluding
// headers), failing the test if address monotonicity or the
// no-adjacent-free invariant is violated along the way.
func freeListShape(t *testing.T, h *Heap) (count int, totalBytes uintptr) {
	t.Helper()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.firstFree == nil {
		if h.lastFree != nil {
			t.Fatalf("firstFree nil but lastFree = %p", h.lastFree)
		}
		return 0, 0
	}

	var prevAddr uintptr
	var prevBlock *blockHeader
	cursor := h.firstFree
	for {
		addr := addrOf(cursor)
		if count > 0 && addr <= prevAddr {
			t.Fatalf("free list not strictly increasing: %#x then %#x", prevAddr, addr)
		}
		if prevBlock != nil && adjacent(prevBlock, cursor) {
			t.Fatalf("adjacent free blocks at %#x and %#x were not coalesced", prevAddr, addr)
		}
		if cursor.length < 8 {
			t.Fatalf("free block at %#x has length %d < 8", addr, cursor.length)
		}

		count++
		totalBytes += cursor.length
		prevAddr = addr
		prevBlock = cursor

		if h.isSentinel(cursor.next) {
			if cursor != h.lastFree {
				t.Fatalf("block at %#x ends the list but is not lastFree", addr)
			}
			break
		}
		if cursor.next.prev != cursor {
			t.Fatalf("broken back-pointer at %#x", addrOf(cursor.next))
		}
		cursor = cursor.next
	}
	return count, totalBytes
}

func requireNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
