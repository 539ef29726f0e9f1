// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import "unsafe"

// headerSize is the size of blockHeader rounded up to an 8-byte multiple,
// the alignment spec every block layout and payload address in this
// package must honor.
var headerSize = roundup(int(unsafe.Sizeof(blockHeader{})), allocAlign)

// if n%m != 0 { n += m-n%m }. m must be a power of 2.
func roundup(n, m int) int { return (n + m - 1) &^ (m - 1) }

// blockHeader precedes every block on the heap, free or allocated.
//
// next encodes liveness: for a free block it is the address of the next
// free block in ascending address order, or the end-of-heap sentinel if
// this is the highest-address free block; for an allocated block it is
// nil. prev is meaningful only while the block is free; it is nil for
// the lowest-address free block.
type blockHeader struct {
	length uintptr
	prev   *blockHeader
	next   *blockHeader
}

// blockAt reinterprets addr as a block header. addr may be a sentinel
// address (the current end of heap) that is never itself dereferenced;
// it exists only to be compared against.
func blockAt(addr uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(addr))
}

func addrOf(b *blockHeader) uintptr {
	return uintptr(unsafe.Pointer(b))
}

// payload is the address of the first byte a caller may use.
func (b *blockHeader) payload() uintptr {
	return addrOf(b) + uintptr(headerSize)
}

// end is the address of b's in-address-order successor: either another
// block header, or the current heap_end.
func (b *blockHeader) end() uintptr {
	return b.payload() + b.length
}

// blockFromPayload recovers a block's header from a payload address
// previously handed to a caller.
func blockFromPayload(p uintptr) *blockHeader {
	return blockAt(p - uintptr(headerSize))
}

// adjacent reports whether a's block ends exactly where b begins.
func adjacent(a, b *blockHeader) bool {
	return a.end() == addrOf(b)
}
