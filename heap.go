// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package brkalloc implements a drop-in general-purpose dynamic memory
// allocator for a process running atop a POSIX-style kernel.
//
// Requests below largeThreshold are satisfied from a single process-wide
// heap grown via the program break; requests at or above the threshold
// are satisfied by individual anonymous mappings, released back to the
// kernel on Free. The small-allocation path is an address-ordered,
// doubly linked free list with first-fit placement, split-or-absorb on
// Allocate and three-case coalescing on Free — see block.go, freelist.go,
// grow.go, alloc.go and release.go.
//
// A Heap's zero value is ready for use, and every exported method is
// safe for concurrent use by multiple goroutines: all heap state is
// guarded by a single mutex, matching the single process-wide critical
// section the reference allocator this package is modeled on uses.
package brkalloc

import "sync"

const (
	// allocAlign is the byte alignment every returned payload and every
	// rounded request size must satisfy.
	allocAlign = 8

	// largeThreshold is the byte count (after rounding a request up to
	// allocAlign) at or above which a request is served by a dedicated
	// anonymous mapping instead of the heap.
	largeThreshold = 128 * 1024

	// growthQuantumPages is the minimum number of pages the heap grows
	// by at a time; a request needing more pages grows by the next
	// multiple of this quantum.
	growthQuantumPages = 4
)

// Heap is a single malloc-style heap. Its zero value is ready for use.
// Most programs should use the package-level Allocate/Release/ZeroAllocate/Resize,
// which operate on one process-wide default Heap; Heap itself stays
// exported so tests (and callers who want an isolated arena) can
// construct independent instances.
type Heap struct {
	mu sync.Mutex

	initialized bool
	pageSize    uintptr
	heapStart   uintptr
	heapEnd     uintptr
	firstFree   *blockHeader
	lastFree    *blockHeader

	liveAllocs    int
	heapBytes     int // bytes obtained from growBreak, ever
	mappedBytes   int // bytes currently live in anonymous mappings
	mappedRegions int
}

// Stats reports introspection counters. Nothing in the allocation or
// release path consults these; they exist purely for tests and callers
// curious about heap shape, the way cznic/memory's Allocator exposes its
// own allocs/bytes/mmaps fields.
type Stats struct {
	LiveAllocs    int
	HeapBytes     int
	MappedBytes   int
	MappedRegions int
}

// Stats returns a snapshot of h's bookkeeping counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		LiveAllocs:    h.liveAllocs,
		HeapBytes:     h.heapBytes,
		MappedBytes:   h.mappedBytes,
		MappedRegions: h.mappedRegions,
	}
}

// ensureInit lazily creates the heap's first page (spec §4.3). Callers
// must hold h.mu.
func (h *Heap) ensureInit() error {
	if h.initialized {
		return nil
	}

	pageSize := uintptr(platformPageSize())
	brk, err := growBreak(pageSize)
	if err != nil {
		return err
	}

	h.pageSize = pageSize
	h.heapStart = brk
	h.heapEnd = brk + pageSize
	h.heapBytes = int(pageSize)

	first := blockAt(h.heapStart)
	first.length = pageSize - uintptr(headerSize)
	first.prev = nil
	first.next = blockAt(h.heapEnd)

	h.firstFree = first
	h.lastFree = first
	h.initialized = true
	return nil
}

// inHeap reports whether addr lies within [heapStart, heapEnd) — the
// dividing line between a block released through the small path and one
// that must be a large mapped block (spec §4.6).
func (h *Heap) inHeap(addr uintptr) bool {
	return h.initialized && addr >= h.heapStart && addr < h.heapEnd
}
