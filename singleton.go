// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

// defaultHeap is the process-wide heap backing the package-level
// Allocate/Release/ZeroAllocate/Resize functions, matching spec §3's "process
// wide singleton" heap state. It is lazily initialized on first use and
// never torn down.
var defaultHeap Heap

// Allocate returns size bytes of uninitialized memory from the process
// default heap, or nil if size is zero or the request cannot be
// satisfied. See Heap.Malloc.
func Allocate(size int) ([]byte, error) { return defaultHeap.Malloc(size) }

// Release returns b, previously obtained from Allocate, ZeroAllocate or
// Resize, to the process default heap. Releasing nil is a no-op. See
// Heap.Free.
func Release(b []byte) error { return defaultHeap.Free(b) }

// ZeroAllocate returns nmemb*size bytes of zero-filled memory from the
// process default heap, or nil if either argument is zero. See
// Heap.Calloc.
func ZeroAllocate(nmemb, size int) ([]byte, error) { return defaultHeap.Calloc(nmemb, size) }

// Resize changes the size of the allocation backing b on the process
// default heap. See Heap.Resize.
func Resize(b []byte, newSize int) ([]byte, error) { return defaultHeap.Resize(b, newSize) }

// UsableSize reports the number of bytes actually backing b on the
// process default heap. See Heap.UsableSize.
func UsableSize(b []byte) int { return defaultHeap.UsableSize(b) }

// DefaultStats reports bookkeeping counters for the process default
// heap. See Heap.Stats.
func DefaultStats() Stats { return defaultHeap.Stats() }
