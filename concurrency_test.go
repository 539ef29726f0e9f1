// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentMallocFree drives many goroutines against one shared
// Heap, each doing a burst of random-sized Mallocs, freeing all but one
// of them, then cleaning up the survivor — the same malloc/free burst
// shape as the reference allocator's threaded stress harness, ported
// from OpenMP parallel-for to goroutines. It asserts the heap's live
// allocation count and free-list invariants once every goroutine has
// finished, not at any point while they're racing.
func TestConcurrentMallocFree(t *testing.T) {
	const goroutines = 64
	const maxPerGoroutine = 500
	const maxSize = 512 * 1024

	var h Heap
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			n := rng.Intn(maxPerGoroutine)
			ptrs := make([][]byte, n)
			for i := 0; i < n; i++ {
				size := rng.Intn(maxSize) + 1
				b, err := h.Malloc(size)
				require.NoError(t, err)
				for j := range b {
					b[j] = 0
				}
				ptrs[i] = b
			}

			survivor := -1
			if n > 0 {
				survivor = n - 1
			}
			for i, b := range ptrs {
				if i == survivor {
					continue
				}
				require.NoError(t, h.Free(b))
			}
			if survivor >= 0 {
				require.NoError(t, h.Free(ptrs[survivor]))
			}
		}(int64(g))
	}

	wg.Wait()

	stats := h.Stats()
	assert.Equal(t, 0, stats.LiveAllocs, "live allocations after every goroutine released its burst")
	assert.Equal(t, 0, stats.MappedRegions, "mapped regions after every goroutine released its burst")
	freeListShape(t, &h)
}

// TestConcurrentCallocResizeFree is the calloc+realloc+free half of the
// reference allocator's threaded stress harness: every goroutine
// zero-allocates a burst, resizes each to a new random size, then frees
// all but one survivor, and finally the survivor.
func TestConcurrentCallocResizeFree(t *testing.T) {
	const goroutines = 32
	const maxPerGoroutine = 200
	const maxSize = 256 * 1024

	var h Heap
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))

			n := rng.Intn(maxPerGoroutine)
			ptrs := make([][]byte, n)
			for i := 0; i < n; i++ {
				size := rng.Intn(maxSize) + 1
				b, err := h.Calloc(size, 4)
				require.NoError(t, err)
				ptrs[i] = b
			}

			for i, b := range ptrs {
				size := rng.Intn(maxSize) + 1
				resized, err := h.Resize(b, size)
				require.NoError(t, err)
				ptrs[i] = resized
			}

			survivor := -1
			if n > 0 {
				survivor = n - 1
			}
			for i, b := range ptrs {
				if i == survivor {
					continue
				}
				require.NoError(t, h.Free(b))
			}
			if survivor >= 0 {
				require.NoError(t, h.Free(ptrs[survivor]))
			}
		}(int64(g + 1000))
	}

	wg.Wait()

	stats := h.Stats()
	assert.Equal(t, 0, stats.LiveAllocs)
	assert.Equal(t, 0, stats.MappedRegions)
}
