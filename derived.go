// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"errors"
	"math"

	"github.com/cznic/mathutil"
)

// errCallocOverflow is returned by Calloc when nmemb*size would overflow
// an int. The reference allocator this package is modeled on leaves that
// overflow as the caller's problem; brkalloc hardens it per spec §4.8.
var errCallocOverflow = errors.New("brkalloc: calloc size overflows")

// Calloc is like Malloc except the returned memory is zero-filled.
// Calloc(0, n) and Calloc(n, 0) both return (nil, nil).
func (h *Heap) Calloc(nmemb, size int) ([]byte, error) {
	if nmemb < 0 || size < 0 {
		panic("brkalloc: negative size")
	}
	if nmemb == 0 || size == 0 {
		return nil, nil
	}
	if size != 0 && nmemb > math.MaxInt/size {
		return nil, errCallocOverflow
	}

	b, err := h.Malloc(nmemb * size)
	if err != nil || b == nil {
		return b, err
	}

	for i := range b {
		b[i] = 0
	}
	return b, nil
}

// Resize changes the size of the allocation backing b. If b is nil, it
// behaves like Malloc(newSize). If newSize is zero, it behaves like
// Free(b) and returns nil. Otherwise it allocates a fresh block,
// copies min(len(b), newSize) bytes, frees b, and returns the new
// block; the returned pointer is never the same as b (spec §4.8 — no
// in-place growth is attempted, even when the old block already had
// room).
func (h *Heap) Resize(b []byte, newSize int) ([]byte, error) {
	if newSize < 0 {
		panic("brkalloc: negative size")
	}
	if b == nil {
		return h.Malloc(newSize)
	}
	if newSize == 0 {
		return nil, h.Free(b)
	}

	fresh, err := h.Malloc(newSize)
	if err != nil {
		return nil, err
	}

	n := mathutil.Min(len(b), newSize)
	copy(fresh[:n], b[:n])

	if err := h.Free(b); err != nil {
		return nil, err
	}
	return fresh, nil
}
