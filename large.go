// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import (
	"reflect"
	"unsafe"
)

// largeHeader precedes every large (mmap-backed) allocation. It records
// the full size of the mapping, including the header itself, so Free and
// Resize can recover the mapping's base address and unmap the entire
// region (spec §4.7).
type largeHeader struct {
	size uintptr
}

// mallocLarge serves a request at or above largeThreshold with a
// dedicated anonymous mapping. size is the already-8-byte-rounded
// request; reqSize is the caller's original request, used only as the
// returned slice's length.
func (h *Heap) mallocLarge(size uintptr, reqSize int) ([]byte, error) {
	headerWords := uintptr(unsafe.Sizeof(largeHeader{}))
	mappedSize := uintptr(roundup(int(size+headerWords), int(h.pageSize)))

	region, err := mapAnonymous(mappedSize)
	if err != nil {
		return nil, err
	}

	hdr := (*largeHeader)(unsafe.Pointer(&region[0]))
	hdr.size = mappedSize

	h.mappedBytes += int(mappedSize)
	h.mappedRegions++
	h.liveAllocs++

	var s []byte
	sh := (*reflect.SliceHeader)(unsafe.Pointer(&s))
	sh.Data = uintptr(unsafe.Pointer(&region[0])) + headerWords
	sh.Len = reqSize
	sh.Cap = int(size)
	return s, nil
}
