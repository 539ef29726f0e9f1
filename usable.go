// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brkalloc

import "unsafe"

// UsableSize reports the number of bytes actually backing b, which may
// exceed len(b): heap blocks are rounded up to 8 bytes and may carry an
// absorbed split remainder; large blocks are rounded up to a whole page.
// UsableSize(nil) is 0.
func (h *Heap) UsableSize(b []byte) int {
	if len(b) == 0 {
		return 0
	}

	addr := uintptr(unsafe.Pointer(&b[0]))

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inHeap(addr) {
		headerWords := uintptr(unsafe.Sizeof(largeHeader{}))
		hdr := (*largeHeader)(unsafe.Pointer(addr - headerWords))
		return int(hdr.size - headerWords)
	}

	blk := blockFromPayload(addr)
	return int(blk.length)
}
