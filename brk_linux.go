// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build linux

package brkalloc

import "syscall"

// growBreak advances the program break by size bytes — a positive
// multiple of the page size — and returns the break's address
// immediately before the advance (spec §4.1). The raw brk(2) syscall,
// not the libc sbrk() wrapper, is used directly: brk(2) takes and
// returns absolute addresses rather than a delta, so the current break
// is queried first with a zero-argument call.
func growBreak(size uintptr) (uintptr, error) {
	cur, _, errno := syscall.Syscall(syscall.SYS_BRK, 0, 0, 0)
	if errno != 0 {
		return 0, errno
	}

	want := cur + size
	got, _, errno := syscall.Syscall(syscall.SYS_BRK, want, 0, 0)
	if errno != 0 {
		return 0, errno
	}
	if got < want {
		return 0, syscall.ENOMEM
	}

	return cur, nil
}
