// Copyright 2011 Evan Shaw. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE-MMAP-GO file.

// Modifications (c) 2026 The Brkalloc Authors.

// +build darwin dragonfly freebsd linux openbsd solaris netbsd

package brkalloc

import (
	"os"
	"syscall"
	"unsafe"
)

// platformPageSize returns the kernel's page size.
func platformPageSize() int { return os.Getpagesize() }

// mapAnonymous asks the kernel for a page-multiple, anonymous, private,
// read-write mapping. size must already be a page-size multiple.
func mapAnonymous(size uintptr) ([]byte, error) {
	prot := syscall.PROT_READ | syscall.PROT_WRITE
	flags := syscall.MAP_PRIVATE | syscall.MAP_ANON
	b, err := syscall.Mmap(-1, 0, int(size), prot, flags)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// unmapRegion releases a mapping previously obtained from mapAnonymous.
func unmapRegion(addr unsafe.Pointer, size uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MUNMAP, uintptr(addr), size, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
