// Copyright 2026 The Brkalloc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !brkalloc.trace

package brkalloc

// trace gates the verbose Fprintf tracing compiled into Malloc/Free.
// Off by default; build with -tags brkalloc.trace to enable it.
const trace = false
