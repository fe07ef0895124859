/*
 * Copyright 2025 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package memsys provides the memory system backing an allocator: a fixed
// contiguous reserve with a break pointer that only grows between resets.
package memsys

import (
	"errors"
	"fmt"

	"github.com/bytedance/gopkg/lang/mcache"
)

// DefaultLimit is the default reserve capacity (20MB).
const DefaultLimit = 20 << 20

// ErrOutOfMemory is returned by Extend when the request does not fit in the
// remaining reserve. The break is left unchanged.
var ErrOutOfMemory = errors.New("memsys: out of memory")

// Heap is a contiguous memory reserve managed through a break pointer.
// The reserve is allocated once and never moves, so pointers derived from
// Bytes stay valid for the lifetime of the Heap.
//
// Heap is not goroutine-safe.
type Heap struct {
	buf    []byte // whole reserve; never reallocated
	brk    int    // bytes in use; grows until Reset
	pooled bool   // reserve came from mcache and goes back on Release
}

// New creates a Heap with a reserve of limit bytes acquired from mcache.
// Call Release to return the reserve to the cache when done.
func New(limit int) (*Heap, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("memsys: limit must be positive, got %d", limit)
	}
	return &Heap{buf: mcache.Malloc(limit), pooled: true}, nil
}

// NewFromBytes creates a Heap over a caller-owned reserve. The caller must not
// touch buf while the Heap is in use.
func NewFromBytes(buf []byte) *Heap {
	return &Heap{buf: buf}
}

// Extend grows the heap by n bytes and returns the previous break.
// The request is served exactly or not at all.
func (h *Heap) Extend(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("memsys: negative extend %d", n)
	}
	if h.brk+n > len(h.buf) {
		return 0, ErrOutOfMemory
	}
	old := h.brk
	h.brk += n
	return old, nil
}

// Lo returns the low heap bound.
func (h *Heap) Lo() int { return 0 }

// Hi returns the current break.
func (h *Heap) Hi() int { return h.brk }

// Bytes exposes the whole reserve, including the region beyond the break.
func (h *Heap) Bytes() []byte { return h.buf }

// Reset moves the break back to zero. The reserve keeps its contents.
func (h *Heap) Reset() { h.brk = 0 }

// Release returns a pooled reserve to mcache. The Heap must not be used
// afterwards.
func (h *Heap) Release() {
	if h.pooled && h.buf != nil {
		mcache.Free(h.buf)
	}
	h.buf = nil
	h.brk = 0
}
