package malloc

import (
	"fmt"
)

// AllocStats records the heap's block accounting. It is filled by Stats from
// one physical walk between the sentinels.
type AllocStats struct {
	HeapBytes   int // heap_hi - heap_lo
	AllocBlocks int // allocated blocks
	AllocBytes  int // allocated block bytes, headers and footers included
	FreeBlocks  int // free blocks
	FreeBytes   int // free block bytes, headers and footers included
}

// Stats walks the heap and returns its block accounting.
func (a *Allocator) Stats() AllocStats {
	s := AllocStats{HeapBytes: a.mem.Hi() - a.mem.Lo()}
	for bp := a.next(a.prologue); a.size(bp) > 0; bp = a.next(bp) {
		if a.allocated(bp) {
			s.AllocBlocks++
			s.AllocBytes += a.size(bp)
		} else {
			s.FreeBlocks++
			s.FreeBytes += a.size(bp)
		}
	}
	return s
}

// Check verifies the whole heap and returns the first violation found:
//
//   - the sentinels frame the heap and the block sizes sum to Hi-Lo,
//   - every block's header and footer agree on size and allocation,
//   - payload offsets and sizes keep the 8-byte alignment rules,
//   - free blocks are never physically adjacent unless the earlier one is
//     tagged,
//   - every free block sits in exactly one free list, in the class matching
//     its size, size-ordered, with reciprocal links.
//
// Check is meant for tests and debugging; it touches the entire heap.
func (a *Allocator) Check() error {
	lo, hi := a.mem.Lo(), a.mem.Hi()
	if a.prologue-dwordSize != lo {
		return fmt.Errorf("malloc: prologue at %#x, heap starts at %#x", a.prologue, lo)
	}
	if a.size(a.prologue) != dwordSize || !a.allocated(a.prologue) {
		return fmt.Errorf("malloc: bad prologue word %#x", a.word(a.hdr(a.prologue)))
	}

	free := make(map[int]bool)
	prevFree, prevTagged := false, false
	bp := a.next(a.prologue)
	for a.size(bp) > 0 {
		size := a.size(bp)
		if (bp-a.prologue)%dwordSize != 0 {
			return fmt.Errorf("malloc: misaligned payload at %#x", bp)
		}
		if size%dwordSize != 0 || size < minBlockSize {
			return fmt.Errorf("malloc: bad size %d at %#x", size, bp)
		}
		if bp+size > hi {
			return fmt.Errorf("malloc: block at %#x runs past the heap", bp)
		}
		h, f := a.word(a.hdr(bp)), a.word(a.ftr(bp))
		if h&(sizeMask|allocBit) != f&(sizeMask|allocBit) {
			return fmt.Errorf("malloc: header %#x / footer %#x mismatch at %#x", h, f, bp)
		}
		if !a.allocated(bp) {
			if prevFree && !prevTagged {
				return fmt.Errorf("malloc: uncoalesced free blocks at %#x", bp)
			}
			free[bp] = true
		}
		prevFree, prevTagged = !a.allocated(bp), a.tagged(bp)

		bp = a.next(bp)
	}
	if bp != hi {
		return fmt.Errorf("malloc: epilogue at %#x, break at %#x", bp, hi)
	}
	if !a.allocated(bp) {
		return fmt.Errorf("malloc: bad epilogue word %#x", a.word(a.hdr(bp)))
	}

	for c := range a.heads {
		prevSize := 0
		for p, bp := 0, int(a.heads[c]); bp != 0; p, bp = bp, a.pred(bp) {
			if a.allocated(bp) {
				return fmt.Errorf("malloc: allocated block %#x on free list %d", bp, c)
			}
			if !free[bp] {
				return fmt.Errorf("malloc: free list %d references %#x twice or outside the heap", c, bp)
			}
			delete(free, bp)
			if sizeClass(a.size(bp)) != c {
				return fmt.Errorf("malloc: block %#x of size %d on free list %d", bp, a.size(bp), c)
			}
			if a.size(bp) < prevSize {
				return fmt.Errorf("malloc: free list %d not size-ordered at %#x", c, bp)
			}
			prevSize = a.size(bp)
			if a.succ(bp) != p {
				return fmt.Errorf("malloc: broken links around %#x on free list %d", bp, c)
			}
		}
	}
	if len(free) != 0 {
		return fmt.Errorf("malloc: %d free block(s) missing from the free lists", len(free))
	}
	return nil
}
