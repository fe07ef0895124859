package malloc

import (
	"math/bits"
)

// numClasses is the number of segregated free lists. Class k holds free blocks
// with 2^k <= size < 2^(k+1); the last class absorbs everything above.
const numClasses = 20

// sizeClass maps a block size to its list index: min(numClasses-1, floor(log2(size))).
func sizeClass(size int) int {
	c := bits.Len(uint(size)) - 1
	if c >= numClasses {
		return numClasses - 1
	}
	return c
}

// Free-list links live in the first two words of a free block's body. A link
// is the payload offset of the linked block; 0 means none (offset 0 is the
// alignment pad and never a payload).
func (a *Allocator) pred(bp int) int { return int(a.word(bp)) }
func (a *Allocator) succ(bp int) int { return int(a.word(bp + wordSize)) }

func (a *Allocator) setPred(bp, to int) { a.putPlain(bp, uint32(to)) }
func (a *Allocator) setSucc(bp, to int) { a.putPlain(bp+wordSize, uint32(to)) }

// insertBlock links the free block at bp into its size class. Within a class
// the list is ordered by ascending size along the predecessor direction, so a
// walk from the head stops at the first block large enough, which is a best
// fit within the class.
func (a *Allocator) insertBlock(bp, size int) {
	c := sizeClass(size)
	search := int(a.heads[c])
	insert := 0
	for search != 0 && size > a.size(search) {
		insert = search
		search = a.pred(search)
	}

	switch {
	case search != 0 && insert != 0: // between insert and search
		a.setPred(bp, search)
		a.setSucc(search, bp)
		a.setSucc(bp, insert)
		a.setPred(insert, bp)
	case search != 0: // new head
		a.setPred(bp, search)
		a.setSucc(search, bp)
		a.setSucc(bp, 0)
		a.heads[c] = uint32(bp)
	case insert != 0: // new tail
		a.setPred(bp, 0)
		a.setSucc(bp, insert)
		a.setPred(insert, bp)
	default: // empty class
		a.setPred(bp, 0)
		a.setSucc(bp, 0)
		a.heads[c] = uint32(bp)
	}
}

// removeBlock unlinks the free block at bp from its size class. The class is
// recomputed from the current size; a block's class cannot change between
// insert and remove because coalescing always removes first.
func (a *Allocator) removeBlock(bp int) {
	c := sizeClass(a.size(bp))
	p, s := a.pred(bp), a.succ(bp)

	switch {
	case p != 0 && s != 0:
		a.setSucc(p, s)
		a.setPred(s, p)
	case p != 0: // bp was the head
		a.setSucc(p, 0)
		a.heads[c] = uint32(p)
	case s != 0: // bp was the tail
		a.setPred(s, 0)
	default:
		a.heads[c] = 0
	}
}
