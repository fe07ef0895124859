package malloc

import (
	"fmt"

	"github.com/collegebuff/malloc-lab/memsys"
)

func Example() {
	heap := memsys.NewFromBytes(make([]byte, 1<<20))
	a, _ := New(heap)

	b1 := a.Alloc(24)
	b2 := a.Alloc(100) // large requests take the upper end of their block

	fmt.Printf("b1: len=%d cap=%d\n", len(b1), cap(b1))
	fmt.Printf("b2: len=%d cap=%d\n", len(b2), cap(b2))

	a.Free(b1)
	a.Free(b2)

	// Output:
	// b1: len=24 cap=24
	// b2: len=100 cap=104
}
