package alloc

import (
	"fmt"

	"github.com/framekit/framekit/internal/layout"
)

// Bootstrap is the monotonic watermark allocator used only while the kernel
// is setting up its data structures, before the frame allocator exists. It
// hands out physical memory starting immediately after the kernel's static
// image and never takes anything back.
//
// Sequencing contract: once the free list has been built, Bootstrap must not
// be used again; everything after that goes through the frame allocator. The
// contract is not enforced by a runtime check.
type Bootstrap struct {
	kernEnd uintptr // physical end of the kernel's static image
	limit   uintptr // end of physical memory; 0 disables the check
	next    uintptr // watermark; 0 until the first Alloc
}

// NewBootstrap returns a bootstrap allocator that starts handing out memory
// at the first page boundary at or after kernEnd and treats running past
// limit as fatal.
func NewBootstrap(kernEnd, limit uintptr) *Bootstrap {
	return &Bootstrap{kernEnd: kernEnd, limit: limit}
}

// Alloc reserves n bytes and returns the physical address of the reservation.
// The watermark advances by n rounded up to a page boundary, so consecutive
// allocations never share a page. Alloc(0) returns the current watermark
// without consuming memory, the standard way to ask "where does free memory
// begin" during bring-up.
//
// Exhausting physical memory during bootstrap is unrecoverable: Alloc panics
// with ErrBootstrapExhausted when the advanced watermark passes the limit.
func (b *Bootstrap) Alloc(n int) uintptr {
	if b.next == 0 {
		b.next = layout.AlignPage(b.kernEnd)
	}

	result := b.next
	b.next = layout.AlignPage(b.next + uintptr(n))
	if b.limit != 0 && b.next > b.limit {
		panic(fmt.Errorf("%w: watermark %#x past limit %#x", ErrBootstrapExhausted, b.next, b.limit))
	}
	return result
}

// Watermark returns the next free physical address without allocating.
func (b *Bootstrap) Watermark() uintptr {
	return b.Alloc(0)
}
