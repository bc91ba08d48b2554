package pmm

import (
	"math"

	"github.com/framekit/framekit/internal/layout"
)

// Frame is a physical page frame number: physical address / PageSize.
type Frame uint32

// InvalidFrame is returned by the allocator when no frame can be reserved.
const InvalidFrame = Frame(math.MaxUint32)

// Valid reports whether f names an actual frame.
func (f Frame) Valid() bool {
	return f != InvalidFrame
}

// Address returns the physical address of the first byte of the frame.
func (f Frame) Address() uintptr {
	return uintptr(f) << layout.PageShift
}

// KernVirt returns the kernel-accessible address of the frame: its physical
// address plus the fixed KernBase linear offset. Mapping that address is the
// virtual-memory layer's concern.
func (f Frame) KernVirt() uintptr {
	return layout.KernBase + f.Address()
}

// FrameAt returns the frame number containing physical address pa.
func FrameAt(pa uintptr) Frame {
	return Frame(pa >> layout.PageShift)
}
