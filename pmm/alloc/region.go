package alloc

import (
	"fmt"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/pmm"
)

// Region is a half-open physical address range [Start, End) excluded from
// general allocation.
type Region struct {
	Start uintptr
	End   uintptr
	Name  string
}

// Contains reports whether frame f lies inside the region.
func (r Region) Contains(f pmm.Frame) bool {
	pa := f.Address()
	return pa >= r.Start && pa < r.End
}

// Frames returns the number of whole frames covered by the region.
func (r Region) Frames() uint32 {
	return uint32(layout.AlignPage(r.End)-layout.AlignPageDown(r.Start)) / layout.PageSize
}

func (r Region) String() string {
	return fmt.Sprintf("[%#x, %#x) %s", r.Start, r.End, r.Name)
}

// ReservedRegions returns the regions the free list must never cover, given
// the bootstrap watermark at free-list construction time: frame 0 (boot
// sector and real-mode data other subsystems still rely on), the I/O hole,
// and the low kernel region consumed by the kernel image plus boot-time
// metadata.
func ReservedRegions(watermark uintptr) []Region {
	return []Region{
		{Start: 0, End: layout.PageSize, Name: "boot sector"},
		{Start: layout.IOPhysMem, End: layout.ExtPhysMem, Name: "I/O hole"},
		{Start: layout.ExtPhysMem, End: watermark, Name: "kernel image + boot metadata"},
	}
}
