package pmm

import "github.com/framekit/framekit/internal/layout"

// Re-exported layout constants: the parts of the physical memory layout that
// later kernel layers (page-table construction in particular) need to see.
const (
	// PageSize is the size of one page frame in bytes.
	PageSize = layout.PageSize

	// HugePageSize is the size of one huge run in bytes.
	HugePageSize = layout.HugePageSize

	// FramesPerHuge is the number of frames in one huge run.
	FramesPerHuge = layout.FramesPerHuge

	// IOPhysMem and ExtPhysMem bound the I/O hole [IOPhysMem, ExtPhysMem).
	IOPhysMem  = layout.IOPhysMem
	ExtPhysMem = layout.ExtPhysMem

	// KernBase is the fixed linear offset of kernel-accessible addresses.
	KernBase = layout.KernBase
)
