// Package layout houses the fixed physical-memory layout constants shared by
// the detector, the allocators, and the self-check diagnostics. The goal is to
// keep every magic address in one place and independent from the public API so
// higher-level packages can reason about regions instead of raw numbers.
package layout

const (
	// PageShift is log2(PageSize). Physical addresses convert to frame
	// numbers by shifting right by PageShift.
	PageShift = 12

	// PageSize is the size of one physical page frame in bytes.
	PageSize = 1 << PageShift

	// HugePageSize is the size of one huge page in bytes (4 MB).
	HugePageSize = 4 << 20

	// FramesPerHuge is the number of ordinary frames covered by one huge
	// page run.
	FramesPerHuge = HugePageSize / PageSize

	// IOPhysMem is the start of the I/O hole: the physical range
	// [IOPhysMem, ExtPhysMem) is reserved for device memory-mapped I/O
	// and is never usable for allocation.
	IOPhysMem = 0x0A0000

	// ExtPhysMem is the start of extended memory, immediately above the
	// I/O hole at the 1 MB boundary.
	ExtPhysMem = 0x100000

	// KernBase is the fixed linear offset at which physical memory is
	// made kernel-accessible. Belongs to the virtual-memory layer; only
	// the numeric conversion lives here.
	KernBase = 0xF0000000

	// PoisonByte is written over low-memory free frames by the free-list
	// self-check as a tripwire for code touching memory it should not.
	PoisonByte = 0x97

	// PoisonLen is the number of poison bytes written per frame.
	PoisonLen = 128
)

// CMOS register indices for the NVRAM memory-size query. Each value is a
// 16-bit little-endian kilobyte count split across two registers.
const (
	NVRAMBaseLo = 0x15 // base memory KB, low byte
	NVRAMBaseHi = 0x16 // base memory KB, high byte
	NVRAMExtLo  = 0x17 // extended memory KB, low byte
	NVRAMExtHi  = 0x18 // extended memory KB, high byte
)

const (
	pageAlignMask = PageSize - 1
	hugeAlignMask = HugePageSize - 1
)
