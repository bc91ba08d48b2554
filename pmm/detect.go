package pmm

import (
	"fmt"
	"log/slog"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/internal/nvram"
)

// MemoryMap is the result of hardware memory detection.
type MemoryMap struct {
	// NPages is the total number of physical page frames.
	NPages uint32

	// BasePages is the number of frames of base (conventional) memory.
	BasePages uint32

	// ExtPages is the number of frames of extended memory above the 1 MB
	// boundary. Zero on machines without extended memory; that is a valid
	// configuration, not a failure.
	ExtPages uint32
}

// TotalBytes returns the total installed memory in bytes.
func (m MemoryMap) TotalBytes() uintptr {
	return uintptr(m.NPages) * layout.PageSize
}

// String renders the one-line human-readable summary emitted at detection
// time.
func (m MemoryMap) String() string {
	return fmt.Sprintf("physical memory: %dK available, base = %dK, extended = %dK",
		uintptr(m.NPages)*layout.PageSize/1024,
		uintptr(m.BasePages)*layout.PageSize/1024,
		uintptr(m.ExtPages)*layout.PageSize/1024)
}

// Detect queries the NVRAM hardware data source for the installed base and
// extended memory sizes and derives the frame counts. The NVRAM values are
// 16-bit kilobyte counts. When extended memory is present the total spans the
// frames below the 1 MB boundary plus the extended frames; otherwise the
// machine has base memory only. One summary line is logged; a nil logger
// discards it.
func Detect(nv nvram.Reader, log *slog.Logger) MemoryMap {
	baseKB := nvram.Read16(nv, layout.NVRAMBaseLo)
	extKB := nvram.Read16(nv, layout.NVRAMExtLo)

	m := MemoryMap{
		BasePages: uint32(baseKB) * 1024 / layout.PageSize,
		ExtPages:  uint32(extKB) * 1024 / layout.PageSize,
	}
	if m.ExtPages > 0 {
		m.NPages = layout.ExtPhysMem/layout.PageSize + m.ExtPages
	} else {
		m.NPages = m.BasePages
	}

	if log != nil {
		log.Info("memory detected",
			"totalKB", uintptr(m.NPages)*layout.PageSize/1024,
			"baseKB", baseKB,
			"extendedKB", extKB)
	}
	return m
}
