// Package boot wires the physical memory subsystem together: hardware
// detection, the bootstrap carve-out of the frame metadata array, and
// free-list construction. Init runs once during bring-up; everything
// afterward goes through the frame allocator.
package boot

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/internal/nvram"
	"github.com/framekit/framekit/internal/physmem"
	"github.com/framekit/framekit/pmm"
	"github.com/framekit/framekit/pmm/alloc"
)

// Config describes the machine being brought up.
type Config struct {
	// NVRAM is the hardware data source for memory detection. When nil, a
	// register bank is synthesized from BaseKB and ExtKB.
	NVRAM nvram.Reader

	// BaseKB and ExtKB program the synthesized NVRAM bank when NVRAM is
	// nil.
	BaseKB uint16
	ExtKB  uint16

	// KernImageEnd is the physical address just past the kernel's static
	// image, where bootstrap allocation begins. Must lie at or above
	// ExtPhysMem.
	KernImageEnd uintptr

	// Logger receives the detection summary and bring-up progress. Nil
	// discards all output.
	Logger *slog.Logger
}

// Memory is the brought-up physical memory subsystem.
type Memory struct {
	mmap  pmm.MemoryMap
	bank  *physmem.Bank
	boot  *alloc.Bootstrap
	alloc *alloc.Allocator
}

// Init detects installed memory, reserves the frame metadata array through
// the bootstrap allocator, and builds the free list. The returned Memory owns
// the backing bank; Close releases it.
func Init(cfg Config) (*Memory, error) {
	nv := cfg.NVRAM
	if nv == nil {
		nv = nvram.New(cfg.BaseKB, cfg.ExtKB)
	}

	mmap := pmm.Detect(nv, cfg.Logger)
	if mmap.NPages == 0 {
		return nil, errors.New("boot: no physical memory detected")
	}
	if cfg.KernImageEnd < layout.ExtPhysMem {
		return nil, fmt.Errorf("boot: kernel image end %#x below extended memory base %#x",
			cfg.KernImageEnd, layout.ExtPhysMem)
	}
	if cfg.KernImageEnd >= mmap.TotalBytes() {
		return nil, fmt.Errorf("boot: kernel image end %#x past installed memory %#x",
			cfg.KernImageEnd, mmap.TotalBytes())
	}

	bank, err := physmem.Map(int(mmap.TotalBytes()))
	if err != nil {
		return nil, err
	}

	// Carve out one metadata record per frame. This is the only bootstrap
	// allocation; the pages it covers become part of the low kernel region
	// and never reach the free list.
	bs := alloc.NewBootstrap(cfg.KernImageEnd, mmap.TotalBytes())
	bs.Alloc(int(mmap.NPages) * int(unsafe.Sizeof(pmm.FrameInfo{})))

	frames := make([]pmm.FrameInfo, mmap.NPages)
	a := alloc.New(frames, bank, alloc.ReservedRegions(bs.Watermark()))
	a.PageInit()

	if cfg.Logger != nil {
		cfg.Logger.Info("free list built",
			"frames", mmap.NPages,
			"free", a.FreeCount(),
			"watermark", fmt.Sprintf("%#x", bs.Watermark()))
	}

	return &Memory{mmap: mmap, bank: bank, boot: bs, alloc: a}, nil
}

// Map returns the detected memory map.
func (m *Memory) Map() pmm.MemoryMap {
	return m.mmap
}

// NPages returns the total number of physical frames.
func (m *Memory) NPages() uint32 {
	return m.mmap.NPages
}

// Frame returns the metadata record for frame f.
func (m *Memory) Frame(f pmm.Frame) *pmm.FrameInfo {
	return m.alloc.Info(f)
}

// Allocator returns the frame allocator.
func (m *Memory) Allocator() *alloc.Allocator {
	return m.alloc
}

// Bank returns the physical memory bank backing frame contents.
func (m *Memory) Bank() *physmem.Bank {
	return m.bank
}

// Watermark returns the final bootstrap watermark: the lower bound of
// allocatable extended memory.
func (m *Memory) Watermark() uintptr {
	return m.boot.Watermark()
}

// Alloc reserves a frame; see alloc.Allocator.Alloc.
func (m *Memory) Alloc(flags alloc.AllocFlags) (pmm.Frame, bool) {
	return m.alloc.Alloc(flags)
}

// Free returns a frame to the free list; see alloc.Allocator.Free.
func (m *Memory) Free(f pmm.Frame) {
	m.alloc.Free(f)
}

// Decref drops one reference to f, freeing it at zero; see
// alloc.Allocator.Decref.
func (m *Memory) Decref(f pmm.Frame) {
	m.alloc.Decref(f)
}

// Close releases the backing bank.
func (m *Memory) Close() error {
	return m.bank.Close()
}
