package verify

import (
	"fmt"
	"log/slog"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/pmm"
	"github.com/framekit/framekit/pmm/alloc"
	"github.com/framekit/framekit/pmm/boot"
)

// lowMemBoundary is the span covered by the minimal early page table: one
// page-directory entry. During early boot only memory below this boundary is
// mapped, which is why the free-list check can be asked to sort low frames
// first.
const lowMemBoundary = uintptr(layout.HugePageSize)

// ValidationError describes a self-check failure.
type ValidationError struct {
	Stage   string
	Message string
	Frame   pmm.Frame // InvalidFrame when the failure is not frame-specific
}

func (e *ValidationError) Error() string {
	if e.Frame.Valid() {
		return fmt.Sprintf("%s: frame %d: %s", e.Stage, e.Frame, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func fail(stage string, f pmm.Frame, format string, args ...any) error {
	return &ValidationError{Stage: stage, Frame: f, Message: fmt.Sprintf(format, args...)}
}

// FreeList checks that every frame on the free list is plausible: in bounds,
// not duplicated, and outside every reserved region (frame 0, the I/O hole,
// and the low kernel region below the bootstrap watermark), and that both
// base and extended memory contribute at least one free frame.
//
// With onlyLowMemory set the list is first reordered so low-memory frames
// come before extended-memory ones, matching what the early page table can
// map. Every checked low frame then has its first bytes filled with a poison
// pattern: a tripwire so that code wrongly treating a free frame as in use
// eventually causes visible trouble.
func FreeList(m *boot.Memory, onlyLowMemory bool, log *slog.Logger) error {
	const stage = "free-list check"

	a := m.Allocator()
	poisonBelow := m.Map().TotalBytes()
	if onlyLowMemory {
		a.SortLowMemoryFirst(lowMemBoundary)
		poisonBelow = lowMemBoundary
	}

	watermark := m.Watermark()
	seen := make(map[pmm.Frame]bool)
	nfreeBase, nfreeExt := 0, 0
	var verr error

	a.WalkFree(func(f pmm.Frame) bool {
		if uint32(f) >= m.NPages() {
			verr = fail(stage, f, "frame beyond metadata array (%d frames)", m.NPages())
			return false
		}
		if seen[f] {
			verr = fail(stage, f, "frame listed twice")
			return false
		}
		seen[f] = true

		pa := f.Address()
		switch {
		case f == 0:
			verr = fail(stage, f, "boot-sector frame on free list")
		case pa == layout.IOPhysMem:
			verr = fail(stage, f, "first I/O hole frame on free list")
		case pa == layout.ExtPhysMem-layout.PageSize:
			verr = fail(stage, f, "last I/O hole frame on free list")
		case pa == layout.ExtPhysMem:
			verr = fail(stage, f, "first extended frame is kernel image")
		case pa >= layout.ExtPhysMem && pa < watermark:
			verr = fail(stage, f, "frame below bootstrap watermark %#x", watermark)
		}
		if verr != nil {
			return false
		}
		for _, r := range a.Reserved() {
			if r.Contains(f) {
				verr = fail(stage, f, "frame inside reserved region %s", r)
				return false
			}
		}

		// Poison mapped free frames so anything touching them trips.
		if pa < poisonBelow {
			fill(m.Bank().Range(pa, layout.PoisonLen), layout.PoisonByte)
		}

		if pa < layout.ExtPhysMem {
			nfreeBase++
		} else {
			nfreeExt++
		}
		return true
	})
	if verr != nil {
		return verr
	}

	if len(seen) == 0 {
		return fail(stage, pmm.InvalidFrame, "free list is empty")
	}
	if nfreeBase == 0 {
		return fail(stage, pmm.InvalidFrame, "no free frames in base memory")
	}
	if nfreeExt == 0 {
		return fail(stage, pmm.InvalidFrame, "no free frames in extended memory")
	}

	if log != nil {
		log.Info("free-list check passed", "base", nfreeBase, "extended", nfreeExt)
	}
	return nil
}

// Allocator exercises the frame allocator end to end: single-frame alloc and
// free symmetry, exhaustion behavior, head-of-list reuse, zero fill, huge-run
// alignment and spacing, and conservation of the total free-frame count
// across the whole sequence.
func Allocator(m *boot.Memory, log *slog.Logger) error {
	if err := checkSingleFrames(m); err != nil {
		return err
	}
	if log != nil {
		log.Info("frame allocator check passed", "granularity", "4K")
	}

	if err := checkHugeRuns(m); err != nil {
		return err
	}
	if log != nil {
		log.Info("frame allocator check passed", "granularity", "4M")
	}
	return nil
}

func checkSingleFrames(m *boot.Memory) error {
	const stage = "allocator check (4K)"

	a := m.Allocator()
	totalFree := a.FreeCount()
	limit := uintptr(m.NPages()) * layout.PageSize

	// Three distinct frames must come off the list.
	var fr [3]pmm.Frame
	for i := range fr {
		f, ok := a.Alloc(0)
		if !ok {
			return fail(stage, pmm.InvalidFrame, "allocation %d failed", i)
		}
		if f.Address() >= limit {
			return fail(stage, f, "allocated frame beyond installed memory")
		}
		for j := 0; j < i; j++ {
			if fr[j] == f {
				return fail(stage, f, "allocator returned the same frame twice")
			}
		}
		fr[i] = f
	}

	// Steal the remaining list: allocation must now report exhaustion,
	// recoverably.
	fl := a.TakeFreeList()
	if f, ok := a.Alloc(0); ok {
		a.SetFreeList(fl)
		return fail(stage, f, "allocation succeeded with empty free list")
	}

	// Free and reallocate: the same three frames must come back.
	for _, f := range fr {
		a.Free(f)
	}
	for i := range fr {
		f, ok := a.Alloc(0)
		if !ok {
			a.SetFreeList(fl)
			return fail(stage, pmm.InvalidFrame, "reallocation %d failed", i)
		}
		fr[i] = f
	}
	if _, ok := a.Alloc(0); ok {
		a.SetFreeList(fl)
		return fail(stage, pmm.InvalidFrame, "fourth allocation succeeded after exhaustion")
	}

	// Dirty a frame, free it, and demand it back zeroed. Head-of-list
	// reuse means the zeroing allocation returns the frame just freed.
	dirty := fr[0]
	fill(m.Bank().Range(dirty.Address(), layout.PageSize), 1)
	a.Free(dirty)
	f, ok := a.Alloc(alloc.AllocZero)
	if !ok {
		a.SetFreeList(fl)
		return fail(stage, pmm.InvalidFrame, "zeroing allocation failed")
	}
	if f != dirty {
		a.SetFreeList(fl)
		return fail(stage, f, "expected head-of-list reuse of frame %d", dirty)
	}
	page := m.Bank().Range(f.Address(), layout.PageSize)
	for i, b := range page {
		if b != 0 {
			a.SetFreeList(fl)
			return fail(stage, f, "byte %d not zeroed: %#x", i, b)
		}
	}

	// Put everything back and confirm conservation.
	a.SetFreeList(fl)
	a.Free(fr[0])
	a.Free(fr[1])
	a.Free(fr[2])
	if got := a.FreeCount(); got != totalFree {
		return fail(stage, pmm.InvalidFrame, "free count %d after check, want %d", got, totalFree)
	}
	return nil
}

func checkHugeRuns(m *boot.Memory) error {
	const stage = "allocator check (4M)"

	a := m.Allocator()
	totalFree := a.FreeCount()

	// Interleave normal and huge allocations.
	p0, ok := a.Alloc(0)
	if !ok {
		return fail(stage, pmm.InvalidFrame, "single allocation failed")
	}
	h0, ok := a.Alloc(alloc.AllocHuge)
	if !ok {
		return fail(stage, pmm.InvalidFrame, "huge allocation failed")
	}
	p1, ok := a.Alloc(0)
	if !ok {
		return fail(stage, pmm.InvalidFrame, "single allocation failed")
	}
	if p0 == h0 || p1 == h0 || p0 == p1 {
		return fail(stage, h0, "interleaved allocations overlap")
	}
	if !layout.HugeAligned(h0.Address()) {
		return fail(stage, h0, "huge run base %#x not huge-aligned", h0.Address())
	}
	if p1.Address() > h0.Address() && p1.Address()-h0.Address() < layout.HugePageSize {
		return fail(stage, p1, "single frame inside the huge run based at %d", h0)
	}

	// Free and reallocate two huge runs; their spacing must be at least a
	// full run.
	a.Free(h0)
	a.Free(p0)
	a.Free(p1)
	h0, ok = a.Alloc(alloc.AllocHuge)
	if !ok {
		return fail(stage, pmm.InvalidFrame, "huge reallocation failed")
	}
	h1, ok := a.Alloc(alloc.AllocHuge)
	if !ok {
		return fail(stage, pmm.InvalidFrame, "second huge allocation failed")
	}
	gap := h1.Address() - h0.Address()
	if h0.Address() > h1.Address() {
		gap = h0.Address() - h1.Address()
	}
	if gap < layout.HugePageSize {
		return fail(stage, h1, "huge runs %d and %d overlap", h0, h1)
	}

	a.Free(h0)
	a.Free(h1)
	if got := a.FreeCount(); got != totalFree {
		return fail(stage, pmm.InvalidFrame, "free count %d after check, want %d", got, totalFree)
	}
	return nil
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}
