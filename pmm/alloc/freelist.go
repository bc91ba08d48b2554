package alloc

import (
	"github.com/framekit/framekit/internal/physmem"
	"github.com/framekit/framekit/pmm"
)

// Allocator owns the frame metadata array and the free list threaded through
// it. All free-list mutation funnels through this one value; there is no
// hidden global state.
type Allocator struct {
	frames   []pmm.FrameInfo
	bank     *physmem.Bank
	reserved []Region
	freeHead pmm.FrameLink
	stats    Stats
}

// Stats are cumulative operation counters, kept for diagnostics and tests.
type Stats struct {
	Allocs       uint64
	Frees        uint64
	HugeAllocs   uint64
	HugeFrees    uint64
	FailedAllocs uint64
}

// New returns an allocator over the given metadata array and physical memory
// bank. The free list starts empty; call PageInit once to populate it.
func New(frames []pmm.FrameInfo, bank *physmem.Bank, reserved []Region) *Allocator {
	return &Allocator{
		frames:   frames,
		bank:     bank,
		reserved: reserved,
		freeHead: pmm.ListEnd,
	}
}

// PageInit builds the free list. Called exactly once, after the metadata
// array is carved out and the reserved regions (including the low kernel
// region up to the final bootstrap watermark) are known. Frames are visited
// in ascending order and prepended, so the finished list runs in descending
// frame-number order. Every record is initialized here: reserved frames are
// pinned as allocated and never become reachable.
func (a *Allocator) PageInit() {
	a.freeHead = pmm.ListEnd
	for i := range a.frames {
		f := pmm.Frame(i)
		if a.isReserved(f) {
			a.frames[i].Link = pmm.LinkAllocated
			continue
		}
		a.push(f)
	}
}

// Reserved returns the regions excluded from the free list.
func (a *Allocator) Reserved() []Region {
	return a.reserved
}

// NFrames returns the total number of tracked frames.
func (a *Allocator) NFrames() uint32 {
	return uint32(len(a.frames))
}

// Info returns the metadata record for frame f.
func (a *Allocator) Info(f pmm.Frame) *pmm.FrameInfo {
	return &a.frames[f]
}

func (a *Allocator) isReserved(f pmm.Frame) bool {
	for _, r := range a.reserved {
		if r.Contains(f) {
			return true
		}
	}
	return false
}

// push prepends f to the free list.
func (a *Allocator) push(f pmm.Frame) {
	a.frames[f].Link = a.freeHead
	a.freeHead = pmm.LinkTo(f)
}

// remove splices frame f out of the free list by walking the chain. O(list
// length) per call; used only by huge-run reservation, never on the
// single-frame hot path.
func (a *Allocator) remove(f pmm.Frame) {
	for link := &a.freeHead; ; {
		cur, ok := link.Next()
		if !ok {
			return
		}
		if cur == f {
			*link = a.frames[f].Link
			return
		}
		link = &a.frames[cur].Link
	}
}

// WalkFree visits every free frame in list order until fn returns false.
func (a *Allocator) WalkFree(fn func(pmm.Frame) bool) {
	for link := a.freeHead; ; {
		f, ok := link.Next()
		if !ok {
			return
		}
		if !fn(f) {
			return
		}
		link = a.frames[f].Link
	}
}

// FreeFrames returns the free list as a slice in traversal order.
func (a *Allocator) FreeFrames() []pmm.Frame {
	var out []pmm.Frame
	a.WalkFree(func(f pmm.Frame) bool {
		out = append(out, f)
		return true
	})
	return out
}

// FreeCount returns the number of frames on the free list.
func (a *Allocator) FreeCount() int {
	n := 0
	a.WalkFree(func(pmm.Frame) bool {
		n++
		return true
	})
	return n
}

// TakeFreeList detaches the whole free list and returns its head, leaving
// the allocator with no free frames. Used by the boot self-checks to
// simulate exhaustion; restore with SetFreeList.
func (a *Allocator) TakeFreeList() pmm.FrameLink {
	head := a.freeHead
	a.freeHead = pmm.ListEnd
	return head
}

// SetFreeList reattaches a list previously detached with TakeFreeList.
func (a *Allocator) SetFreeList(head pmm.FrameLink) {
	a.freeHead = head
}

// SortLowMemoryFirst stably reorders the free list so frames below the given
// physical boundary precede the rest. The boot free-list check uses this
// because the minimal early page table does not map all of memory yet.
func (a *Allocator) SortLowMemoryFirst(boundary uintptr) {
	var low, high []pmm.Frame
	a.WalkFree(func(f pmm.Frame) bool {
		if f.Address() < boundary {
			low = append(low, f)
		} else {
			high = append(high, f)
		}
		return true
	})

	a.freeHead = pmm.ListEnd
	ordered := append(low, high...)
	for i := len(ordered) - 1; i >= 0; i-- {
		a.push(ordered[i])
	}
}
