package alloc

import (
	"fmt"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/pmm"
)

// AllocFlags select allocation behavior. The flags are independent and may
// be combined.
type AllocFlags uint8

const (
	// AllocZero zero-fills the returned memory before handing it out:
	// PageSize bytes for a single frame, HugePageSize bytes for a run.
	AllocZero AllocFlags = 1 << 0

	// AllocHuge requests a contiguous run of FramesPerHuge frames instead
	// of a single frame.
	AllocHuge AllocFlags = 1 << 1
)

// Alloc reserves a frame, or a huge run when AllocHuge is set, and returns
// its base frame. The boolean is false when no frame (or no contiguous run)
// is available; exhaustion is recoverable and policy belongs to the caller.
//
// Returned frames are off the free list with Link == LinkAllocated. The
// reference count is not touched; owners increment it themselves.
func (a *Allocator) Alloc(flags AllocFlags) (pmm.Frame, bool) {
	if flags&AllocHuge != 0 {
		return a.allocHuge(flags)
	}
	return a.allocSingle(flags)
}

func (a *Allocator) allocSingle(flags AllocFlags) (pmm.Frame, bool) {
	f, ok := a.freeHead.Next()
	if !ok {
		a.stats.FailedAllocs++
		return pmm.InvalidFrame, false
	}
	a.freeHead = a.frames[f].Link
	a.frames[f].Link = pmm.LinkAllocated

	if flags&AllocZero != 0 {
		clear(a.bank.Range(f.Address(), layout.PageSize))
	}
	a.stats.Allocs++
	return f, true
}

// allocHuge scans huge-aligned candidate starts in ascending frame order for
// a fully free run, then splices every member out of the list. First fit;
// O(N*K) worst case by design (see the package comment).
func (a *Allocator) allocHuge(flags AllocFlags) (pmm.Frame, bool) {
	const k = layout.FramesPerHuge
	for base := 0; base+k <= len(a.frames); base += k {
		if !a.runFree(pmm.Frame(base), k) {
			continue
		}
		for i := 0; i < k; i++ {
			f := pmm.Frame(base + i)
			a.remove(f)
			a.frames[f].Link = pmm.LinkAllocated
		}
		first := pmm.Frame(base)
		a.frames[first].Flags |= pmm.FlagHuge

		if flags&AllocZero != 0 {
			clear(a.bank.Range(first.Address(), layout.HugePageSize))
		}
		a.stats.Allocs++
		a.stats.HugeAllocs++
		return first, true
	}
	a.stats.FailedAllocs++
	return pmm.InvalidFrame, false
}

// runFree reports whether the k frames starting at base are all on the free
// list.
func (a *Allocator) runFree(base pmm.Frame, k int) bool {
	for i := 0; i < k; i++ {
		if !a.frames[base+pmm.Frame(i)].Link.OnFreeList() {
			return false
		}
	}
	return true
}

// Free returns a frame to the free list. Freeing a frame whose link is
// already chained is the one sanity check guarding the list: it means a
// double free or corrupt metadata, and Free panics with ErrDoubleFree rather
// than risk silent corruption.
//
// A huge-flagged base frame releases its whole run: the flag is cleared and
// all FramesPerHuge members go back on the list individually, each
// independently allocatable afterward.
//
// Precondition, enforced by callers: the frame's reference count is zero.
func (a *Allocator) Free(f pmm.Frame) {
	fi := &a.frames[f]
	if fi.Link.OnFreeList() {
		panic(fmt.Errorf("%w: frame %d", ErrDoubleFree, f))
	}

	if fi.Flags&pmm.FlagHuge != 0 {
		fi.Flags &^= pmm.FlagHuge
		for i := 0; i < layout.FramesPerHuge; i++ {
			a.push(f + pmm.Frame(i))
		}
		a.stats.HugeFrees++
	} else {
		a.push(f)
	}
	a.stats.Frees++
}

// Decref drops one reference to f and frees it when the count reaches zero.
// Calling Decref on a frame with no references is a fatal invariant
// violation.
func (a *Allocator) Decref(f pmm.Frame) {
	fi := &a.frames[f]
	if fi.Ref == 0 {
		panic(fmt.Errorf("%w: frame %d", ErrRefUnderflow, f))
	}
	fi.Ref--
	if fi.Ref == 0 {
		a.Free(f)
	}
}

// Stats returns a copy of the cumulative operation counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}
