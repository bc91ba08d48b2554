package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/pmm"
)

// Three runs' worth of frames. The run based at frame 0 is never eligible
// because the boot-sector frame is reserved, leaving two allocatable runs.
const hugeTestFrames = 3 * layout.FramesPerHuge

func Test_HugeAllocReturnsContiguousRun(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)
	before := a.FreeCount()

	h, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	require.Equal(t, pmm.Frame(layout.FramesPerHuge), h,
		"first fit picks the lowest eligible aligned run")
	require.True(t, layout.HugeAligned(h.Address()))

	require.Equal(t, before-layout.FramesPerHuge, a.FreeCount(),
		"the whole run leaves the free list at once")
	for i := 0; i < layout.FramesPerHuge; i++ {
		require.Equal(t, pmm.LinkAllocated, a.Info(h+pmm.Frame(i)).Link, "member %d", i)
	}

	// The huge marker sits on the base frame only.
	require.NotZero(t, a.Info(h).Flags&pmm.FlagHuge)
	require.Zero(t, a.Info(h+1).Flags&pmm.FlagHuge)
}

func Test_HugeFreeReleasesMembersIndividually(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)
	before := a.FreeCount()

	h, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	a.Free(h)

	require.Equal(t, before, a.FreeCount(), "free-frame count is conserved")
	require.Zero(t, a.Info(h).Flags&pmm.FlagHuge, "marker cleared on free")

	// Former members are independently allocatable single frames. They
	// were pushed last, so the head of the list is inside the old run.
	f, ok := a.Alloc(0)
	require.True(t, ok)
	require.GreaterOrEqual(t, f, h)
	require.Less(t, f, h+pmm.Frame(layout.FramesPerHuge))
}

func Test_HugeAllocZeroFillsWholeRun(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)

	h, ok := a.Alloc(AllocHuge)
	require.True(t, ok)

	// Dirty a page in the middle of the run, then recycle it.
	mid := (h + pmm.Frame(layout.FramesPerHuge/2)).Address()
	for i, b := 0, a.bank.Range(mid, layout.PageSize); i < len(b); i++ {
		b[i] = 0x5A
	}
	a.Free(h)

	g, ok := a.Alloc(AllocHuge | AllocZero)
	require.True(t, ok)
	require.Equal(t, h, g)
	run := a.bank.Range(g.Address(), layout.HugePageSize)
	for i := 0; i < layout.HugePageSize; i += layout.PageSize {
		require.Zero(t, run[i], "first byte of page at offset %#x", i)
	}
	for i, b := range a.bank.Range(mid, layout.PageSize) {
		require.Zero(t, b, "dirtied byte %d", i)
	}
}

func Test_HugeAllocExhaustsEligibleRuns(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)

	h0, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	h1, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	require.GreaterOrEqual(t, absGap(h0.Address(), h1.Address()), uintptr(layout.HugePageSize),
		"runs never overlap")

	// Two runs gone, the frame-0 run was never eligible: exhaustion.
	_, ok = a.Alloc(AllocHuge)
	require.False(t, ok)

	// Plenty of single frames remain even so.
	_, ok = a.Alloc(0)
	require.True(t, ok)
}

func Test_HugeAllocSkipsPartiallyUsedRuns(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)

	// Knock one frame out of the middle run.
	a.remove(pmm.Frame(layout.FramesPerHuge + 17))
	a.Info(pmm.Frame(layout.FramesPerHuge + 17)).Link = pmm.LinkAllocated

	h, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	require.Equal(t, pmm.Frame(2*layout.FramesPerHuge), h,
		"scan skips the run with a missing member")
}

func Test_HugeInterleavedWithSingles(t *testing.T) {
	a := newTestAllocator(t, hugeTestFrames, frameZero)

	p0, ok := a.Alloc(0)
	require.True(t, ok)
	h, ok := a.Alloc(AllocHuge)
	require.True(t, ok)
	p1, ok := a.Alloc(0)
	require.True(t, ok)

	require.NotEqual(t, p0, p1)
	for _, p := range []pmm.Frame{p0, p1} {
		outside := p < h || p >= h+pmm.Frame(layout.FramesPerHuge)
		require.True(t, outside, "single frame %d inside huge run at %d", p, h)
	}

	stats := a.Stats()
	require.Equal(t, uint64(3), stats.Allocs)
	require.Equal(t, uint64(1), stats.HugeAllocs)
}

func absGap(a, b uintptr) uintptr {
	if a > b {
		return a - b
	}
	return b - a
}
