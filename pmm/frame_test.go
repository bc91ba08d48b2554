package pmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framekit/framekit/internal/layout"
)

func Test_FrameAddressRoundTrip(t *testing.T) {
	for _, f := range []Frame{0, 1, 255, 0x100000/layout.PageSize + 7} {
		pa := f.Address()
		require.True(t, layout.PageAligned(pa))
		require.Equal(t, f, FrameAt(pa))
		require.Equal(t, f, FrameAt(pa+layout.PageSize-1), "any byte of the page maps back")
	}
}

func Test_KernVirtIsLinearOffset(t *testing.T) {
	f := Frame(42)
	require.Equal(t, uintptr(layout.KernBase)+f.Address(), f.KernVirt())
}

func Test_InvalidFrame(t *testing.T) {
	require.False(t, InvalidFrame.Valid())
	require.True(t, Frame(0).Valid())
}

func Test_FrameLinkTagging(t *testing.T) {
	require.False(t, LinkAllocated.OnFreeList())
	require.True(t, ListEnd.OnFreeList())
	require.True(t, LinkTo(0).OnFreeList())

	_, ok := LinkAllocated.Next()
	require.False(t, ok)
	_, ok = ListEnd.Next()
	require.False(t, ok)

	next, ok := LinkTo(17).Next()
	require.True(t, ok)
	require.Equal(t, Frame(17), next)

	// Frame 0 is representable as a link target and distinct from both
	// sentinels.
	next, ok = LinkTo(0).Next()
	require.True(t, ok)
	require.Equal(t, Frame(0), next)
}
