package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_AlignPage(t *testing.T) {
	cases := []struct {
		in, want uintptr
	}{
		{0, 0},
		{1, PageSize},
		{PageSize - 1, PageSize},
		{PageSize, PageSize},
		{PageSize + 1, 2 * PageSize},
		{3*PageSize + 17, 4 * PageSize},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AlignPage(c.in), "AlignPage(%d)", c.in)
	}
}

func Test_AlignPageDown(t *testing.T) {
	require.Equal(t, uintptr(0), AlignPageDown(PageSize-1))
	require.Equal(t, uintptr(PageSize), AlignPageDown(PageSize))
	require.Equal(t, uintptr(PageSize), AlignPageDown(2*PageSize-1))
}

func Test_AlignHuge(t *testing.T) {
	require.Equal(t, uintptr(0), AlignHuge(0))
	require.Equal(t, uintptr(HugePageSize), AlignHuge(1))
	require.Equal(t, uintptr(HugePageSize), AlignHuge(HugePageSize))
	require.Equal(t, uintptr(2*HugePageSize), AlignHuge(HugePageSize+1))
}

func Test_Aligned(t *testing.T) {
	require.True(t, PageAligned(0))
	require.True(t, PageAligned(PageSize))
	require.False(t, PageAligned(PageSize+1))
	require.True(t, HugeAligned(HugePageSize))
	require.False(t, HugeAligned(PageSize))
}

// The I/O hole and extended memory boundary must both be page aligned, and
// the huge run size must evenly tile ordinary frames.
func Test_LayoutInvariants(t *testing.T) {
	require.True(t, PageAligned(IOPhysMem))
	require.True(t, PageAligned(ExtPhysMem))
	require.Equal(t, HugePageSize/PageSize, FramesPerHuge)
	require.Zero(t, HugePageSize%PageSize)
	require.Less(t, uintptr(IOPhysMem), uintptr(ExtPhysMem))
}
