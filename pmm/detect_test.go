package pmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/internal/nvram"
)

func Test_DetectWithExtendedMemory(t *testing.T) {
	// 640 KB base, 31 MB extended: a small but complete machine.
	m := Detect(nvram.New(640, 31*1024), nil)

	require.Equal(t, uint32(640*1024/layout.PageSize), m.BasePages)
	require.Equal(t, uint32(31*1024*1024/layout.PageSize), m.ExtPages)
	require.Equal(t, uint32(layout.ExtPhysMem/layout.PageSize)+m.ExtPages, m.NPages)
	require.Equal(t, uintptr(m.NPages)*layout.PageSize, m.TotalBytes())
}

func Test_DetectBaseMemoryOnly(t *testing.T) {
	// No extended memory is a valid configuration, not an error.
	m := Detect(nvram.New(640, 0), nil)

	require.Equal(t, uint32(0), m.ExtPages)
	require.Equal(t, m.BasePages, m.NPages)
}

func Test_DetectSummaryLine(t *testing.T) {
	m := Detect(nvram.New(640, 1024), nil)
	require.Contains(t, m.String(), "base = 640K")
	require.Contains(t, m.String(), "extended = 1024K")
}
