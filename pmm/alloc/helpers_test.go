package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/framekit/framekit/internal/layout"
	"github.com/framekit/framekit/internal/physmem"
	"github.com/framekit/framekit/pmm"
)

// frameZero is the minimal reserved set: just the boot-sector frame.
var frameZero = []Region{{Start: 0, End: layout.PageSize, Name: "boot sector"}}

// newTestAllocator builds an allocator over nframes frames of real backing
// memory with the free list populated.
func newTestAllocator(t *testing.T, nframes int, reserved []Region) *Allocator {
	t.Helper()

	bank, err := physmem.Map(nframes * layout.PageSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bank.Close() })

	a := New(make([]pmm.FrameInfo, nframes), bank, reserved)
	a.PageInit()
	return a
}

// requirePanicErrorIs asserts that fn panics with an error wrapping want.
func requirePanicErrorIs(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v (%T) is not an error", r, r)
		require.ErrorIs(t, err, want)
	}()
	fn()
}
