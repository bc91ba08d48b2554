// Package physmem provides the backing store standing in for installed RAM:
// a single page-aligned byte bank addressed by physical address. Frame
// contents (zero fill, poison fill, caller data) all live here.
package physmem

import (
	"fmt"

	"github.com/framekit/framekit/internal/layout"
)

// Bank is a contiguous run of simulated physical memory. The zero value is
// unusable; obtain one via Map.
type Bank struct {
	data    []byte
	release func() error
}

// Map reserves size bytes of physical memory. Size must be page aligned.
func Map(size int) (*Bank, error) {
	if size <= 0 || !layout.PageAligned(uintptr(size)) {
		return nil, fmt.Errorf("physmem: size %#x not a positive page multiple", size)
	}
	data, release, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("physmem: map %d bytes: %w", size, err)
	}
	return &Bank{data: data, release: release}, nil
}

// Size returns the bank size in bytes.
func (b *Bank) Size() int {
	return len(b.data)
}

// Range returns the n bytes starting at physical address pa.
func (b *Bank) Range(pa uintptr, n int) []byte {
	end := int(pa) + n
	if int(pa) > len(b.data) || end > len(b.data) || n < 0 {
		panic(fmt.Sprintf("physmem: range [%#x, %#x) outside bank of %#x bytes", pa, end, len(b.data)))
	}
	return b.data[pa:end]
}

// Page returns the PageSize bytes of the page containing pa. The address
// must be page aligned.
func (b *Bank) Page(pa uintptr) []byte {
	if !layout.PageAligned(pa) {
		panic(fmt.Sprintf("physmem: page address %#x not aligned", pa))
	}
	return b.Range(pa, layout.PageSize)
}

// Close releases the mapping. Safe to call more than once.
func (b *Bank) Close() error {
	if b.release == nil {
		return nil
	}
	err := b.release()
	b.release = nil
	b.data = nil
	return err
}
