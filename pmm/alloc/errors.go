package alloc

import "errors"

var (
	// ErrDoubleFree indicates an attempt to free a frame that is already
	// on the free list (or whose metadata is corrupt). Carried by the
	// panic raised from Allocator.Free.
	ErrDoubleFree = errors.New("alloc: double free detected")

	// ErrRefUnderflow indicates Decref was called on a frame whose
	// reference count is already zero. Carried by the panic raised from
	// Allocator.Decref.
	ErrRefUnderflow = errors.New("alloc: reference count underflow")

	// ErrBootstrapExhausted indicates the bootstrap watermark ran past
	// the end of physical memory. Carried by the panic raised from
	// Bootstrap.Alloc.
	ErrBootstrapExhausted = errors.New("alloc: bootstrap allocator exhausted physical memory")
)
