package layout

// Alignment utilities for the physical memory layout. Frame metadata, boot
// allocations, and huge runs all require page or huge-page granularity.

// AlignPage returns n rounded up to the next page boundary.
//
// Example:
//
//	AlignPage(1)    = 4096
//	AlignPage(4096) = 4096
//	AlignPage(4097) = 8192
func AlignPage(n uintptr) uintptr {
	return (n + pageAlignMask) & ^uintptr(pageAlignMask)
}

// AlignPageDown returns n rounded down to the containing page boundary.
func AlignPageDown(n uintptr) uintptr {
	return n & ^uintptr(pageAlignMask)
}

// AlignHuge returns n rounded up to the next huge-page boundary.
//
// Example:
//
//	AlignHuge(1)       = 4194304
//	AlignHuge(4194304) = 4194304
func AlignHuge(n uintptr) uintptr {
	return (n + hugeAlignMask) & ^uintptr(hugeAlignMask)
}

// PageAligned reports whether n sits on a page boundary.
func PageAligned(n uintptr) bool {
	return n&pageAlignMask == 0
}

// HugeAligned reports whether n sits on a huge-page boundary.
func HugeAligned(n uintptr) bool {
	return n&hugeAlignMask == 0
}
