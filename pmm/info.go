package pmm

// FrameLink is the tagged link field of a frame record. A record is on the
// free list exactly when its link is not LinkAllocated; the free-state value
// is either the next free frame's number or ListEnd. Using frame numbers
// instead of record addresses keeps the chain index-checked and free of
// pointer aliasing.
type FrameLink int32

const (
	// LinkAllocated marks a record that is not on the free list.
	LinkAllocated FrameLink = -1

	// ListEnd marks the final record of the free list (and an empty list
	// when stored as the head).
	ListEnd FrameLink = -2
)

// OnFreeList reports whether the record carrying this link is chained into
// the free list.
func (l FrameLink) OnFreeList() bool {
	return l != LinkAllocated
}

// Next returns the frame this link points at, or false at the end of the
// list (or for an allocated record).
func (l FrameLink) Next() (Frame, bool) {
	if l < 0 {
		return InvalidFrame, false
	}
	return Frame(l), true
}

// LinkTo returns a link pointing at frame f.
func LinkTo(f Frame) FrameLink {
	return FrameLink(f)
}

// FrameFlags is the per-frame flag bit set.
type FrameFlags uint16

const (
	// FlagHuge marks the base frame of a live huge run. Set on the first
	// frame only; cleared when the run is freed.
	FlagHuge FrameFlags = 1 << 0
)

// FrameInfo is the metadata record for one physical frame. Records are
// created once, sized exactly to the installed frame count, and live for the
// kernel's lifetime; only Link, Ref, and Flags mutate, and only through the
// free-list and allocator code.
type FrameInfo struct {
	// Link chains free records and doubles as the double-free sentinel.
	Link FrameLink

	// Ref counts live owners (page-table mappings and the like) while the
	// frame is allocated. The allocator never increments it.
	Ref uint16

	// Flags is the frame's flag bit set.
	Flags FrameFlags
}
