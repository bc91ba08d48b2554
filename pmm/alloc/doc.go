// Package alloc implements physical page-frame allocation: the bootstrap
// watermark allocator used before any real allocator exists, the free-list
// construction over the frame metadata array, and the frame allocator serving
// single-frame and huge-run requests with reference counting and double-free
// detection.
//
// # Allocation model
//
// The free list is an intrusive singly-linked chain threaded through the
// FrameInfo records by frame number. Single-frame allocation pops the head in
// constant time. Huge-run allocation scans huge-aligned candidate starts for
// FramesPerHuge consecutive free frames and splices each one out; the scan is
// O(N*K) in the worst case, a deliberate simplicity/performance trade-off.
// Huge allocation is rare relative to the single-frame hot path, and a
// smarter allocator would change the allocation-order behavior the boot
// self-checks assert against.
//
// # Failure model
//
// Exhaustion (no free frame, no contiguous run) is recoverable and reported
// by an invalid-frame result. Invariant violations (double free, reference
// count underflow, bootstrap exhaustion) are unrecoverable and panic with a
// sentinel error, because continuing past them risks silent memory
// corruption.
//
// # Concurrency
//
// The package is written for single-threaded bootstrap-time use and performs
// no locking. Huge-run reservation is a multi-step splice that must appear
// atomic; it is safe only because nothing else can run. Reusing the allocator
// once multiple execution contexts exist requires serializing every call
// behind one mutex; do not attempt finer-grained locking without redesigning
// the removal algorithm.
package alloc
