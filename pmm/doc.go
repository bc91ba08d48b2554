// Package pmm contains the core types for physical memory management: frame
// numbers and their address conversions, per-frame metadata records, and the
// memory map produced by hardware detection.
//
// # Overview
//
// Physical memory is tracked at page granularity. Every installed frame gets
// one FrameInfo record, created once at boot and mutated only by the free-list
// and frame-allocator code in pmm/alloc. The FrameLink field of a record is a
// tagged value doubling as the free-list chain and the double-free sentinel:
// a record is on the free list when and only when its link is not
// LinkAllocated.
//
// # Subpackages
//
//   - pmm/alloc: bootstrap (watermark) allocator and the page-frame allocator
//   - pmm/boot: one-shot bring-up wiring detection, metadata, and free list
//   - pmm/verify: boot-time self-check diagnostics
package pmm
