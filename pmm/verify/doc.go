// Package verify implements the boot-time self-check diagnostics for the
// physical memory subsystem. The checks run once after bring-up and never on
// the allocation hot path; they double as an executable statement of the
// free-list and allocator invariants.
//
// Checks return a *ValidationError describing the first violation found.
// Callers treat any error as fatal: the subsystem must not continue past a
// broken free list or allocator.
package verify
