// Package nvram models the battery-backed CMOS register file queried during
// memory detection. The hardware surface is two independent byte reads per
// 16-bit value; the package keeps that shape so the detector reads registers
// the way the real firmware interface is read.
package nvram

import "github.com/framekit/framekit/internal/layout"

// Reader is the hardware data source consulted by memory detection. Reads
// are reliable and side-effect free.
type Reader interface {
	// Read returns the byte stored in the given CMOS register.
	Read(reg uint8) uint8
}

// Read16 combines the little-endian register pair (reg, reg+1) into one
// 16-bit value.
func Read16(r Reader, reg uint8) uint16 {
	return uint16(r.Read(reg)) | uint16(r.Read(reg+1))<<8
}

// Bank is an in-memory CMOS register file. The zero value has every
// register cleared, which reads as a machine with no memory installed.
type Bank struct {
	regs [128]uint8
}

// New returns a Bank programmed with the given base and extended memory
// sizes in kilobytes.
func New(baseKB, extKB uint16) *Bank {
	b := &Bank{}
	b.SetBaseKB(baseKB)
	b.SetExtKB(extKB)
	return b
}

// Read returns the byte stored in the given register.
func (b *Bank) Read(reg uint8) uint8 {
	return b.regs[reg&0x7f]
}

// SetBaseKB programs the base-memory size registers.
func (b *Bank) SetBaseKB(kb uint16) {
	b.regs[layout.NVRAMBaseLo] = uint8(kb)
	b.regs[layout.NVRAMBaseHi] = uint8(kb >> 8)
}

// SetExtKB programs the extended-memory size registers.
func (b *Bank) SetExtKB(kb uint16) {
	b.regs[layout.NVRAMExtLo] = uint8(kb)
	b.regs[layout.NVRAMExtHi] = uint8(kb >> 8)
}
