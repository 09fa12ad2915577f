// Package cpu implements the chip16 instruction interpreter: the register
// file, condition flags, program counter, stack pointer, and the
// decode/execute loop that steps through a program held in memory.
package cpu

import "github.com/lookbusy1344/chip16/memory"

// initialStackPointer is the top of the reserved stack region
// [0xFDF0, 0xFFF0), per spec.md §3.
const initialStackPointer uint16 = 0xFDF0

// CPU holds all chip16 machine state. It owns no resources beyond the
// Memory it is given; a CPU is safe to discard at any point without
// cleanup.
type CPU struct {
	Reg   [16]uint16
	PC    uint16
	SP    uint16
	Flags uint16
	Mem   *memory.Memory

	// VBlank is the one-writer/one-reader handshake with the (absent)
	// display front-end; see frontend.go. It is nil until SetVBlank is
	// called, and Step simply skips the signal when nil.
	VBlank *VBlankEvent
}

// NewCPU returns a CPU wired to mem, with the stack pointer at its initial
// value and every register, flag, and the program counter zeroed.
func NewCPU(mem *memory.Memory) *CPU {
	c := &CPU{Mem: mem}
	c.Reset()
	return c
}

// Reset restores the CPU to its initial state without touching Mem.
func (c *CPU) Reset() {
	c.Reg = [16]uint16{}
	c.PC = 0
	c.SP = initialStackPointer
	c.Flags = 0
}

// SetVBlank attaches a vblank handshake event, replacing any previous one.
func (c *CPU) SetVBlank(e *VBlankEvent) {
	c.VBlank = e
}
