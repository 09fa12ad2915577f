package cpu

import (
	"math/rand"

	"github.com/lookbusy1344/chip16/utils"
)

// Execute dispatches a fully assembled 32-bit opcode word. The top byte
// selects the instruction; reserved-field validation happens per
// spec.md §4.5.1 before any state is mutated. It never panics: unknown
// opcodes and reserved-bit violations return *InvalidOpcodeError, and
// memory accesses outside [0, 0xFFFE] surface memory's
// *AddressOutOfRangeError unchanged.
func (c *CPU) Execute(op32 uint32) error {
	d := decode(op32)

	invalid := func() error { return &InvalidOpcodeError{PC: c.PC, Opcode: op32} }
	requireMask := func(mask uint32) error {
		if !reservedClear(op32, mask) {
			return invalid()
		}
		return nil
	}

	switch d.op {
	// 0x - Misc/Video/Audio. The concrete framebuffer, palette, and sound
	// channels are an external front-end's responsibility (spec.md §1);
	// these opcodes are accepted and decoded but have no visible effect
	// here beyond the documented exceptions (VBLNK, RND).
	case 0x00: // NOP
	case 0x01: // CLS
	case 0x02: // VBLNK
		if c.VBlank != nil {
			c.VBlank.Signal()
		}
	case 0x03: // BGC N (nibble)
	case 0x04: // SPR HHLL
	case 0x05: // DRW Rx,Ry,HHLL
	case 0x06: // DRW Rx,Ry,Rz
	case 0x07: // RND Rx,HHLL: the one 0x-group opcode with CPU-visible
		// state, since it writes a register rather than pixels.
		if d.imm == 0 {
			c.Reg[d.x] = 0
		} else {
			c.Reg[d.x] = uint16(rand.Intn(int(d.imm) + 1))
		}
		c.FlagSet(c.Reg[d.x])
	case 0x08: // FLIP bit,bit
	case 0x09: // SND0
	case 0x0A, 0x0B, 0x0C: // SND1/SND2/SND3 HHLL
	case 0x0D: // SNP Rx,HHLL
	case 0x0E: // SNG BB,HHLL

	// 1x - Jumps/Calls
	case 0x10: // JMP HHLL
		c.PC = d.imm
	case 0x13: // JME Rx,Ry,HHLL
		if c.Reg[d.x] == c.Reg[d.y] {
			c.PC = d.imm
		}
	case 0x14: // CALL HHLL -- reads the target through memory rather than
		// jumping to imm directly; preserved bit-exactly per spec.md §9.
		if err := c.Mem.Write16(c.SP, c.PC); err != nil {
			return err
		}
		c.SP += 2
		target, err := c.Mem.Read16(d.imm)
		if err != nil {
			return err
		}
		c.PC = target
	case 0x15: // RET
		c.SP -= 2
		pc, err := c.Mem.Read16(c.SP)
		if err != nil {
			return err
		}
		c.PC = pc
	case 0x16: // JMP Rx
		c.PC = c.Reg[d.x]
	case 0x18: // CALL Rx
		if err := c.Mem.Write16(c.SP, c.PC); err != nil {
			return err
		}
		c.SP += 2
		c.PC = c.Reg[d.x]

	// 2x - Loads
	case 0x20: // LDI Rx,HHLL -- reads through memory rather than loading
		// imm directly; preserved bit-exactly per spec.md §9.
		v, err := c.Mem.Read16(d.imm)
		if err != nil {
			return err
		}
		c.Reg[d.x] = v
	case 0x21: // LDI SP,HHLL
		v, err := c.Mem.Read16(d.imm)
		if err != nil {
			return err
		}
		c.SP = v
	case 0x22: // LDM Rx,HHLL
		addr, err := c.Mem.Read16(d.imm)
		if err != nil {
			return err
		}
		v, err := c.Mem.Read16(addr)
		if err != nil {
			return err
		}
		c.Reg[d.x] = v
	case 0x23: // LDM Rx,Ry
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		v, err := c.Mem.Read16(c.Reg[d.y])
		if err != nil {
			return err
		}
		c.Reg[d.x] = v
	case 0x24: // MOV Rx,Ry
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		c.Reg[d.x] = c.Reg[d.y]

	// 3x - Stores
	case 0x30: // STM Rx,HHLL
		if err := c.Mem.Write16(d.imm, c.Reg[d.x]); err != nil {
			return err
		}
	case 0x31: // STM Rx,Ry
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		if err := c.Mem.Write16(c.Reg[d.y], c.Reg[d.x]); err != nil {
			return err
		}

	default:
		return c.executeALUAndBeyond(d, requireMask)
	}

	return nil
}

// executeALUAndBeyond covers the 4x-Ex opcode groups, split out so
// Execute's switch doesn't balloon past a skimmable size.
func (c *CPU) executeALUAndBeyond(d decoded, requireMask func(uint32) error) error {
	invalid := func() error { return &InvalidOpcodeError{PC: c.PC, Opcode: d.raw} }

	memOperand := func() (uint16, error) { return c.Mem.Read16(d.imm) }

	type binOp func(l, r uint16) uint16

	applyImm := func(op binOp, store bool) error {
		if err := requireMask(maskWordImm); err != nil {
			return err
		}
		r, err := memOperand()
		if err != nil {
			return err
		}
		result := op(c.Reg[d.x], r)
		if store {
			c.Reg[d.x] = result
		}
		return nil
	}
	applyRR := func(op binOp, store bool) error {
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		result := op(c.Reg[d.x], c.Reg[d.y])
		if store {
			c.Reg[d.x] = result
		}
		return nil
	}
	applyRRR := func(op binOp) error {
		if err := requireMask(maskRegRegReg); err != nil {
			return err
		}
		c.Reg[d.z] = op(c.Reg[d.x], c.Reg[d.y])
		return nil
	}
	applyShiftN := func(op binOp) error {
		if err := requireMask(maskShiftN); err != nil {
			return err
		}
		c.Reg[d.x] = op(c.Reg[d.x], uint16(d.n))
		return nil
	}
	applyShiftR := func(op binOp) error {
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		c.Reg[d.x] = op(c.Reg[d.x], c.Reg[d.y])
		return nil
	}

	switch d.op {
	// 4x - Addition
	case 0x40:
		return applyImm(c.add, true)
	case 0x41:
		return applyRR(c.add, true)
	case 0x42:
		return applyRRR(c.add)

	// 5x - Subtraction / Compare
	case 0x50:
		return applyImm(c.sub, true)
	case 0x51:
		return applyRR(c.sub, true)
	case 0x52:
		return applyRRR(c.sub)
	case 0x53:
		return applyImm(c.sub, false)
	case 0x54:
		return applyRR(c.sub, false)

	// 6x - Bitwise AND / Test
	case 0x60:
		return applyImm(c.and, true)
	case 0x61:
		return applyRR(c.and, true)
	case 0x62:
		return applyRRR(c.and)
	case 0x63:
		return applyImm(c.and, false)
	case 0x64:
		return applyRR(c.and, false)

	// 7x - Bitwise OR
	case 0x70:
		return applyImm(c.or, true)
	case 0x71:
		return applyRR(c.or, true)
	case 0x72:
		return applyRRR(c.or)

	// 8x - Bitwise XOR
	case 0x80:
		return applyImm(c.xor, true)
	case 0x81:
		return applyRR(c.xor, true)
	case 0x82:
		return applyRRR(c.xor)

	// 9x - Multiplication
	case 0x90:
		return applyImm(c.mul, true)
	case 0x91:
		return applyRR(c.mul, true)
	case 0x92:
		return applyRRR(c.mul)

	// Ax - Division / Modulo / Remainder
	case 0xA0:
		return applyImm(c.div, true)
	case 0xA1:
		return applyRR(c.div, true)
	case 0xA2:
		return applyRRR(c.div)
	case 0xA3:
		return applyImm(c.mod, true)
	case 0xA4:
		return applyRR(c.mod, true)
	case 0xA5:
		return applyRRR(c.mod)
	case 0xA6:
		return applyImm(c.rem, true)
	case 0xA7:
		return applyRR(c.rem, true)
	case 0xA8:
		return applyRRR(c.rem)

	// Bx - Shifts. B0/B1/B2 read a nibble immediate; B3/B4/B5 read a
	// register. See table.go's comment for how this mapping was chosen
	// among conflicting source revisions.
	case 0xB0:
		return applyShiftN(c.shl)
	case 0xB1:
		return applyShiftN(c.shr)
	case 0xB2:
		return applyShiftN(c.sar)
	case 0xB3:
		return applyShiftR(c.shl)
	case 0xB4:
		return applyShiftR(c.shr)
	case 0xB5:
		return applyShiftR(c.sar)

	// Cx - Stack
	case 0xC0: // PUSH Rx
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		if err := c.Mem.Write16(c.SP, c.Reg[d.x]); err != nil {
			return err
		}
		c.SP += 2
	case 0xC1: // POP Rx
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		c.SP -= 2
		v, err := c.Mem.Read16(c.SP)
		if err != nil {
			return err
		}
		c.Reg[d.x] = v
	case 0xC2: // PUSHALL
		if err := requireMask(maskStackAll); err != nil {
			return err
		}
		for i, v := range c.Reg {
			if err := c.Mem.Write16(c.SP+uint16(2*i), v); err != nil {
				return err
			}
		}
		c.SP += 32
	case 0xC3: // POPALL
		if err := requireMask(maskStackAll); err != nil {
			return err
		}
		c.SP -= 32
		for i := range c.Reg {
			v, err := c.Mem.Read16(c.SP + uint16(2*i))
			if err != nil {
				return err
			}
			c.Reg[i] = v
		}
	case 0xC4: // PUSHF
		if err := requireMask(maskStackAll); err != nil {
			return err
		}
		if err := c.Mem.Write16(c.SP, c.Flags); err != nil {
			return err
		}
		c.SP += 2
	case 0xC5: // POPF
		if err := requireMask(maskStackAll); err != nil {
			return err
		}
		c.SP -= 2
		v, err := c.Mem.Read16(c.SP)
		if err != nil {
			return err
		}
		c.Flags = v

	// Dx - Palette (front-end concern; accepted, no local effect)
	case 0xD0: // PAL HHLL
	case 0xD1: // PAL Rx

	// Ex - Not/Neg
	case 0xE0: // NOTI Rx,HHLL
		if err := requireMask(maskWordImm); err != nil {
			return err
		}
		v, err := memOperand()
		if err != nil {
			return err
		}
		c.Reg[d.x] = ^v & 0xFFFF
		c.FlagSet(c.Reg[d.x])
	case 0xE1: // NOT Rx
		c.Reg[d.x] = ^c.Reg[d.x] & 0xFFFF
		c.FlagSet(c.Reg[d.x])
	case 0xE2: // NOT Rx,Ry
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		c.Reg[d.x] = ^c.Reg[d.y] & 0xFFFF
		c.FlagSet(c.Reg[d.x])
	case 0xE3: // NEGI Rx,HHLL
		if err := requireMask(maskWordImm); err != nil {
			return err
		}
		v, err := memOperand()
		if err != nil {
			return err
		}
		c.Reg[d.x] = utils.Complement(v)
		c.FlagSet(c.Reg[d.x])
	case 0xE4: // NEG Rx
		c.Reg[d.x] = utils.Complement(c.Reg[d.x])
		c.FlagSet(c.Reg[d.x])
	case 0xE5: // NEG Rx,Ry
		if err := requireMask(maskRegReg); err != nil {
			return err
		}
		c.Reg[d.x] = utils.Complement(c.Reg[d.y])
		c.FlagSet(c.Reg[d.x])

	default:
		return invalid()
	}

	return nil
}
