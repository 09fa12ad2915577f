package assembler

// Encoding template constructors. Each returns a Candidate whose Encode
// closes over the opcode byte and lays out operand values into the 4-byte
// instruction per the canonical templates (spec.md table in §4.4.3).

func nullary(op byte) Candidate {
	return Candidate{
		Sig:    Signature{},
		Encode: func(vals []uint16) [4]byte { return [4]byte{op, 0, 0, 0} },
	}
}

func unaryReg(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg},
		Encode: func(vals []uint16) [4]byte {
			return [4]byte{op, byte(vals[0]), 0, 0}
		},
	}
}

func unaryNibble(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindNibble},
		Encode: func(vals []uint16) [4]byte {
			return [4]byte{op, 0, byte(vals[0]), 0}
		},
	}
}

func unaryWord(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindWord},
		Encode: func(vals []uint16) [4]byte {
			return [4]byte{op, 0, byte(vals[0]), byte(vals[0] >> 8)}
		},
	}
}

func binaryRegReg(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg, KindReg},
		Encode: func(vals []uint16) [4]byte {
			x, y := vals[0], vals[1]
			return [4]byte{op, byte(y<<4 | x), 0, 0}
		},
	}
}

func binaryRegWord(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg, KindWord},
		Encode: func(vals []uint16) [4]byte {
			x, word := vals[0], vals[1]
			return [4]byte{op, byte(x), byte(word), byte(word >> 8)}
		},
	}
}

func binaryRegNibble(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg, KindNibble},
		Encode: func(vals []uint16) [4]byte {
			x, n := vals[0], vals[1]
			return [4]byte{op, byte(x), byte(n), 0}
		},
	}
}

func binarySPWord(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindSP, KindWord},
		Encode: func(vals []uint16) [4]byte {
			word := vals[1]
			return [4]byte{op, 0, byte(word), byte(word >> 8)}
		},
	}
}

func byteWord(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindByte, KindWord},
		Encode: func(vals []uint16) [4]byte {
			b, word := vals[0], vals[1]
			return [4]byte{op, byte(b), byte(word), byte(word >> 8)}
		},
	}
}

func trinaryRegRegReg(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg, KindReg, KindReg},
		Encode: func(vals []uint16) [4]byte {
			x, y, z := vals[0], vals[1], vals[2]
			return [4]byte{op, byte(y<<4 | x), byte(z), 0}
		},
	}
}

func trinaryRegRegWord(op byte) Candidate {
	return Candidate{
		Sig: Signature{KindReg, KindReg, KindWord},
		Encode: func(vals []uint16) [4]byte {
			x, y, word := vals[0], vals[1], vals[2]
			return [4]byte{op, byte(y<<4 | x), byte(word), byte(word >> 8)}
		},
	}
}

// flipCandidate is FLIP bit,bit: a fixed opcode 0x08 with the two bits
// packed into the low nibble of B3. It has no opcode parameter since FLIP
// only ever encodes to 0x08.
func flipCandidate() Candidate {
	return Candidate{
		Sig: Signature{KindBit, KindBit},
		Encode: func(vals []uint16) [4]byte {
			v := vals[0]<<1 | vals[1]
			return [4]byte{0x08, 0, 0, byte(v)}
		},
	}
}

// instructionTable maps each mnemonic to its ordered candidate list.
// Candidate order matters wherever operand shapes could otherwise overlap
// (spec.md §4.4.2); where chip16's token shapes (register vs "SP" vs
// 0x-prefixed immediates) are already mutually exclusive, the order below
// simply follows the published table for readability.
//
// The Bx shift group has a genuine inconsistency across the source
// material this table was distilled from: the assembler-side table
// assigns SHL/SAL a shared nibble opcode (0xB0) but distinct register
// opcodes, while the CPU-side test vectors and the CPU's
// reserved-field mask grouping ("B0, B1, B2 reading N") agree on a
// different, internally consistent scheme: three nibble-immediate forms
// (B0/B1/B2) and three register forms (B3/B4/B5), one pair per mnemonic.
// The latter is used here; SAL is a pure assembler alias of SHL with no
// opcodes of its own, matching the "SAL aliases SHL" note.
var instructionTable = map[string][]Candidate{
	// 0x - Misc/Video/Audio
	"NOP":   {nullary(0x00)},
	"CLS":   {nullary(0x01)},
	"VBLNK": {nullary(0x02)},
	"BGC":   {unaryNibble(0x03)},
	"SPR":   {unaryWord(0x04)},
	"DRW":   {trinaryRegRegWord(0x05), trinaryRegRegReg(0x06)},
	"RND":   {binaryRegWord(0x07)},
	"FLIP":  {flipCandidate()},
	"SND0":  {nullary(0x09)},
	"SND1":  {unaryWord(0x0A)},
	"SND2":  {unaryWord(0x0B)},
	"SND3":  {unaryWord(0x0C)},
	"SNP":   {binaryRegWord(0x0D)},
	// SNG's Rx,word candidate is vestigial: real chip16 assembly only uses
	// the byte,word form. It is listed after byteWord so it can never
	// shadow the documented form (the two operand shapes don't actually
	// overlap lexically, but the ordering documents intent).
	"SNG": {byteWord(0x0E), binaryRegWord(0x0D)},

	// 1x - Jumps (Branches)
	"JMP":  {unaryWord(0x10), unaryReg(0x16)},
	"JME":  {trinaryRegRegWord(0x13)},
	"CALL": {unaryWord(0x14), unaryReg(0x18)},
	"RET":  {nullary(0x15)},

	// 2x - Loads
	"LDI": {binaryRegWord(0x20), binarySPWord(0x21)},
	"LDM": {binaryRegWord(0x22), binaryRegReg(0x23)},
	"MOV": {binaryRegReg(0x24)},

	// 3x - Stores
	"STM": {binaryRegWord(0x30), binaryRegReg(0x31)},

	// 4x - Addition
	"ADDI": {binaryRegWord(0x40)},
	"ADD":  {binaryRegReg(0x41), trinaryRegRegReg(0x42)},

	// 5x - Subtraction / Compare
	"SUBI": {binaryRegWord(0x50)},
	"SUB":  {binaryRegReg(0x51), trinaryRegRegReg(0x52)},
	"CMPI": {binaryRegWord(0x53)},
	"CMP":  {binaryRegReg(0x54)},

	// 6x - Bitwise AND
	"ANDI": {binaryRegWord(0x60)},
	"AND":  {binaryRegReg(0x61), trinaryRegRegReg(0x62)},
	"TSTI": {binaryRegWord(0x63)},
	"TST":  {binaryRegReg(0x64)},

	// 7x - Bitwise OR
	"ORI": {binaryRegWord(0x70)},
	"OR":  {binaryRegReg(0x71), trinaryRegRegReg(0x72)},

	// 8x - Bitwise XOR
	"XORI": {binaryRegWord(0x80)},
	"XOR":  {binaryRegReg(0x81), trinaryRegRegReg(0x82)},

	// 9x - Multiplication
	"MULI": {binaryRegWord(0x90)},
	"MUL":  {binaryRegReg(0x91), trinaryRegRegReg(0x92)},

	// Ax - Division
	"DIVI": {binaryRegWord(0xA0)},
	"DIV":  {binaryRegReg(0xA1), trinaryRegRegReg(0xA2)},
	"MODI": {binaryRegWord(0xA3)},
	"MOD":  {binaryRegReg(0xA4), trinaryRegRegReg(0xA5)},
	"REMI": {binaryRegWord(0xA6)},
	"REM":  {binaryRegReg(0xA7), trinaryRegRegReg(0xA8)},

	// Bx - Logical/Arithmetic Shifts
	"SHL": {binaryRegNibble(0xB0), binaryRegReg(0xB3)},
	"SHR": {binaryRegNibble(0xB1), binaryRegReg(0xB4)},
	"SAR": {binaryRegNibble(0xB2), binaryRegReg(0xB5)},
	"SAL": {binaryRegNibble(0xB0), binaryRegReg(0xB3)}, // alias of SHL

	// Cx - Push/Pop
	"PUSH":    {unaryReg(0xC0)},
	"POP":     {unaryReg(0xC1)},
	"PUSHALL": {nullary(0xC2)},
	"POPALL":  {nullary(0xC3)},
	"PUSHF":   {nullary(0xC4)},
	"POPF":    {nullary(0xC5)},

	// Dx - Palette
	"PAL": {unaryWord(0xD0), unaryReg(0xD1)},

	// Ex - Not/Neg
	"NOTI": {binaryRegWord(0xE0)},
	"NOT":  {unaryReg(0xE1), binaryRegReg(0xE2)},
	"NEGI": {binaryRegWord(0xE3)},
	"NEG":  {unaryReg(0xE4), binaryRegReg(0xE5)},
}
