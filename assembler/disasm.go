package assembler

import "fmt"

// disasmEntry is one opcode's human-readable rendering, keyed by the
// opcode byte the way the pack's 6502 disassembler keys its Opcode table
// by Value — but chip16's fixed 4-byte width means there's no Length
// field to track, only how to print the other three bytes.
type disasmEntry struct {
	mnemonic string
	format   func(yx, ll, hh byte) string
}

func regName(n byte) string { return fmt.Sprintf("R%X", n&0x0F) }

func word(ll, hh byte) uint16 { return uint16(hh)<<8 | uint16(ll) }

var disasmTable = map[byte]disasmEntry{
	0x00: {"NOP", func(yx, ll, hh byte) string { return "NOP" }},
	0x01: {"CLS", func(yx, ll, hh byte) string { return "CLS" }},
	0x02: {"VBLNK", func(yx, ll, hh byte) string { return "VBLNK" }},
	0x03: {"BGC", func(yx, ll, hh byte) string { return fmt.Sprintf("BGC 0x%X", ll&0x0F) }},
	0x04: {"SPR", func(yx, ll, hh byte) string { return fmt.Sprintf("SPR 0x%04X", word(ll, hh)) }},
	0x05: {"DRW", func(yx, ll, hh byte) string {
		return fmt.Sprintf("DRW %s, %s, 0x%04X", regName(yx&0x0F), regName(yx>>4), word(ll, hh))
	}},
	0x06: {"DRW", func(yx, ll, hh byte) string {
		return fmt.Sprintf("DRW %s, %s, %s", regName(yx&0x0F), regName(yx>>4), regName(ll&0x0F))
	}},
	0x07: {"RND", func(yx, ll, hh byte) string { return fmt.Sprintf("RND %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0x08: {"FLIP", func(yx, ll, hh byte) string { return fmt.Sprintf("FLIP %d, %d", (hh>>1)&1, hh&1) }},
	0x09: {"SND0", func(yx, ll, hh byte) string { return "SND0" }},
	0x0A: {"SND1", func(yx, ll, hh byte) string { return fmt.Sprintf("SND1 0x%04X", word(ll, hh)) }},
	0x0B: {"SND2", func(yx, ll, hh byte) string { return fmt.Sprintf("SND2 0x%04X", word(ll, hh)) }},
	0x0C: {"SND3", func(yx, ll, hh byte) string { return fmt.Sprintf("SND3 0x%04X", word(ll, hh)) }},
	0x0D: {"SNP", func(yx, ll, hh byte) string { return fmt.Sprintf("SNP %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0x0E: {"SNG", func(yx, ll, hh byte) string { return fmt.Sprintf("SNG 0x%02X, 0x%04X", yx, word(ll, hh)) }},

	0x10: {"JMP", func(yx, ll, hh byte) string { return fmt.Sprintf("JMP 0x%04X", word(ll, hh)) }},
	0x13: {"JME", func(yx, ll, hh byte) string {
		return fmt.Sprintf("JME %s, %s, 0x%04X", regName(yx&0x0F), regName(yx>>4), word(ll, hh))
	}},
	0x14: {"CALL", func(yx, ll, hh byte) string { return fmt.Sprintf("CALL 0x%04X", word(ll, hh)) }},
	0x15: {"RET", func(yx, ll, hh byte) string { return "RET" }},
	0x16: {"JMP", func(yx, ll, hh byte) string { return fmt.Sprintf("JMP %s", regName(yx&0x0F)) }},
	0x18: {"CALL", func(yx, ll, hh byte) string { return fmt.Sprintf("CALL %s", regName(yx&0x0F)) }},

	0x20: {"LDI", func(yx, ll, hh byte) string { return fmt.Sprintf("LDI %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0x21: {"LDI", func(yx, ll, hh byte) string { return fmt.Sprintf("LDI SP, 0x%04X", word(ll, hh)) }},
	0x22: {"LDM", func(yx, ll, hh byte) string { return fmt.Sprintf("LDM %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0x23: {"LDM", func(yx, ll, hh byte) string { return fmt.Sprintf("LDM %s, %s", regName(yx&0x0F), regName(yx>>4)) }},
	0x24: {"MOV", func(yx, ll, hh byte) string { return fmt.Sprintf("MOV %s, %s", regName(yx&0x0F), regName(yx>>4)) }},

	0x30: {"STM", func(yx, ll, hh byte) string { return fmt.Sprintf("STM %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0x31: {"STM", func(yx, ll, hh byte) string { return fmt.Sprintf("STM %s, %s", regName(yx&0x0F), regName(yx>>4)) }},

	0xC0: {"PUSH", func(yx, ll, hh byte) string { return fmt.Sprintf("PUSH %s", regName(yx&0x0F)) }},
	0xC1: {"POP", func(yx, ll, hh byte) string { return fmt.Sprintf("POP %s", regName(yx&0x0F)) }},
	0xC2: {"PUSHALL", func(yx, ll, hh byte) string { return "PUSHALL" }},
	0xC3: {"POPALL", func(yx, ll, hh byte) string { return "POPALL" }},
	0xC4: {"PUSHF", func(yx, ll, hh byte) string { return "PUSHF" }},
	0xC5: {"POPF", func(yx, ll, hh byte) string { return "POPF" }},

	0xD0: {"PAL", func(yx, ll, hh byte) string { return fmt.Sprintf("PAL 0x%04X", word(ll, hh)) }},
	0xD1: {"PAL", func(yx, ll, hh byte) string { return fmt.Sprintf("PAL %s", regName(yx&0x0F)) }},

	0xE0: {"NOTI", func(yx, ll, hh byte) string { return fmt.Sprintf("NOTI %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0xE1: {"NOT", func(yx, ll, hh byte) string { return fmt.Sprintf("NOT %s", regName(yx&0x0F)) }},
	0xE2: {"NOT", func(yx, ll, hh byte) string { return fmt.Sprintf("NOT %s, %s", regName(yx&0x0F), regName(yx>>4)) }},
	0xE3: {"NEGI", func(yx, ll, hh byte) string { return fmt.Sprintf("NEGI %s, 0x%04X", regName(yx&0x0F), word(ll, hh)) }},
	0xE4: {"NEG", func(yx, ll, hh byte) string { return fmt.Sprintf("NEG %s", regName(yx&0x0F)) }},
	0xE5: {"NEG", func(yx, ll, hh byte) string { return fmt.Sprintf("NEG %s, %s", regName(yx&0x0F), regName(yx>>4)) }},
}

func init() {
	// 4x-Ax: the imm/reg/reg-reg-reg ALU groups share one naming and
	// operand-shape pattern per opcode-group base, varying only the
	// mnemonic and the group's base byte.
	aluGroups := []struct {
		base             byte
		immOp, rrOp, rrr string
	}{
		{0x40, "ADDI", "ADD", "ADD"},
		{0x50, "SUBI", "SUB", "SUB"},
		{0x60, "ANDI", "AND", "AND"},
		{0x70, "ORI", "OR", "OR"},
		{0x80, "XORI", "XOR", "XOR"},
		{0x90, "MULI", "MUL", "MUL"},
		{0xA0, "DIVI", "DIV", "DIV"},
	}
	for _, g := range aluGroups {
		g := g
		disasmTable[g.base] = disasmEntry{g.immOp, func(yx, ll, hh byte) string {
			return fmt.Sprintf("%s %s, 0x%04X", g.immOp, regName(yx&0x0F), word(ll, hh))
		}}
		disasmTable[g.base+1] = disasmEntry{g.rrOp, func(yx, ll, hh byte) string {
			return fmt.Sprintf("%s %s, %s", g.rrOp, regName(yx&0x0F), regName(yx>>4))
		}}
		disasmTable[g.base+2] = disasmEntry{g.rrr, func(yx, ll, hh byte) string {
			return fmt.Sprintf("%s %s, %s, %s", g.rrr, regName(yx&0x0F), regName(yx>>4), regName(ll&0x0F))
		}}
	}
	// 5x/6x carry a compare/test pair beyond the shared ALU shape above.
	disasmTable[0x53] = disasmEntry{"CMPI", func(yx, ll, hh byte) string {
		return fmt.Sprintf("CMPI %s, 0x%04X", regName(yx&0x0F), word(ll, hh))
	}}
	disasmTable[0x54] = disasmEntry{"CMP", func(yx, ll, hh byte) string {
		return fmt.Sprintf("CMP %s, %s", regName(yx&0x0F), regName(yx>>4))
	}}
	disasmTable[0x63] = disasmEntry{"TSTI", func(yx, ll, hh byte) string {
		return fmt.Sprintf("TSTI %s, 0x%04X", regName(yx&0x0F), word(ll, hh))
	}}
	disasmTable[0x64] = disasmEntry{"TST", func(yx, ll, hh byte) string {
		return fmt.Sprintf("TST %s, %s", regName(yx&0x0F), regName(yx>>4))
	}}
	// Ax also carries MOD/MODI/REM/REMI beyond DIV's shared shape.
	disasmTable[0xA3] = disasmEntry{"MODI", func(yx, ll, hh byte) string {
		return fmt.Sprintf("MODI %s, 0x%04X", regName(yx&0x0F), word(ll, hh))
	}}
	disasmTable[0xA4] = disasmEntry{"MOD", func(yx, ll, hh byte) string {
		return fmt.Sprintf("MOD %s, %s", regName(yx&0x0F), regName(yx>>4))
	}}
	disasmTable[0xA5] = disasmEntry{"MOD", func(yx, ll, hh byte) string {
		return fmt.Sprintf("MOD %s, %s, %s", regName(yx&0x0F), regName(yx>>4), regName(ll&0x0F))
	}}
	disasmTable[0xA6] = disasmEntry{"REMI", func(yx, ll, hh byte) string {
		return fmt.Sprintf("REMI %s, 0x%04X", regName(yx&0x0F), word(ll, hh))
	}}
	disasmTable[0xA7] = disasmEntry{"REM", func(yx, ll, hh byte) string {
		return fmt.Sprintf("REM %s, %s", regName(yx&0x0F), regName(yx>>4))
	}}
	disasmTable[0xA8] = disasmEntry{"REM", func(yx, ll, hh byte) string {
		return fmt.Sprintf("REM %s, %s, %s", regName(yx&0x0F), regName(yx>>4), regName(ll&0x0F))
	}}
	// Bx shifts: N-form reads a nibble immediate, R-form a register.
	shiftGroups := []struct {
		base       byte
		nOp, rOp   string
	}{
		{0xB0, "SHL", "SHL"},
		{0xB1, "SHR", "SHR"},
		{0xB2, "SAR", "SAR"},
	}
	for _, g := range shiftGroups {
		g := g
		disasmTable[g.base] = disasmEntry{g.nOp, func(yx, ll, hh byte) string {
			return fmt.Sprintf("%s %s, 0x%X", g.nOp, regName(yx&0x0F), ll&0x0F)
		}}
		disasmTable[g.base+3] = disasmEntry{g.rOp, func(yx, ll, hh byte) string {
			return fmt.Sprintf("%s %s, %s", g.rOp, regName(yx&0x0F), regName(yx>>4))
		}}
	}
}

// Disassemble renders each 4-byte instruction in data as one line of
// source text, best-effort: an opcode byte with no table entry renders
// as a "; DATA" comment line rather than failing the whole pass, since a
// ROM image may embed non-code bytes the decoder can't distinguish from
// instructions without symbol information.
func Disassemble(data []byte) []string {
	var lines []string
	for i := 0; i+4 <= len(data); i += 4 {
		op, yx, ll, hh := data[i], data[i+1], data[i+2], data[i+3]
		entry, ok := disasmTable[op]
		if !ok {
			lines = append(lines, fmt.Sprintf("; DATA 0x%02X 0x%02X 0x%02X 0x%02X", op, yx, ll, hh))
			continue
		}
		lines = append(lines, entry.format(yx, ll, hh))
	}
	return lines
}
