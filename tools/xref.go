package tools

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lookbusy1344/chip16/assembler"
)

// ReferenceType classifies how a line uses a 16-bit immediate target.
// Chip16 assembly has no label directive (spec.md §4.4), so cross-
// referencing works over raw addresses rather than symbol names —
// narrowing the teacher's symbol-table xref down to the one thing a
// flat, label-free instruction stream still has to offer: which lines
// touch which address.
type ReferenceType int

const (
	RefBranch ReferenceType = iota // JMP/JME target
	RefCall                        // CALL target
	RefLoad                        // LDI/LDM source address
	RefStore                       // STM destination address
	RefData                         // any other word-immediate operand
)

func (r ReferenceType) String() string {
	switch r {
	case RefBranch:
		return "branch"
	case RefCall:
		return "call"
	case RefLoad:
		return "load"
	case RefStore:
		return "store"
	case RefData:
		return "data"
	default:
		return "unknown"
	}
}

// Reference is a single line's use of an address.
type Reference struct {
	Type ReferenceType
	Line int
}

var refTypeByMnemonic = map[string]ReferenceType{
	"JMP":  RefBranch,
	"JME":  RefBranch,
	"CALL": RefCall,
	"LDI":  RefLoad,
	"LDM":  RefLoad,
	"STM":  RefStore,
}

// XRefGenerator builds a cross-reference of which source lines touch
// which 16-bit address.
type XRefGenerator struct {
	refs map[uint16][]*Reference
}

// NewXRefGenerator creates a new cross-reference generator.
func NewXRefGenerator() *XRefGenerator {
	return &XRefGenerator{refs: make(map[uint16][]*Reference)}
}

// Generate scans source line by line and records every word-immediate
// operand it finds, classified by the mnemonic that used it.
func (x *XRefGenerator) Generate(source string) map[uint16][]*Reference {
	for i, raw := range splitLines(source) {
		lineNo := i + 1
		tokens := assembler.Tokenize(raw)
		if len(tokens) == 0 {
			continue
		}
		mnemonic, operands := tokens[0], tokens[1:]
		refType, known := refTypeByMnemonic[mnemonic]
		if !known {
			refType = RefData
		}

		for _, tok := range operands {
			addr, ok := parseWordToken(tok)
			if !ok {
				continue
			}
			x.refs[addr] = append(x.refs[addr], &Reference{Type: refType, Line: lineNo})
		}
	}
	return x.refs
}

// parseWordToken parses a token as a 16-bit hex or decimal immediate. Hex
// tokens follow assembler.KindWord's grammar; decimal tokens are accepted
// only in [0, 0xFFFF], whereas KindWord also takes negative and larger
// decimals and truncates them to 16 bits.
func parseWordToken(tok string) (uint16, bool) {
	if strings.HasPrefix(tok, "0X") {
		n, err := strconv.ParseUint(tok[2:], 16, 16)
		if err != nil || len(tok) > 6 {
			return 0, false
		}
		return uint16(n), true
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil || n < 0 || n > 0xFFFF {
		return 0, false
	}
	return uint16(n), true
}

// Report renders the cross-reference as a text table, addresses in
// ascending order, each with every line and reference type that touches
// it.
func (x *XRefGenerator) Report() string {
	addrs := make([]uint16, 0, len(x.refs))
	for addr := range x.refs {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	var sb strings.Builder
	sb.WriteString("Address Cross-Reference\n")
	sb.WriteString("========================\n\n")
	for _, addr := range addrs {
		sb.WriteString(fmt.Sprintf("0x%04X\n", addr))
		for _, ref := range x.refs[addr] {
			sb.WriteString(fmt.Sprintf("  line %d: %s\n", ref.Line, ref.Type))
		}
	}
	return sb.String()
}

// CrossReference is a convenience function returning line numbers per
// address, keyed by the address formatted as "0xHHLL".
func CrossReference(source string) map[string][]int {
	gen := NewXRefGenerator()
	refs := gen.Generate(source)

	out := make(map[string][]int, len(refs))
	for addr, rs := range refs {
		lines := make([]int, len(rs))
		for i, r := range rs {
			lines[i] = r.Line
		}
		sort.Ints(lines)
		out[fmt.Sprintf("0x%04X", addr)] = lines
	}
	return out
}
