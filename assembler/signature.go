package assembler

import (
	"strconv"
	"strings"

	"github.com/lookbusy1344/chip16/utils"
)

// OperandKind tags the shape of a single operand token.
type OperandKind int

const (
	KindReg    OperandKind = iota // R0..RF
	KindSP                        // the literal SP
	KindWord                      // 0x or decimal 16-bit immediate
	KindByte                      // 0x 1-2 hex digit immediate
	KindNibble                    // 0x 1 hex digit immediate
	KindBit                       // literal 0 or 1
)

// Signature is the ordered operand shape a Candidate expects.
type Signature []OperandKind

// Candidate is one encoder a mnemonic may dispatch to: it accepts operand
// tokens matching Sig, in which case Encode builds the 4-byte instruction
// from the parsed values (in the order the tokens appeared).
type Candidate struct {
	Sig    Signature
	Encode func(vals []uint16) [4]byte
}

// matchToken attempts to parse tok as an operand of the given kind.
func matchToken(tok string, kind OperandKind) (uint16, bool) {
	switch kind {
	case KindReg:
		if len(tok) == 2 && tok[0] == 'R' {
			if n, err := strconv.ParseUint(tok[1:], 16, 4); err == nil {
				return uint16(n), true
			}
		}
		return 0, false

	case KindSP:
		return 0, tok == "SP"

	case KindWord:
		if strings.HasPrefix(tok, "0X") {
			n, err := strconv.ParseUint(tok[2:], 16, 16)
			if err != nil || len(tok) > 6 {
				return 0, false
			}
			return uint16(n), true
		}
		n, err := strconv.ParseInt(tok, 10, 32)
		if err != nil {
			return 0, false
		}
		return utils.ToHex(int32(n)), true

	case KindByte:
		if strings.HasPrefix(tok, "0X") && len(tok) >= 3 && len(tok) <= 4 {
			n, err := strconv.ParseUint(tok[2:], 16, 8)
			if err != nil {
				return 0, false
			}
			return uint16(n), true
		}
		return 0, false

	case KindNibble:
		if strings.HasPrefix(tok, "0X") && len(tok) == 3 {
			n, err := strconv.ParseUint(tok[2:], 16, 4)
			if err != nil {
				return 0, false
			}
			return uint16(n), true
		}
		return 0, false

	case KindBit:
		if tok == "0" || tok == "1" {
			return uint16(tok[0] - '0'), true
		}
		return 0, false
	}
	return 0, false
}

// matchOperands checks operand tokens against sig and returns the parsed
// values in order, or ok=false on any mismatch (including arity).
func matchOperands(tokens []string, sig Signature) ([]uint16, bool) {
	if len(tokens) != len(sig) {
		return nil, false
	}
	vals := make([]uint16, len(sig))
	for i, kind := range sig {
		v, ok := matchToken(tokens[i], kind)
		if !ok {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
