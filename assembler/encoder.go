package assembler

import (
	"sort"
	"strings"
)

// Lookup returns the candidate encoders for mnemonic, in the order
// Assemble tries them, and whether the mnemonic is known at all. It lets
// other packages (the lint/format tooling) query the instruction table
// without duplicating it.
func Lookup(mnemonic string) ([]Candidate, bool) {
	c, ok := instructionTable[mnemonic]
	return c, ok
}

// Mnemonics returns every mnemonic the assembler recognizes, sorted.
func Mnemonics() []string {
	names := make([]string, 0, len(instructionTable))
	for name := range instructionTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Assemble translates chip16 source into its binary encoding, one 4-byte
// instruction per non-blank line. Blank lines and comment-only lines
// produce no output; line numbers reported in errors are 1-based against
// the original source, blank and comment-only lines included.
func Assemble(source string) ([]byte, error) {
	var out []byte
	lines := strings.Split(source, "\n")

	for i, raw := range lines {
		tokens := Tokenize(raw)
		if len(tokens) == 0 {
			continue
		}

		mnemonic, operands := tokens[0], tokens[1:]
		candidates, known := instructionTable[mnemonic]
		if !known {
			return nil, &UnknownMnemonicError{Line: i + 1, RawLine: raw, Mnemonic: mnemonic}
		}

		encoded, ok := encodeLine(candidates, operands)
		if !ok {
			return nil, &SignatureMismatchError{Line: i + 1, RawLine: raw, Tokens: tokens}
		}
		out = append(out, encoded[:]...)
	}

	return out, nil
}

// encodeLine tries each candidate in order, returning the first match's
// encoding. Candidate order is significant per spec.md §4.4.2.
func encodeLine(candidates []Candidate, operands []string) ([4]byte, bool) {
	for _, c := range candidates {
		if vals, ok := matchOperands(operands, c.Sig); ok {
			return c.Encode(vals), true
		}
	}
	return [4]byte{}, false
}
