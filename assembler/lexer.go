// Package assembler translates chip16 assembly source into the 4-byte
// binary encoding, one instruction per line.
package assembler

import (
	"regexp"
	"strings"
)

// tokenPattern matches a single operand or mnemonic token: letters, digits,
// underscore, and hyphen (the latter covers negative decimal immediates).
var tokenPattern = regexp.MustCompile(`[-\w]+`)

// Tokenize splits one source line into uppercase tokens. The first token,
// if any, is the mnemonic; the rest are operands. Everything from the
// first ';' onward is a comment and is discarded before tokenizing.
func Tokenize(line string) []string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	return tokenPattern.FindAllString(strings.ToUpper(line), -1)
}
