package tools

import (
	"strings"

	"github.com/lookbusy1344/chip16/assembler"
)

// FormatOptions controls formatter behavior. Chip16 source has no
// indentation-significant blocks or label column to align, so this narrows
// the teacher's FormatStyle/FormatOptions pair down to the handful of knobs
// that actually vary a chip16 listing.
type FormatOptions struct {
	OperandColumn int  // column the operand list starts at
	CommentColumn int  // column a trailing comment starts at
	AlignComments bool
}

// DefaultFormatOptions returns the default formatter options.
func DefaultFormatOptions() *FormatOptions {
	return &FormatOptions{
		OperandColumn: 8,
		CommentColumn: 32,
		AlignComments: true,
	}
}

// Formatter canonicalizes chip16 assembly source the way the assembler
// reads it: uppercase mnemonics and operands, comma-separated operands,
// one instruction per line.
type Formatter struct {
	options *FormatOptions
}

// NewFormatter creates a new formatter.
func NewFormatter(options *FormatOptions) *Formatter {
	if options == nil {
		options = DefaultFormatOptions()
	}
	return &Formatter{options: options}
}

// Format canonicalizes input. Blank lines are preserved; comment text is
// kept with its original case after a "; " prefix. Every other line is
// re-tokenized and rewritten whether or not the assembler would accept it,
// so characters that are not part of a token are dropped; no line is
// removed.
func (f *Formatter) Format(input string) string {
	var out strings.Builder
	lines := splitLines(input)

	for i, raw := range lines {
		formatted, comment := f.formatLine(raw)
		out.WriteString(formatted)
		if comment != "" {
			if f.options.AlignComments {
				padToColumn(&out, lineLen(&out), f.options.CommentColumn)
			} else {
				out.WriteString(" ")
			}
			out.WriteString("; ")
			out.WriteString(comment)
		}
		if i < len(lines)-1 {
			out.WriteString("\n")
		}
	}

	return out.String()
}

// formatLine splits a single line into its canonicalized instruction text
// and trailing comment (without the leading ';'), uppercasing and spacing
// operands the way Tokenize expects to read them back.
func (f *Formatter) formatLine(raw string) (line, comment string) {
	body := raw
	if idx := strings.IndexByte(raw, ';'); idx >= 0 {
		comment = strings.TrimSpace(raw[idx+1:])
		body = raw[:idx]
	}

	tokens := assembler.Tokenize(body)
	if len(tokens) == 0 {
		return "", comment
	}

	var b strings.Builder
	b.WriteString(tokens[0])
	if len(tokens) > 1 {
		padToColumn(&b, b.Len(), f.options.OperandColumn)
		b.WriteString(strings.Join(tokens[1:], ", "))
	}
	return b.String(), comment
}

func padToColumn(b *strings.Builder, current, column int) {
	if current < column {
		b.WriteString(strings.Repeat(" ", column-current))
	} else {
		b.WriteString(" ")
	}
}

// lineLen returns the length of the text written since the last newline.
func lineLen(b *strings.Builder) int {
	s := b.String()
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return len(s) - idx - 1
	}
	return len(s)
}

// FormatString is a convenience function to format a string with default
// options.
func FormatString(input string) string {
	return NewFormatter(DefaultFormatOptions()).Format(input)
}
