package tools

import (
	"fmt"
	"sort"

	"github.com/lookbusy1344/chip16/assembler"
)

// LintLevel represents the severity of a lint issue.
type LintLevel int

const (
	LintError   LintLevel = iota // unknown mnemonic, no candidate signature matches
	LintWarning                  // reserved for future structural checks
	LintInfo                     // known quirks worth flagging, not worth failing on
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single lint finding.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string // "UNKNOWN_MNEMONIC", "SIGNATURE_MISMATCH", "SAL_ALIAS", "SNG_DEAD_CANDIDATE"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	Strict bool // treat LintInfo findings as errors too
}

// DefaultLintOptions returns the default linter options.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{Strict: false}
}

// Linter checks chip16 assembly source for mnemonics and operand shapes the
// assembler would reject, plus the documented quirks in spec.md §9 that are
// legal but surprising.
type Linter struct {
	options *LintOptions
}

// NewLinter creates a new linter.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{options: options}
}

// Lint analyzes source line by line. Each line is independent — chip16
// assembly carries no labels or forward references — so unlike a
// multi-pass assembler, lint can report every line's issues in one pass
// rather than stopping at the first one.
func (l *Linter) Lint(source, filename string) []*LintIssue {
	var issues []*LintIssue

	lines := splitLines(source)
	for i, raw := range lines {
		lineNo := i + 1
		tokens := assembler.Tokenize(raw)
		if len(tokens) == 0 {
			continue
		}
		mnemonic, operands := tokens[0], tokens[1:]

		if _, known := assembler.Lookup(mnemonic); !known {
			issues = append(issues, &LintIssue{
				Level:   LintError,
				Line:    lineNo,
				Message: fmt.Sprintf("unknown mnemonic %q", mnemonic),
				Code:    "UNKNOWN_MNEMONIC",
			})
			continue
		}

		if _, err := assembler.Assemble(raw); err != nil {
			issues = append(issues, &LintIssue{
				Level:   LintError,
				Line:    lineNo,
				Message: err.Error(),
				Code:    "SIGNATURE_MISMATCH",
			})
			continue
		}

		issues = append(issues, l.checkQuirks(mnemonic, operands, lineNo)...)
	}

	if l.options.Strict {
		for _, issue := range issues {
			if issue.Level == LintInfo {
				issue.Level = LintError
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })
	return issues
}

// checkQuirks flags the documented oddities from spec.md §9 that assemble
// successfully but are worth a second look.
func (l *Linter) checkQuirks(mnemonic string, operands []string, lineNo int) []*LintIssue {
	var issues []*LintIssue

	if mnemonic == "SAL" {
		issues = append(issues, &LintIssue{
			Level:   LintInfo,
			Line:    lineNo,
			Message: "SAL is an assembler-only alias of SHL; no distinct opcode exists",
			Code:    "SAL_ALIAS",
		})
	}

	if mnemonic == "SNG" && len(operands) == 2 && isRegisterToken(operands[0]) {
		issues = append(issues, &LintIssue{
			Level:   LintInfo,
			Line:    lineNo,
			Message: "SNG Rx,word matches a vestigial candidate that encodes as SNP (0x0D); use SNG byte,word",
			Code:    "SNG_DEAD_CANDIDATE",
		})
	}

	return issues
}

func isRegisterToken(tok string) bool {
	return len(tok) == 2 && tok[0] == 'R'
}

func splitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	lines = append(lines, source[start:])
	return lines
}
