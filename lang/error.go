package lang

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ardnew/litcfg/pkg"
)

// Constructs the loader refuses. Each matches [pkg.ErrUnsupported] with
// errors.Is.
var (
	ErrVariableReference = pkg.ErrUnsupported.Kind(
		"referencing variables is not supported",
	)
	ErrImport          = pkg.ErrUnsupported.Kind("imports are not supported")
	ErrUnpacking       = pkg.ErrUnsupported.Kind("starred elements are not supported")
	ErrNonLiteralKey   = pkg.ErrUnsupported.Kind("dictionary key must be a literal")
	ErrMultipleTargets = pkg.ErrUnsupported.Kind(
		"multiple assignment targets are not supported",
	)
	ErrUnsupportedStatement  = pkg.ErrUnsupported.Kind("unsupported statement")
	ErrUnsupportedExpression = pkg.ErrUnsupported.Kind("unsupported expression")
)

// Lexical errors. Each matches [pkg.ErrSyntax] with errors.Is.
var (
	ErrInvalidNumber = pkg.ErrSyntax.Kind("invalid number literal")
	ErrInvalidString = pkg.ErrSyntax.Kind("invalid string literal")
	ErrIndentation   = pkg.ErrSyntax.Kind("inconsistent indentation")
	ErrNesting       = pkg.ErrSyntax.Kind("expression nested too deeply")
)

// SyntaxError reports malformed source together with the offending line.
type SyntaxError struct {
	Err    *pkg.Error // Positioned cause, a kind of pkg.ErrSyntax
	Source string     // The original source input
}

func syntaxError(src string, err *pkg.Error) *SyntaxError {
	return &SyntaxError{Err: err, Source: src}
}

// Position returns the location of the error.
func (e *SyntaxError) Position() pkg.Position { return e.Err.Position() }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return e.Err.Error() + e.Snippet()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Snippet returns the offending source line with a caret under the error
// column, or an empty string if the position is unknown.
func (e *SyntaxError) Snippet() string {
	pos := e.Position()
	if !pos.IsValid() {
		return ""
	}

	lines := splitLines(e.Source)
	if pos.Line > len(lines) {
		return ""
	}

	line := lines[pos.Line-1]

	var src strings.Builder

	src.WriteString("\n  ")
	src.WriteString(strconv.Itoa(pos.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(pos.Line))+5)
	if pos.Column > 0 {
		padding += strings.Repeat(" ", pos.Column-1)
	}

	src.WriteString(padding + "^")

	return src.String()
}

// splitLines splits s on any of the three line break spellings.
func splitLines(s string) []string {
	var lines []string

	for {
		i := strings.IndexAny(s, "\r\n")
		if i < 0 {
			return append(lines, s)
		}

		lines = append(lines, s[:i])

		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			i++
		}

		s = s[i+1:]
	}
}

// positionOf extracts the source position from err, if it carries one.
func positionOf(err error) (pkg.Position, bool) {
	var pe *pkg.Error
	if errors.As(err, &pe) && pe.Position().IsValid() {
		return pe.Position(), true
	}

	return pkg.Position{}, false
}
