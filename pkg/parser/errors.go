package parser

import (
	"errors"
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// SyntaxError reports a lexing or parsing failure at a source position.
// Incomplete is set when the input ended before the construct was closed,
// which the REPL uses to keep reading lines.
type SyntaxError struct {
	Message    string
	Pos        ast.Position
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: %s (line %d, column %d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// IsIncomplete reports whether err is a SyntaxError caused by truncated input.
func IsIncomplete(err error) bool {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Incomplete
	}
	return false
}
