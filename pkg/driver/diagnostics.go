package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/parser"
)

// Location points at a line and column of a script. Path is empty for
// sources that did not come from a file, such as REPL entries.
type Location struct {
	Path   string
	Line   int
	Column int
}

// LocationOf returns the start of node's span in the script at path.
func LocationOf(path string, node ast.Node) Location {
	if node == nil {
		return Location{}
	}
	start := node.Span().Start
	if start.Line == 0 {
		return Location{}
	}
	return Location{Path: path, Line: start.Line, Column: start.Column}
}

func (l Location) String() string {
	switch {
	case l.Path != "" && l.Line > 0:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
	case l.Path != "":
		return l.Path
	case l.Line > 0:
		return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
	default:
		return ""
	}
}

// Describe renders "<stage>: <location> <message>", leaving the location
// out when it is unknown.
func Describe(stage string, loc Location, message string) string {
	message = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(message), stage+":"))
	if where := loc.String(); where != "" {
		return fmt.Sprintf("%s: %s %s", stage, where, message)
	}
	return fmt.Sprintf("%s: %s", stage, message)
}

// ParseError is a syntax error located in a script.
type ParseError struct {
	Message  string
	Location Location
}

func (e *ParseError) Error() string {
	return Describe("parser", e.Location, e.Message)
}

// ParseFile parses source read from path. Syntax errors come back as
// *ParseError.
func ParseFile(path, source string) (*ast.Program, error) {
	prog, err := parser.ParseProgram(source)
	if err != nil {
		if parseErr, ok := AsParseError(path, err); ok {
			return nil, parseErr
		}
		return nil, err
	}
	return prog, nil
}

// AsParseError locates a *parser.SyntaxError in the script at path.
func AsParseError(path string, err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	var syntaxErr *parser.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return nil, false
	}
	return &ParseError{
		Message:  syntaxErr.Message,
		Location: Location{Path: path, Line: syntaxErr.Pos.Line, Column: syntaxErr.Pos.Column},
	}, true
}
