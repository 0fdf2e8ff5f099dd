// errors.go — runtime errors and caret-snippet rendering.
//
// Moji has a three-tier error taxonomy: LexError (lexer.go), ParseError
// (parser.go) and RuntimeError (here). All three carry 1-based line and
// 0-based column coordinates. WrapErrorWithSource turns any of them into a
// readable snippet with a caret under the offending column:
//
//	RUNTIME ERROR at 3:5: division by zero
//
//	   2 | 🔢 x 👉 10 🔚
//	   3 | 🖨️ x ➗ 0 🔚
//	     |     ^
//	   4 | 🌳
//
// Any other error kind is returned unchanged.
package moji

import (
	"fmt"
	"strings"
)

// RuntimeError represents a failure while evaluating a well-formed program:
// undefined or redeclared names, operand type mismatches, division by zero,
// bad list indices, arity mismatches, failed casts, file I/O failures, a 🔙
// outside any call, or the interpreter's internal "no handler" defect.
type RuntimeError struct {
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// rterrAt builds a RuntimeError pointing at a node.
func rterrAt(n Node, format string, args ...interface{}) *RuntimeError {
	line, col := n.Pos()
	return &RuntimeError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithSource augments lex, parse and runtime errors with a
// caret-annotated snippet of the source. Other errors pass through untouched.
func WrapErrorWithSource(err error, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", e.Line, e.Col+1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "SYNTAX ERROR", e.Line, e.Col+1, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", e.Line, e.Col+1, e.Msg))
	default:
		return err
	}
}

// snippet renders the header, one line of context either side, and a caret
// under the 1-based column. Out-of-range coordinates are clamped so rendering
// never fails.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
