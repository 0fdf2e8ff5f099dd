// lexer.go — single-pass scanner turning Moji source text into tokens.
//
// The scan is one forward pass with one code point of lookahead. Source is
// UTF-8: identifiers, digits and string literals are ASCII-ish, keywords are
// emoji. Because several keywords span two code points (compound forms like
// 📦⛔ and VS16-suffixed glyphs like 🖨️), the scanner always probes the
// two-code-point combination before the single one.
//
// String literals are copied verbatim up to the closing quote; there is no
// escape processing. A numeric literal ends at a second decimal point without
// erroring (see DESIGN.md). A 💭 comment consumes the rest of its line.
package moji

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// LexError reports source text that cannot be tokenized.
// Line is 1-based, Col is 0-based (rendered 1-based by WrapErrorWithSource).
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// Lexer scans a Moji source string into tokens.
type Lexer struct {
	src    string
	cur    int // byte offset of the next code point
	line   int // 1-based
	col    int // 0-based column within line, counted in code points
	tokens []Token

	// position where the current token began
	start        int
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

// peek decodes the next code point without consuming it.
func (l *Lexer) peek() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.cur:])
	return r, true
}

// peek2 decodes the code point after the next one.
func (l *Lexer) peek2() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(l.src[l.cur:])
	if l.cur+size >= len(l.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.cur+size:])
	return r, true
}

// advance consumes one code point.
func (l *Lexer) advance() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(l.src[l.cur:])
	l.cur += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r, true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	tok := Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func (l *Lexer) skipWhitespace() {
	for {
		r, ok := l.peek()
		if !ok {
			return
		}
		switch r {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// skipComment consumes a 💭 comment to end of line. The marker itself has
// already been consumed.
func (l *Lexer) skipComment() {
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			return
		}
		l.advance()
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isIdentStart(r rune) bool {
	return r == '_' || (r < utf8.RuneSelf && unicode.IsLetter(r))
}
func isIdentPart(r rune) bool { return isIdentStart(r) || isDigit(r) }

// scanNumber accumulates digits and at most one decimal point. A second
// decimal point terminates the literal; it is not an error.
func (l *Lexer) scanNumber() (Token, error) {
	sawDot := false
	for {
		r, ok := l.peek()
		if !ok {
			break
		}
		if r == '.' {
			if sawDot {
				break
			}
			sawDot = true
			l.advance()
			continue
		}
		if !isDigit(r) {
			break
		}
		l.advance()
	}
	lex := l.src[l.start:l.cur]
	if !sawDot {
		v, convErr := strconv.ParseInt(lex, 10, 64)
		if convErr != nil {
			return Token{}, l.err("invalid integer literal: " + lex)
		}
		return l.addToken(INT, v), nil
	}
	v, convErr := strconv.ParseFloat(lex, 64)
	if convErr != nil {
		return Token{}, l.err("invalid real literal: " + lex)
	}
	return l.addToken(REAL, v), nil
}

// scanString copies every code point verbatim up to the next closing quote.
// The opening quote has already been consumed.
func (l *Lexer) scanString() (Token, error) {
	contentStart := l.cur
	for {
		r, ok := l.peek()
		if !ok {
			return Token{}, l.err("unterminated string")
		}
		if r == '"' {
			val := l.src[contentStart:l.cur]
			l.advance() // closing quote
			return l.addToken(STRING, val), nil
		}
		l.advance()
	}
}

// scanIdentifier reads [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) scanIdentifier() Token {
	for {
		r, ok := l.peek()
		if !ok || !isIdentPart(r) {
			break
		}
		l.advance()
	}
	return l.addToken(IDENT, l.src[l.start:l.cur])
}

func (l *Lexer) scanToken() (Token, error) {
	for {
		l.skipWhitespace()
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col

		if l.isAtEnd() {
			return l.addToken(EOF, nil), nil
		}

		r, _ := l.peek()

		switch r {
		case '(':
			l.advance()
			return l.addToken(LPAREN, nil), nil
		case ')':
			l.advance()
			return l.addToken(RPAREN, nil), nil
		case '[':
			l.advance()
			return l.addToken(LBRACKET, nil), nil
		case ']':
			l.advance()
			return l.addToken(RBRACKET, nil), nil
		case ',':
			l.advance()
			return l.addToken(COMMA, nil), nil
		case '"':
			l.advance()
			return l.scanString()
		}

		if isDigit(r) {
			return l.scanNumber()
		}
		if isIdentStart(r) {
			return l.scanIdentifier(), nil
		}

		// Emoji keywords: the two-code-point combination wins over the
		// single code point.
		if r2, ok := l.peek2(); ok {
			if tt, ok := emojiKeywords[string(r)+string(r2)]; ok {
				l.advance()
				l.advance()
				if tt == COMMENT {
					l.skipComment()
					continue
				}
				return l.addToken(tt, nil), nil
			}
		}
		if tt, ok := emojiKeywords[string(r)]; ok {
			l.advance()
			if tt == COMMENT {
				l.skipComment()
				continue
			}
			return l.addToken(tt, nil), nil
		}

		return Token{}, l.err(fmt.Sprintf("unknown character or emoji: %q", r))
	}
}

// Scan tokenizes the entire source and returns the tokens, EOF included.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}

// Tokenize is a convenience wrapper: one call from source text to tokens.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}
