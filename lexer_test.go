// lexer_test.go
package moji

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	ts, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	return ts
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_Examples_HelloWorld(t *testing.T) {
	src := `
🌱
💭 Say hello
🖨️ "Hello, world!" 🔚
🌳
`
	got := wantTypes(t, src, []TokenType{
		PROGRAM_START,
		KW_PRINT, STRING, END_STATEMENT,
		PROGRAM_END,
	})
	if got[2].Literal.(string) != "Hello, world!" {
		t.Fatalf("string literal not captured: %v", got[2].Literal)
	}
}

func Test_Lexer_Declarations_AllTypes(t *testing.T) {
	src := `🔢 n 👉 10 🔚 👽 pi 👉 3.14 🔚 💬 s 👉 "hi" 🔚 📜 xs 🔚`
	got := wantTypes(t, src, []TokenType{
		KW_INT, IDENT, ASSIGN, INT, END_STATEMENT,
		KW_REAL, IDENT, ASSIGN, REAL, END_STATEMENT,
		KW_STRING, IDENT, ASSIGN, STRING, END_STATEMENT,
		KW_LIST, IDENT, END_STATEMENT,
	})
	if got[3].Literal.(int64) != 10 {
		t.Fatalf("int literal: %v", got[3].Literal)
	}
	if got[8].Literal.(float64) != 3.14 {
		t.Fatalf("real literal: %v", got[8].Literal)
	}
}

func Test_Lexer_TwoCodePoint_Greedy_Compounds(t *testing.T) {
	// ➕📜 and ➕💾 must win over ➕ followed by 📜/💾, and 📦⛔ over 📦.
	wantTypes(t, `xs ➕📜 1 🔚`, []TokenType{IDENT, KW_APPEND, INT, END_STATEMENT})
	wantTypes(t, `xs ➖📜 0 🔚`, []TokenType{IDENT, KW_REMOVE, INT, END_STATEMENT})
	wantTypes(t, `➕💾 "x" "f" 🔚`, []TokenType{KW_FAPPEND, STRING, STRING, END_STATEMENT})
	wantTypes(t, `📦 📦⛔`, []TokenType{BLOCK_START, BLOCK_END})
	// A bare ➕ between operands stays plain addition.
	wantTypes(t, `a ➕ b`, []TokenType{IDENT, OP_PLUS, IDENT})
}

func Test_Lexer_VariationSelector_Glyphs(t *testing.T) {
	src := `🖨️ a ✖️ b 🔚 🤔 a ⚖️ b 📦 📦⛔ 🤔 a ⬆️ b 📦 📦⛔ 🤔 a ⬇️ b 📦 📦⛔ ⚙️ m 🔚 ⏱️ 1 🔚`
	wantTypes(t, src, []TokenType{
		KW_PRINT, IDENT, OP_MUL, IDENT, END_STATEMENT,
		KW_IF, IDENT, CMP_EQ, IDENT, BLOCK_START, BLOCK_END,
		KW_IF, IDENT, CMP_GT, IDENT, BLOCK_START, BLOCK_END,
		KW_IF, IDENT, CMP_LT, IDENT, BLOCK_START, BLOCK_END,
		KW_IMPORT, IDENT, END_STATEMENT,
		KW_SLEEP, INT, END_STATEMENT,
	})
}

func Test_Lexer_Number_SecondDotTerminates(t *testing.T) {
	l := NewLexer("1.2.3")
	tok, err := l.scanToken()
	if err != nil {
		t.Fatalf("scanToken: %v", err)
	}
	if tok.Type != REAL || tok.Literal.(float64) != 1.2 {
		t.Fatalf("want REAL 1.2, got %v %v", tok.Type, tok.Literal)
	}
	if tok.Lexeme != "1.2" {
		t.Fatalf("lexeme: %q", tok.Lexeme)
	}
}

func Test_Lexer_String_Verbatim_NoEscapes(t *testing.T) {
	got := wantTypes(t, `"a\nb 🌱 👉"`, []TokenType{STRING})
	if got[0].Literal.(string) != `a\nb 🌱 👉` {
		t.Fatalf("string contents mangled: %q", got[0].Literal)
	}
}

func Test_Lexer_String_Unterminated(t *testing.T) {
	_, err := Tokenize(`🖨️ "oops`)
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %v", err)
	}
	if !strings.Contains(le.Msg, "unterminated") {
		t.Fatalf("message: %q", le.Msg)
	}
}

func Test_Lexer_UnknownEmoji(t *testing.T) {
	_, err := Tokenize("🌱 🦄 🌳")
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %v", err)
	}
	if le.Line != 1 || le.Col != 2 {
		t.Fatalf("position: line %d col %d", le.Line, le.Col)
	}
}

func Test_Lexer_Comment_ToEndOfLine(t *testing.T) {
	src := "🔢 x 👉 1 🔚 💭 anything 🦄 at all\n🖨️ x 🔚"
	wantTypes(t, src, []TokenType{
		KW_INT, IDENT, ASSIGN, INT, END_STATEMENT,
		KW_PRINT, IDENT, END_STATEMENT,
	})
}

func Test_Lexer_Positions_LineAndColumn(t *testing.T) {
	src := "🌱\n🖨️ x 🔚\n🌳"
	ts := toks(t, src)
	// 🖨️ opens line 2 at column 0; x follows after the two-code-point glyph
	// and a space, counted in code points.
	if ts[1].Line != 2 || ts[1].Col != 0 {
		t.Fatalf("print token at %d:%d", ts[1].Line, ts[1].Col)
	}
	if ts[2].Line != 2 || ts[2].Col != 3 {
		t.Fatalf("ident token at %d:%d", ts[2].Line, ts[2].Col)
	}
}
