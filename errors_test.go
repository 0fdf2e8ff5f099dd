// errors_test.go
package moji

import (
	"strings"
	"testing"
)

func mustContain(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", sub, s)
	}
}

func Test_Errors_Wrap_LexSnippet(t *testing.T) {
	src := "🌱\n🖨️ 🦄 🔚\n🌳"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatalf("expected lex error")
	}
	out := WrapErrorWithSource(err, src).Error()
	mustContain(t, out, "LEXICAL ERROR at 2:4")
	mustContain(t, out, "   2 | 🖨️ 🦄 🔚")
	mustContain(t, out, "^")
	// Context lines either side.
	mustContain(t, out, "   1 | 🌱")
	mustContain(t, out, "   3 | 🌳")
}

func Test_Errors_Wrap_ParseSnippet(t *testing.T) {
	src := "🌱\n🔢 👉 1 🔚\n🌳"
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	out := WrapErrorWithSource(err, src).Error()
	mustContain(t, out, "SYNTAX ERROR at 2:3")
	mustContain(t, out, "expected IDENTIFIER")
}

func Test_Errors_Wrap_RuntimeSnippet(t *testing.T) {
	src := "🌱\n🔢 x 👉 10 🔚\n🖨️ x ➗ 0 🔚\n🌳"
	ip := NewInterpreter()
	ip.Out = &strings.Builder{}
	err := ip.RunSource(src)
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	out := WrapErrorWithSource(err, src).Error()
	mustContain(t, out, "RUNTIME ERROR at 3:")
	mustContain(t, out, "division by zero")
	mustContain(t, out, "   3 | 🖨️ x ➗ 0 🔚")
}

type errDummy struct{}

func (errDummy) Error() string { return "dummy" }

func Test_Errors_Wrap_OtherErrorsPassThrough(t *testing.T) {
	err := WrapErrorWithSource(errDummy{}, "🌱 🌳")
	if _, ok := err.(errDummy); !ok {
		t.Fatalf("non-language errors must pass through unchanged: %T", err)
	}
}

func Test_Errors_Snippet_ClampsOutOfRange(t *testing.T) {
	out := snippet("only line", "RUNTIME ERROR", 99, 99, "boom")
	mustContain(t, out, "only line")
	mustContain(t, out, "boom")
}
