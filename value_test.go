// value_test.go
package moji

import (
	"strings"
	"testing"
)

func mustBinary(t *testing.T, op TokenType, l, r Value) Value {
	t.Helper()
	v, err := applyBinary(op, l, r)
	if err != nil {
		t.Fatalf("applyBinary(%v, %v, %v): %v", op, l, r, err)
	}
	return v
}

func Test_Ops_Plus_IntAndReal(t *testing.T) {
	if v := mustBinary(t, OP_PLUS, Int(2), Int(3)); v.Tag != VTInt || v.Data.(int64) != 5 {
		t.Fatalf("2+3: %v", v)
	}
	if v := mustBinary(t, OP_PLUS, Int(2), Real(0.5)); v.Tag != VTReal || v.Data.(float64) != 2.5 {
		t.Fatalf("2+0.5: %v", v)
	}
}

func Test_Ops_Plus_TextConcatIsPolymorphic(t *testing.T) {
	if v := mustBinary(t, OP_PLUS, Text("a"), Int(1)); v.Data.(string) != "a1" {
		t.Fatalf("text+int: %v", v)
	}
	if v := mustBinary(t, OP_PLUS, Int(1), Text("a")); v.Data.(string) != "1a" {
		t.Fatalf("int+text: %v", v)
	}
	if v := mustBinary(t, OP_PLUS, Text("x: "), Real(1.0)); v.Data.(string) != "x: 1.0" {
		t.Fatalf("text+real: %v", v)
	}
}

func Test_Ops_Minus_TypeError(t *testing.T) {
	_, err := applyBinary(OP_MINUS, Text("a"), Int(1))
	if err == nil || !strings.Contains(err.Error(), "not defined for") {
		t.Fatalf("want operand type error, got %v", err)
	}
}

func Test_Ops_Div_AlwaysReal_ZeroIsError(t *testing.T) {
	if v := mustBinary(t, OP_DIV, Int(5), Int(2)); v.Tag != VTReal || v.Data.(float64) != 2.5 {
		t.Fatalf("5/2: %v", v)
	}
	_, err := applyBinary(OP_DIV, Int(5), Int(0))
	if err == nil || !strings.Contains(err.Error(), "division by zero") {
		t.Fatalf("5/0: %v", err)
	}
	_, err = applyBinary(OP_DIV, Real(5), Real(0))
	if err == nil {
		t.Fatalf("5.0/0.0 should error")
	}
}

func Test_Ops_Compare_NumericCrossType(t *testing.T) {
	if v := mustBinary(t, CMP_EQ, Int(2), Real(2.0)); v.Data.(int64) != 1 {
		t.Fatalf("2 == 2.0: %v", v)
	}
	if v := mustBinary(t, CMP_GT, Real(2.5), Int(2)); v.Data.(int64) != 1 {
		t.Fatalf("2.5 > 2: %v", v)
	}
	if v := mustBinary(t, CMP_LT, Text("abc"), Text("abd")); v.Data.(int64) != 1 {
		t.Fatalf(`"abc" < "abd": %v`, v)
	}
}

func Test_Ops_Compare_CrossTypeRejected(t *testing.T) {
	cases := [][2]Value{
		{Int(1), Text("1")},
		{Text("a"), NewList()},
		{NewList(), Int(0)},
	}
	for _, c := range cases {
		if _, err := applyBinary(CMP_EQ, c[0], c[1]); err == nil {
			t.Fatalf("comparing %s with %s should error", c[0].TypeName(), c[1].TypeName())
		}
	}
	// Ordering is never defined for lists, even against lists.
	if _, err := applyBinary(CMP_GT, NewList(), NewList()); err == nil {
		t.Fatalf("list ordering should error")
	}
}

func Test_Ops_Compare_ListDeepEquality(t *testing.T) {
	a := ListVal(&List{Items: []Value{Int(1), Text("x"), ListVal(&List{Items: []Value{Real(2)}})}})
	b := ListVal(&List{Items: []Value{Int(1), Text("x"), ListVal(&List{Items: []Value{Int(2)}})}})
	if v := mustBinary(t, CMP_EQ, a, b); v.Data.(int64) != 1 {
		t.Fatalf("deep equality with numeric cross-compare failed")
	}
}

func Test_Ops_Not_Truthiness(t *testing.T) {
	truthy := []Value{Int(1), Int(-3), Real(0.1), Text("x"), ListVal(&List{Items: []Value{Int(0)}})}
	falsy := []Value{Int(0), Real(0), Text(""), NewList(), Unit}
	for _, v := range truthy {
		if applyNot(v).Data.(int64) != 0 {
			t.Fatalf("🚫 of truthy %s", v.TypeName())
		}
	}
	for _, v := range falsy {
		if applyNot(v).Data.(int64) != 1 {
			t.Fatalf("🚫 of falsy %s", v.TypeName())
		}
	}
}

func Test_Ops_Cast(t *testing.T) {
	if v, err := castValue(KW_INT, Real(3.9)); err != nil || v.Data.(int64) != 3 {
		t.Fatalf("int(3.9): %v %v", v, err)
	}
	if v, err := castValue(KW_INT, Text(" 42 ")); err != nil || v.Data.(int64) != 42 {
		t.Fatalf(`int(" 42 "): %v %v`, v, err)
	}
	if _, err := castValue(KW_INT, Text("nope")); err == nil {
		t.Fatalf(`int("nope") should error`)
	}
	if v, err := castValue(KW_REAL, Int(2)); err != nil || v.Data.(float64) != 2.0 {
		t.Fatalf("real(2): %v %v", v, err)
	}
	if v, err := castValue(KW_STRING, Real(2.5)); err != nil || v.Data.(string) != "2.5" {
		t.Fatalf("string(2.5): %v %v", v, err)
	}
	if _, err := castValue(KW_INT, NewList()); err == nil {
		t.Fatalf("casting a list should error")
	}
}

func Test_Value_Format(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Real(2.0), "2.0"},
		{Real(2.5), "2.5"},
		{Text("hi"), "hi"},
		{ListVal(&List{Items: []Value{Int(1), Text("a"), Real(3.0)}}), "[1, a, 3.0]"},
		{Unit, "unit"},
	}
	for _, c := range cases {
		if got := FormatValue(c.v); got != c.want {
			t.Fatalf("FormatValue(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func Test_Value_ListsAreSharedReferences(t *testing.T) {
	l := &List{}
	a, b := ListVal(l), ListVal(l)
	l.Items = append(l.Items, Int(7))
	if len(a.Data.(*List).Items) != 1 || len(b.Data.(*List).Items) != 1 {
		t.Fatalf("list mutation not visible through both values")
	}
}

func Test_Env_ScopeChain(t *testing.T) {
	root := NewEnv(nil)
	root.Define("x", Int(1))
	child := NewEnv(root)

	if v, err := child.Get("x"); err != nil || v.Data.(int64) != 1 {
		t.Fatalf("child lookup: %v %v", v, err)
	}
	if err := child.Set("x", Int(2)); err != nil {
		t.Fatalf("set through chain: %v", err)
	}
	if v, _ := root.Get("x"); v.Data.(int64) != 2 {
		t.Fatalf("set did not reach owning frame")
	}

	// Shadowing in the child never touches the parent binding.
	child.Define("x", Int(9))
	if v, _ := root.Get("x"); v.Data.(int64) != 2 {
		t.Fatalf("shadow leaked to parent")
	}

	if err := root.DefineOnce("x", Int(0)); err == nil {
		t.Fatalf("redeclaration should error")
	}
	if _, err := child.Get("missing"); err == nil {
		t.Fatalf("missing name should error")
	}
	if child.Root() != root {
		t.Fatalf("Root should reach the outermost frame")
	}
}
