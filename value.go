// value.go — the tagged runtime value model.
//
// Every value the interpreter produces is one of six cases: Unit (absent),
// Int, Real, Text, List or Fun. Lists are reference-typed: a *List is shared,
// and ➕📜/➖📜 mutate it in place. Functions carry their defining environment
// so calls get lexical scope.
//
// The language has no boolean case: comparisons and 🚫 yield Int 1/0, and
// conditions use Truthy.
package moji

import (
	"strconv"
	"strings"
)

// ValueTag discriminates the active case of a Value.
type ValueTag int

const (
	VTUnit ValueTag = iota // absent value (no payload)
	VTInt                  // int64
	VTReal                 // float64
	VTText                 // string
	VTList                 // *List
	VTFun                  // *Fun
)

// Value is the universal runtime carrier used by the interpreter.
// Data holds the Go value appropriate for Tag; for VTUnit it is nil.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Unit is the absent value.
var Unit = Value{Tag: VTUnit}

func Int(n int64) Value      { return Value{Tag: VTInt, Data: n} }
func Real(f float64) Value   { return Value{Tag: VTReal, Data: f} }
func Text(s string) Value    { return Value{Tag: VTText, Data: s} }
func ListVal(l *List) Value  { return Value{Tag: VTList, Data: l} }
func FunVal(f *Fun) Value    { return Value{Tag: VTFun, Data: f} }
func boolVal(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// List is the mutable payload of a VTList value.
type List struct {
	Items []Value
}

// NewList returns an empty list value.
func NewList() Value { return ListVal(&List{}) }

// Fun is the payload of a VTFun value: the function's definition node plus
// the environment it was defined in (lexical capture).
type Fun struct {
	Def *FunctionDefine
	Env *Env
}

// TypeName names the value's case for error messages.
func (v Value) TypeName() string {
	switch v.Tag {
	case VTUnit:
		return "unit"
	case VTInt:
		return "integer"
	case VTReal:
		return "real"
	case VTText:
		return "text"
	case VTList:
		return "list"
	case VTFun:
		return "function"
	}
	return "unknown"
}

// Truthy converts a value to a condition: Unit is false, numbers are nonzero,
// text and lists are nonempty, functions are true.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTUnit:
		return false
	case VTInt:
		return v.Data.(int64) != 0
	case VTReal:
		return v.Data.(float64) != 0
	case VTText:
		return v.Data.(string) != ""
	case VTList:
		return len(v.Data.(*List).Items) > 0
	case VTFun:
		return true
	}
	return false
}

// FormatValue renders a value the way 🖨️ prints it. Reals always carry a
// decimal point so they stay distinguishable from integers.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTUnit:
		return "unit"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTReal:
		s := strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case VTText:
		return v.Data.(string)
	case VTList:
		items := v.Data.(*List).Items
		var b strings.Builder
		b.WriteByte('[')
		for i, it := range items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(it))
		}
		b.WriteByte(']')
		return b.String()
	case VTFun:
		return "🧩 " + v.Data.(*Fun).Def.Name
	}
	return "unknown"
}

// deepEqual compares two values structurally. Int and Real cross-compare
// numerically; lists compare element-wise; functions compare by identity.
func deepEqual(a, b Value) bool {
	if isNumeric(a) && isNumeric(b) {
		return asReal(a) == asReal(b)
	}
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTUnit:
		return true
	case VTText:
		return a.Data.(string) == b.Data.(string)
	case VTList:
		ax := a.Data.(*List).Items
		bx := b.Data.(*List).Items
		if len(ax) != len(bx) {
			return false
		}
		for i := range ax {
			if !deepEqual(ax[i], bx[i]) {
				return false
			}
		}
		return true
	case VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	}
	return false
}

func isNumeric(v Value) bool { return v.Tag == VTInt || v.Tag == VTReal }

// asReal widens a numeric value to float64. Callers must check isNumeric.
func asReal(v Value) float64 {
	if v.Tag == VTInt {
		return float64(v.Data.(int64))
	}
	return v.Data.(float64)
}
