// ops.go — operators, casts and coercions as exhaustive matches over the
// tagged value cases. Nothing here delegates to ambient host semantics:
// every tag pair an operator accepts is spelled out, and every other pair is
// a type error.
package moji

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// applyBinary evaluates l <op> r. Errors carry no position; the evaluator
// attaches the operator token's.
func applyBinary(op TokenType, l, r Value) (Value, error) {
	switch op {
	case OP_PLUS:
		// ➕ is polymorphic: any text operand turns it into concatenation
		// of both operands' textual representations.
		if l.Tag == VTText || r.Tag == VTText {
			return Text(FormatValue(l) + FormatValue(r)), nil
		}
		if !isNumeric(l) || !isNumeric(r) {
			return Value{}, opTypeError("➕", l, r)
		}
		if l.Tag == VTInt && r.Tag == VTInt {
			return Int(l.Data.(int64) + r.Data.(int64)), nil
		}
		return Real(asReal(l) + asReal(r)), nil

	case OP_MINUS:
		if !isNumeric(l) || !isNumeric(r) {
			return Value{}, opTypeError("➖", l, r)
		}
		if l.Tag == VTInt && r.Tag == VTInt {
			return Int(l.Data.(int64) - r.Data.(int64)), nil
		}
		return Real(asReal(l) - asReal(r)), nil

	case OP_MUL:
		if !isNumeric(l) || !isNumeric(r) {
			return Value{}, opTypeError("✖️", l, r)
		}
		if l.Tag == VTInt && r.Tag == VTInt {
			return Int(l.Data.(int64) * r.Data.(int64)), nil
		}
		return Real(asReal(l) * asReal(r)), nil

	case OP_DIV:
		if !isNumeric(l) || !isNumeric(r) {
			return Value{}, opTypeError("➗", l, r)
		}
		if asReal(r) == 0 {
			return Value{}, errors.New("division by zero")
		}
		// ➗ always yields a real, so 5 ➗ 2 is 2.5.
		return Real(asReal(l) / asReal(r)), nil

	case CMP_EQ, CMP_GT, CMP_LT:
		return compare(op, l, r)
	}
	return Value{}, fmt.Errorf("unknown binary operator %v", op)
}

// compare implements ⚖️ ⬆️ ⬇️. Int and Real cross-compare numerically; text
// compares with text; ⚖️ on lists is deep and on functions is identity.
// Every other combination is rejected (cross-type comparison has no defined
// ordering in Moji).
func compare(op TokenType, l, r Value) (Value, error) {
	if isNumeric(l) && isNumeric(r) {
		a, b := asReal(l), asReal(r)
		switch op {
		case CMP_EQ:
			return boolVal(a == b), nil
		case CMP_GT:
			return boolVal(a > b), nil
		default:
			return boolVal(a < b), nil
		}
	}
	if l.Tag == VTText && r.Tag == VTText {
		a, b := l.Data.(string), r.Data.(string)
		switch op {
		case CMP_EQ:
			return boolVal(a == b), nil
		case CMP_GT:
			return boolVal(a > b), nil
		default:
			return boolVal(a < b), nil
		}
	}
	if op == CMP_EQ {
		switch {
		case l.Tag == VTList && r.Tag == VTList,
			l.Tag == VTFun && r.Tag == VTFun,
			l.Tag == VTUnit && r.Tag == VTUnit:
			return boolVal(deepEqual(l, r)), nil
		}
	}
	return Value{}, fmt.Errorf("cannot compare %s with %s", l.TypeName(), r.TypeName())
}

func opTypeError(op string, l, r Value) error {
	return fmt.Errorf("%s is not defined for %s and %s", op, l.TypeName(), r.TypeName())
}

// applyNot implements 🚫: coerce to truthiness, negate, yield Int 1/0.
func applyNot(v Value) Value {
	return boolVal(!v.Truthy())
}

// castValue implements 🎭 for the three castable type keywords.
func castValue(target TokenType, v Value) (Value, error) {
	switch target {
	case KW_INT:
		switch v.Tag {
		case VTInt:
			return v, nil
		case VTReal:
			return Int(int64(v.Data.(float64))), nil
		case VTText:
			n, err := strconv.ParseInt(strings.TrimSpace(v.Data.(string)), 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast text %q to integer", v.Data.(string))
			}
			return Int(n), nil
		}
		return Value{}, fmt.Errorf("cannot cast %s to integer", v.TypeName())
	case KW_REAL:
		switch v.Tag {
		case VTInt:
			return Real(float64(v.Data.(int64))), nil
		case VTReal:
			return v, nil
		case VTText:
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Data.(string)), 64)
			if err != nil {
				return Value{}, fmt.Errorf("cannot cast text %q to real", v.Data.(string))
			}
			return Real(f), nil
		}
		return Value{}, fmt.Errorf("cannot cast %s to real", v.TypeName())
	case KW_STRING:
		return Text(FormatValue(v)), nil
	}
	return Value{}, fmt.Errorf("unknown cast target %v", target)
}

// asSeconds coerces a ⏱️ duration to a real number of seconds.
func asSeconds(v Value) (float64, error) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), nil
	case VTReal:
		return v.Data.(float64), nil
	}
	return 0, fmt.Errorf("duration for ⏱️ must be a number, got %s", v.TypeName())
}
