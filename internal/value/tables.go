package value

import (
	"math"

	"wavec/internal/atom"
)

// unaryTable and binaryTable implement the admissible (type, op) matrix
// of spec.md §6. Keys outside these tables are disallowed by
// construction: Unary/Binary fall through to a TypeError rather than
// ever indexing a missing entry.
var unaryTable map[tableKey]func(Value) Value
var binaryTable map[tableKey]func(l, r Value) Value

func init() {
	unaryTable = map[tableKey]func(Value) Value{}
	binaryTable = map[tableKey]func(l, r Value) Value{}

	for _, k := range []Kind{KindInt, KindFloat} {
		registerUnary(k, atom.OpUnaryPlus, func(x Value) Value { return x })
		registerUnary(k, atom.OpUnaryMinus, negate)
		registerUnary(k, atom.OpUnaryIncrement, increment)
		registerUnary(k, atom.OpUnaryDecrement, decrement)
		registerUnary(k, atom.OpUnarySqrt, mathUnary(math.Sqrt))
		registerUnary(k, atom.OpUnarySin, mathUnary(math.Sin))
		registerUnary(k, atom.OpUnaryCos, mathUnary(math.Cos))
		registerUnary(k, atom.OpUnaryLog, mathUnary(math.Log))
		registerUnary(k, atom.OpUnaryExp, mathUnary(math.Exp))
		registerUnary(k, atom.OpUnaryCeil, mathUnary(math.Ceil))
		registerUnary(k, atom.OpUnaryFloor, mathUnary(math.Floor))
	}
	unaryTable[tableKey{KindInt, atom.OpUnaryChr}] = func(x Value) Value {
		return Char(byte(x.i))
	}
	unaryTable[tableKey{KindChar, atom.OpUnaryCode}] = func(x Value) Value {
		return Int(int64(x.ch))
	}
	unaryTable[tableKey{KindBool, atom.OpUnaryNot}] = func(x Value) Value {
		return Bool(!x.b)
	}

	for _, k := range []Kind{KindInt, KindFloat} {
		registerBinary(k, atom.OpBinaryPlus, arith(func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b }))
		registerBinary(k, atom.OpBinaryMinus, arith(func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }))
		registerBinary(k, atom.OpBinaryTimes, arith(func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }))
		registerBinary(k, atom.OpBinaryDivide, arith(func(a, b float64) float64 { return a / b }, func(a, b int64) int64 { return a / b }))
		registerBinary(k, atom.OpBinaryMod, arith(math.Mod, func(a, b int64) int64 { return a % b }))
		registerBinary(k, atom.OpBinaryMin, numericMinMax(true))
		registerBinary(k, atom.OpBinaryMax, numericMinMax(false))
		registerComparisons(k)
	}

	registerBinary(KindBool, atom.OpBinaryAnd, func(l, r Value) Value { return Bool(l.b && r.b) })
	registerBinary(KindBool, atom.OpBinaryOr, func(l, r Value) Value { return Bool(l.b || r.b) })
	registerComparisons(KindBool)

	registerBinary(KindChar, atom.OpBinaryPlus, func(l, r Value) Value { return String(l.AsString() + r.AsString()) })
	registerBinary(KindChar, atom.OpBinaryMin, charMinMax(true))
	registerBinary(KindChar, atom.OpBinaryMax, charMinMax(false))
	registerComparisons(KindChar)

	registerBinary(KindString, atom.OpBinaryPlus, func(l, r Value) Value { return String(l.s + r.s) })
	registerBinary(KindString, atom.OpBinaryMin, stringMinMax(true))
	registerBinary(KindString, atom.OpBinaryMax, stringMinMax(false))
	registerComparisons(KindString)
}

func registerUnary(k Kind, op atom.OpCode, fn func(Value) Value) {
	unaryTable[tableKey{k, op}] = fn
}

func registerBinary(k Kind, op atom.OpCode, fn func(l, r Value) Value) {
	binaryTable[tableKey{k, op}] = fn
}

func negate(x Value) Value {
	if x.kind == KindInt {
		return Int(-x.i)
	}
	return Float(-x.f)
}

func increment(x Value) Value {
	if x.kind == KindInt {
		return Int(x.i + 1)
	}
	return Float(x.f + 1)
}

func decrement(x Value) Value {
	if x.kind == KindInt {
		return Int(x.i - 1)
	}
	return Float(x.f - 1)
}

func mathUnary(fn func(float64) float64) func(Value) Value {
	return func(x Value) Value { return Float(fn(x.AsFloat())) }
}

// arith applies intFn on two Int operands (preserving integer type) or
// floatFn when either side is promoted; a same-Kind Int/Int pair stays
// Int, Float/Float stays Float.
func arith(floatFn func(a, b float64) float64, intFn func(a, b int64) int64) func(l, r Value) Value {
	return func(l, r Value) Value {
		if l.kind == KindInt && r.kind == KindInt {
			return Int(intFn(l.i, r.i))
		}
		return Float(floatFn(l.AsFloat(), r.AsFloat()))
	}
}

func numericMinMax(wantMin bool) func(l, r Value) Value {
	return func(l, r Value) Value {
		less := l.AsFloat() < r.AsFloat()
		if less == wantMin {
			return l
		}
		return r
	}
}

func charMinMax(wantMin bool) func(l, r Value) Value {
	return func(l, r Value) Value {
		less := l.ch < r.ch
		if less == wantMin {
			return l
		}
		return r
	}
}

func stringMinMax(wantMin bool) func(l, r Value) Value {
	return func(l, r Value) Value {
		less := l.s < r.s
		if less == wantMin {
			return l
		}
		return r
	}
}

// registerComparisons wires the six comparison operators for k, every
// base type admitting all of them (spec.md §6).
func registerComparisons(k Kind) {
	registerBinary(k, atom.OpBinaryEquals, func(l, r Value) Value { return Bool(Equal(l, r)) })
	registerBinary(k, atom.OpBinaryDiffers, func(l, r Value) Value { return Bool(!Equal(l, r)) })
	registerBinary(k, atom.OpBinaryLesser, func(l, r Value) Value { return Bool(less(l, r)) })
	registerBinary(k, atom.OpBinaryGreater, func(l, r Value) Value { return Bool(less(r, l)) })
	registerBinary(k, atom.OpBinaryLesserOrEquals, func(l, r Value) Value { return Bool(!less(r, l)) })
	registerBinary(k, atom.OpBinaryGreaterOrEquals, func(l, r Value) Value { return Bool(!less(l, r)) })
}

// Equal compares two same-kind scalar values; Float comparison uses the
// absolute epsilon from spec.md §4.1, String/Char comparison is
// lexicographic (spec.md §4.1 "string arithmetic is lexicographic").
func Equal(l, r Value) bool {
	switch l.kind {
	case KindInt:
		return l.i == r.i
	case KindFloat:
		return math.Abs(l.f-r.f) <= floatEpsilon
	case KindBool:
		return l.b == r.b
	case KindChar:
		return l.ch == r.ch
	case KindString:
		return l.s == r.s
	default:
		return false
	}
}

func less(l, r Value) bool {
	switch l.kind {
	case KindInt:
		return l.i < r.i
	case KindFloat:
		return l.f < r.f
	case KindBool:
		return !l.b && r.b
	case KindChar:
		return l.ch < r.ch
	case KindString:
		return l.s < r.s
	default:
		return false
	}
}
