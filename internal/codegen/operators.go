package codegen

import "wavec/internal/atom"

// basetypeName returns the runtime support library's name for the
// scalar kind a literal atom holds, and whether k is a scalar kind at
// all (operator/path/unknown are not).
func basetypeName(k atom.Kind) (string, bool) {
	switch k {
	case atom.KindInt:
		return "int", true
	case atom.KindFloat:
		return "float", true
	case atom.KindBool:
		return "bool", true
	case atom.KindChar:
		return "char", true
	case atom.KindString:
		return "string", true
	default:
		return "", false
	}
}

// dataTag returns the wave_data type tag the runtime struct stamps for
// k (wave_generation_common.c's _atom_type_data_strings).
func dataTag(k atom.Kind) string {
	switch k {
	case atom.KindInt:
		return "WAVE_DATA_INT"
	case atom.KindFloat:
		return "WAVE_DATA_FLOAT"
	case atom.KindBool:
		return "WAVE_DATA_BOOL"
	case atom.KindChar:
		return "WAVE_DATA_CHAR"
	case atom.KindString:
		return "WAVE_DATA_STRING"
	default:
		return "WAVE_DATA_UNKNOWN"
	}
}

// contentField returns the union field name a wave_data value of kind
// k is read from or written to.
func contentField(k atom.Kind) string {
	switch k {
	case atom.KindInt:
		return "_int"
	case atom.KindFloat:
		return "_float"
	case atom.KindBool:
		return "_bool"
	case atom.KindChar:
		return "_char"
	case atom.KindString:
		return "_string"
	default:
		return ""
	}
}

// unaryOpName maps a unary OpCode to the wave_<basetype>_<name> suffix
// wave_generation_operators.c calls. plus/minus take a "unary_" prefix
// there to stay distinct from their binary counterparts sharing the
// same basetype namespace; increment/decrement and the transcendental
// functions are bare. not/chr/code were never wired by the original
// (only int/float math was) — extended here the same way, since
// spec.md's admissible matrix (§6) names them for bool, int and char.
func unaryOpName(op atom.OpCode) (string, bool) {
	switch op {
	case atom.OpUnaryPlus:
		return "unary_plus", true
	case atom.OpUnaryMinus:
		return "unary_minus", true
	case atom.OpUnaryIncrement:
		return "increment", true
	case atom.OpUnaryDecrement:
		return "decrement", true
	case atom.OpUnarySqrt:
		return "sqrt", true
	case atom.OpUnarySin:
		return "sin", true
	case atom.OpUnaryCos:
		return "cos", true
	case atom.OpUnaryNot:
		return "not", true
	case atom.OpUnaryLog:
		return "log", true
	case atom.OpUnaryExp:
		return "exp", true
	case atom.OpUnaryCeil:
		return "ceil", true
	case atom.OpUnaryFloor:
		return "floor", true
	case atom.OpUnaryChr:
		return "chr", true
	case atom.OpUnaryCode:
		return "code", true
	default:
		return "", false
	}
}

// binaryOpName maps a binary OpCode to its wave_<basetype>_<name>
// suffix. None of these were wired in the original (every entry of
// _operator_functions past the unary group is NULL); named here by the
// same convention the unary group established.
func binaryOpName(op atom.OpCode) (string, bool) {
	switch op {
	case atom.OpBinaryPlus:
		return "plus", true
	case atom.OpBinaryMinus:
		return "minus", true
	case atom.OpBinaryMin:
		return "min", true
	case atom.OpBinaryMax:
		return "max", true
	case atom.OpBinaryTimes:
		return "times", true
	case atom.OpBinaryDivide:
		return "divide", true
	case atom.OpBinaryMod:
		return "mod", true
	case atom.OpBinaryEquals:
		return "equals", true
	case atom.OpBinaryDiffers:
		return "differs", true
	case atom.OpBinaryLesserOrEquals:
		return "lesser_or_equals", true
	case atom.OpBinaryGreaterOrEquals:
		return "greater_or_equals", true
	case atom.OpBinaryGreater:
		return "greater", true
	case atom.OpBinaryLesser:
		return "lesser", true
	case atom.OpBinaryAnd:
		return "and", true
	case atom.OpBinaryOr:
		return "or", true
	case atom.OpBinaryGet:
		return "get", true
	default:
		return "", false
	}
}

// unaryAdmits reports whether op applies to a literal of kind k, per
// spec.md §6's per-base-type admitted-operator table.
func unaryAdmits(k atom.Kind, op atom.OpCode) bool {
	switch k {
	case atom.KindInt:
		switch op {
		case atom.OpUnaryPlus, atom.OpUnaryMinus, atom.OpUnaryIncrement, atom.OpUnaryDecrement,
			atom.OpUnarySqrt, atom.OpUnarySin, atom.OpUnaryCos, atom.OpUnaryLog, atom.OpUnaryExp,
			atom.OpUnaryCeil, atom.OpUnaryFloor, atom.OpUnaryChr:
			return true
		}
	case atom.KindFloat:
		switch op {
		case atom.OpUnaryPlus, atom.OpUnaryMinus, atom.OpUnaryIncrement, atom.OpUnaryDecrement,
			atom.OpUnarySqrt, atom.OpUnarySin, atom.OpUnaryCos, atom.OpUnaryLog, atom.OpUnaryExp,
			atom.OpUnaryCeil, atom.OpUnaryFloor:
			return true
		}
	case atom.KindBool:
		return op == atom.OpUnaryNot
	case atom.KindChar:
		return op == atom.OpUnaryCode
	}
	return false
}

// promoteBinary resolves the admissible (type, type, op) triple per
// spec.md §6/§4.1 to the basetype the runtime call dispatches on and
// the kind the result slot is tagged with. ok is false for any
// combination outside the admissible matrix.
func promoteBinary(l, r atom.Kind, op atom.OpCode) (basetype string, result atom.Kind, ok bool) {
	test := op.IsTest()

	same := func(k atom.Kind, admitted bool) (string, atom.Kind, bool) {
		if !admitted {
			return "", atom.KindUnknown, false
		}
		bt, _ := basetypeName(k)
		if test {
			return bt, atom.KindBool, true
		}
		return bt, k, true
	}

	// Int and Float admit the arithmetic ops and every comparison, but
	// never and/or/get (spec.md §6's Int/Float row).
	numericAdmitted := !(op == atom.OpBinaryAnd || op == atom.OpBinaryOr || op == atom.OpBinaryGet)

	switch {
	case l == atom.KindInt && r == atom.KindInt:
		return same(atom.KindInt, numericAdmitted)
	case l == atom.KindFloat && r == atom.KindFloat:
		return same(atom.KindFloat, numericAdmitted)
	case (l == atom.KindInt && r == atom.KindFloat) || (l == atom.KindFloat && r == atom.KindInt):
		return same(atom.KindFloat, numericAdmitted)
	case l == atom.KindBool && r == atom.KindBool:
		admitted := op == atom.OpBinaryAnd || op == atom.OpBinaryOr || test
		return same(atom.KindBool, admitted)
	case l == atom.KindChar && r == atom.KindChar:
		if op == atom.OpBinaryPlus {
			return "char", atom.KindString, true
		}
		admitted := op == atom.OpBinaryMin || op == atom.OpBinaryMax || test
		return same(atom.KindChar, admitted)
	case (l == atom.KindChar && r == atom.KindString) || (l == atom.KindString && r == atom.KindChar):
		if op == atom.OpBinaryPlus {
			return "string", atom.KindString, true
		}
		admitted := op == atom.OpBinaryMin || op == atom.OpBinaryMax || test
		return same(atom.KindString, admitted)
	case l == atom.KindString && r == atom.KindString:
		admitted := op == atom.OpBinaryPlus || op == atom.OpBinaryMin || op == atom.OpBinaryMax || test
		return same(atom.KindString, admitted)
	}

	// Every same-kind pair among the five scalar kinds is already
	// handled above; anything reaching here is a genuine mismatch
	// (including get, which has no admissible pair at any kind: spec.md's
	// operator/type matrix omits it from every row).
	return "", atom.KindUnknown, false
}
