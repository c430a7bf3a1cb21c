package codegen

import (
	"fmt"

	"wavec/internal/atom"
	"wavec/internal/collection"
	"wavec/internal/coordinate"
	"wavec/internal/pathinterp"
	"wavec/internal/waveerr"
)

// slotRef is the text of one wave_data table slot: wave_tab<indexes>[<coord>].
func (g *Generator) slotRef(a *collection.Arena, owner collection.NodeID, coord *coordinate.Coordinate) string {
	name := coordinate.Var(a.FullIndexes(owner)).String()
	return fmt.Sprintf("wave_tab%s[%s]", name, coord.String())
}

// literalKind reports the scalar kind id statically holds, restricted
// to atoms that are themselves literals: the same restriction
// wave_generation_operators.c's _unary_int_float applies by checking
// wave_collection_get_type(previous) == WAVE_COLLECTION_ATOM before
// dispatching. A slot fed by a prior operator or an unresolved path
// has no statically known type, so operator emission silently skips
// it, mirroring that function's behavior when the guard fails.
func literalKind(a *collection.Arena, id collection.NodeID) (atom.Kind, bool) {
	if id == collection.NoNode || a.Tag(id) != collection.TagAtom {
		return atom.KindUnknown, false
	}
	k := a.Atom(id).Kind()
	if _, ok := basetypeName(k); !ok {
		return atom.KindUnknown, false
	}
	return k, true
}

// emitAtom dispatches on id's atom kind (spec.md §4.9).
func (g *Generator) emitAtom(a *collection.Arena, id collection.NodeID) error {
	at := a.Atom(id)
	switch at.Kind() {
	case atom.KindInt, atom.KindFloat, atom.KindBool, atom.KindChar, atom.KindString:
		return g.emitLiteral(a, id)
	case atom.KindPath:
		return g.emitPathAtom(a, id)
	case atom.KindOperator:
		return g.emitOperatorAtom(a, id)
	default:
		return nil
	}
}

// emitLiteral writes the two-statement content/type assignment
// wave_generation_atom.c's _wave_generate_with_strings_inside_tm uses
// for every literal kind.
func (g *Generator) emitLiteral(a *collection.Arena, id collection.NodeID) error {
	k := a.Atom(id).Kind()
	parent := a.Parent(id)
	ref := g.slotRef(a, parent, a.Info(id).Coordinate)
	fmt.Fprintf(g.code, "%s._content.%s = %s;\n", ref, contentField(k), cLiteral(a.Atom(id)))
	fmt.Fprintf(g.code, "%s._type = %s;\n", ref, dataTag(k))
	return nil
}

// cLiteral renders an atom's payload as a C literal expression.
func cLiteral(at *atom.Atom) string {
	switch at.Kind() {
	case atom.KindInt:
		return fmt.Sprintf("%d", at.IntValue())
	case atom.KindFloat:
		return fmt.Sprintf("%g", at.FloatValue())
	case atom.KindBool:
		if at.BoolValue() {
			return "true"
		}
		return "false"
	case atom.KindChar:
		return fmt.Sprintf("'%c'", at.CharValue())
	case atom.KindString:
		return fmt.Sprintf("%q", at.StringValue())
	default:
		return ""
	}
}

// emitPathAtom emits a direct slot-to-slot assignment when the path
// still resolves at code-generation time, a silent no-op otherwise
// (wave_generation_atom.c's _wave_code_generation_fprint_path: it only
// emits when wave_collection_get_collection_pointed returns non-NULL).
// Atoms reaching here already survived the substitution pass without
// being inlined (spec.md §7 kind 3): their target's subtree still held
// an unresolved path atom at that time. Trying again here, after every
// node has a coordinate, resolves the common case where that inner
// path was itself substituted in the meantime.
func (g *Generator) emitPathAtom(a *collection.Arena, id collection.NodeID) error {
	target, ok := pathinterp.Resolve(a, id, a.Atom(id).PathValue())
	if !ok {
		return nil
	}
	parent := a.Parent(id)
	targetParent := a.Parent(target)
	lhs := g.slotRef(a, parent, a.Info(id).Coordinate)
	rhs := g.slotRef(a, targetParent, a.Info(target).Coordinate)
	fmt.Fprintf(g.code, "%s = %s;\n", lhs, rhs)
	return nil
}

// emitOperatorAtom dispatches an Atom(Operator) node on its group.
func (g *Generator) emitOperatorAtom(a *collection.Arena, id collection.NodeID) error {
	op := a.Atom(id).OpValue()
	switch {
	case op.IsUnary():
		return g.emitUnary(a, id, op)
	case op.IsBinary():
		return g.emitBinary(a, id, op)
	case op.IsSpecific():
		return g.emitSpecific(a, id, op)
	default:
		return nil
	}
}

// emitUnary mirrors _unary_int_float: the operand is the previous
// sibling's slot (coord - 1), read when it is itself a literal of an
// admissible kind.
func (g *Generator) emitUnary(a *collection.Arena, id collection.NodeID, op atom.OpCode) error {
	name, ok := unaryOpName(op)
	if !ok {
		return nil
	}
	operand := a.Previous(id)
	k, ok := literalKind(a, operand)
	if !ok || !unaryAdmits(k, op) {
		return nil
	}
	basetype, _ := basetypeName(k)
	result := unaryResultKind(k, op)

	parent := a.Parent(id)
	self := g.slotRef(a, parent, a.Info(id).Coordinate)
	operandRef := g.slotRef(a, parent, a.Info(operand).Coordinate)

	fmt.Fprintf(g.code, "%s._type = %s;\n", self, dataTag(result))
	fmt.Fprintf(g.code, "%s._content.%s = wave_%s_%s(%s._content.%s);\n",
		self, contentField(result), basetype, name, operandRef, contentField(k))
	return nil
}

// unaryResultKind reports the kind a unary op's result is tagged with.
// Every admitted op keeps the operand's kind except the two explicit
// conversions spec.md §6 lists: chr (Int -> Char) and code (Char -> Int).
func unaryResultKind(operand atom.Kind, op atom.OpCode) atom.Kind {
	switch op {
	case atom.OpUnaryChr:
		return atom.KindChar
	case atom.OpUnaryCode:
		return atom.KindInt
	default:
		return operand
	}
}

// emitBinary mirrors the unary convention, extended to the two
// preceding slots (coord - 2 the left operand, coord - 1 the right),
// per spec.md §4.9. Never wired in the original (every _operator_functions
// entry past the unary group is NULL).
func (g *Generator) emitBinary(a *collection.Arena, id collection.NodeID, op atom.OpCode) error {
	name, ok := binaryOpName(op)
	if !ok {
		return nil
	}
	rhs := a.Previous(id)
	if rhs == collection.NoNode {
		return nil
	}
	lhs := a.Previous(rhs)
	lk, lok := literalKind(a, lhs)
	rk, rok := literalKind(a, rhs)
	if !lok || !rok {
		return nil
	}
	basetype, result, ok := promoteBinary(lk, rk, op)
	if !ok {
		return nil
	}
	basetypeKind := kindForBasetype(basetype)

	parent := a.Parent(id)
	self := g.slotRef(a, parent, a.Info(id).Coordinate)
	lhsRef := g.slotRef(a, parent, a.Info(lhs).Coordinate)
	rhsRef := g.slotRef(a, parent, a.Info(rhs).Coordinate)

	fmt.Fprintf(g.code, "%s._type = %s;\n", self, dataTag(result))
	fmt.Fprintf(g.code, "%s._content.%s = wave_%s_%s(%s, %s);\n",
		self, contentField(result), basetype, name,
		operandExpr(lk, basetypeKind, fmt.Sprintf("%s._content.%s", lhsRef, contentField(lk))),
		operandExpr(rk, basetypeKind, fmt.Sprintf("%s._content.%s", rhsRef, contentField(rk))))
	return nil
}

func kindForBasetype(basetype string) atom.Kind {
	switch basetype {
	case "int":
		return atom.KindInt
	case "float":
		return atom.KindFloat
	case "bool":
		return atom.KindBool
	case "char":
		return atom.KindChar
	case "string":
		return atom.KindString
	default:
		return atom.KindUnknown
	}
}

// operandExpr adapts a native operand read to the basetype the chosen
// runtime call dispatches on. Same-kind operands pass through
// unchanged. Int/Float mismatches (the {Int,Float} -> Float promotion,
// spec.md §4.1) get a plain C cast. A Char operand promoted alongside a
// String one (the {Char,String} -> String promotion) is boxed through
// wave_char_to_string, a companion-runtime helper named the same way
// as every other wave_<basetype>_<op> entry point, since a raw cast
// between a byte and a string handle would not be meaningful.
func operandExpr(native, basetype atom.Kind, expr string) string {
	if native == basetype {
		return expr
	}
	if native == atom.KindChar && basetype == atom.KindString {
		return fmt.Sprintf("wave_char_to_string(%s)", expr)
	}
	bt, _ := basetypeName(basetype)
	return fmt.Sprintf("(wave_%s)(%s)", bt, expr)
}

// emitSpecific handles the fifth operator group: atom?, stop, cut,
// read, print. None were wired in the original; grounded on the
// surrounding emission conventions and the Par-ordering guidance in
// spec.md §9 (serialise read/print inside a parallel region).
func (g *Generator) emitSpecific(a *collection.Arena, id collection.NodeID, op atom.OpCode) error {
	switch op {
	case atom.OpSpecificAtom:
		return g.emitAtomPredicate(a, id)
	case atom.OpSpecificStop:
		if g.cyclicDepth == 0 {
			return waveerr.NewInvalidPathError("stop (!) used outside a cyclic collection", waveerr.SourceLocation{})
		}
		fmt.Fprint(g.code, "break;\n")
		return nil
	case atom.OpSpecificCut:
		if g.repDepth == 0 {
			return waveerr.NewInvalidPathError("cut used outside a repeated collection", waveerr.SourceLocation{})
		}
		fmt.Fprint(g.code, "break;\n")
		return nil
	case atom.OpSpecificRead:
		return g.emitRead(a, id)
	case atom.OpSpecificPrint:
		return g.emitPrint(a, id)
	default:
		return nil
	}
}

func (g *Generator) emitAtomPredicate(a *collection.Arena, id collection.NodeID) error {
	operand := a.Previous(id)
	if operand == collection.NoNode || a.Tag(operand) != collection.TagAtom {
		return nil
	}
	parent := a.Parent(id)
	self := g.slotRef(a, parent, a.Info(id).Coordinate)
	operandRef := g.slotRef(a, parent, a.Info(operand).Coordinate)
	fmt.Fprintf(g.code, "%s._type = WAVE_DATA_BOOL;\n", self)
	fmt.Fprintf(g.code, "%s._content._bool = wave_data_atom(&%s);\n", self, operandRef)
	return nil
}

func (g *Generator) emitRead(a *collection.Arena, id collection.NodeID) error {
	operand := a.Previous(id)
	k, ok := literalKind(a, operand)
	if !ok {
		return nil
	}
	basetype, _ := basetypeName(k)
	parent := a.Parent(id)
	self := g.slotRef(a, parent, a.Info(id).Coordinate)

	if g.parDepth > 0 {
		fmt.Fprint(g.code, "#pragma omp critical\n{\n")
	}
	fmt.Fprintf(g.code, "%s._type = %s;\n", self, dataTag(k))
	fmt.Fprintf(g.code, "%s._content.%s = wave_%s_read();\n", self, contentField(k), basetype)
	if g.parDepth > 0 {
		fmt.Fprint(g.code, "}\n")
	}
	return nil
}

func (g *Generator) emitPrint(a *collection.Arena, id collection.NodeID) error {
	operand := a.Previous(id)
	k, ok := literalKind(a, operand)
	if !ok {
		return nil
	}
	basetype, _ := basetypeName(k)
	parent := a.Parent(id)
	operandRef := g.slotRef(a, parent, a.Info(operand).Coordinate)

	if g.parDepth > 0 {
		fmt.Fprint(g.code, "#pragma omp critical\n{\n")
	}
	fmt.Fprintf(g.code, "wave_%s_print(%s._content.%s);\n", basetype, operandRef, contentField(k))
	if g.parDepth > 0 {
		fmt.Fprint(g.code, "}\n")
	}
	return nil
}
