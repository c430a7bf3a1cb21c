package codegen

import (
	"bytes"
	"strings"
	"testing"

	"wavec/internal/atom"
	"wavec/internal/collection"
	"wavec/internal/path"
	"wavec/internal/phrase"
)

func prepare(a *collection.Arena, root collection.NodeID) *phrase.Phrase {
	a.IndexPhrase(root)
	a.LengthCoordPhrase(root)
	return phrase.New(root)
}

func generate(t *testing.T, a *collection.Arena, root collection.NodeID) (code, alloc string) {
	t.Helper()
	ph := prepare(a, root)
	var codeBuf, allocBuf bytes.Buffer
	if err := New(&codeBuf, &allocBuf).EmitProgram(a, ph); err != nil {
		t.Fatalf("EmitProgram: %v", err)
	}
	return codeBuf.String(), allocBuf.String()
}

// TestScalarSumEmission exercises spec.md §8 scenario 1: (1;2;+).
func TestScalarSumEmission(t *testing.T) {
	a := collection.NewArena()
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Int(2))
	n3 := a.NewAtom(atom.Operator(atom.OpBinaryPlus))
	a.AppendSibling(n1, n2)
	a.AppendSibling(n1, n3)
	seq := a.NewSeq(n1)

	code, alloc := generate(t, a, seq)

	if !strings.Contains(alloc, "wave_data wave_tab0[3];") {
		t.Fatalf("expected a 3-slot table, got alloc=%q", alloc)
	}
	for _, want := range []string{
		"wave_tab0[0]._content._int = 1;",
		"wave_tab0[0]._type = WAVE_DATA_INT;",
		"wave_tab0[1]._content._int = 2;",
		"wave_tab0[2]._type = WAVE_DATA_INT;",
		"wave_tab0[2]._content._int = wave_int_plus(wave_tab0[0]._content._int, wave_tab0[1]._content._int);",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("expected code to contain %q, got:\n%s", want, code)
		}
	}
}

func TestParEmissionUsesOpenMPSections(t *testing.T) {
	a := collection.NewArena()
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Int(2))
	a.AppendSibling(n1, n2)
	par := a.NewPar(n1)

	code, alloc := generate(t, a, par)

	if !strings.Contains(alloc, "wave_data wave_tab0[2];") {
		t.Fatalf("expected a 2-slot table, got alloc=%q", alloc)
	}
	for _, want := range []string{
		"#pragma omp parallel\n{\n",
		"#pragma omp sections\n{\n",
		"#pragma omp section\n{\n",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("expected %q in:\n%s", want, code)
		}
	}
}

// TestUnaryOnNonLiteralOperandIsSkipped mirrors the original's
// restriction (_unary_int_float only dispatches when the previous
// sibling is itself a literal atom).
func TestUnaryOnNonLiteralOperandIsSkipped(t *testing.T) {
	a := collection.NewArena()
	inner1 := a.NewAtom(atom.Int(1))
	nested := a.NewSeq(inner1)
	incr := a.NewAtom(atom.Operator(atom.OpUnaryIncrement))
	a.AppendSibling(nested, incr)
	seq := a.NewSeq(nested)

	code, _ := generate(t, a, seq)
	if strings.Contains(code, "_increment(") {
		t.Fatalf("expected no increment call for a non-literal operand, got:\n%s", code)
	}
}

// TestCrossTypeBinaryPromotesAndCasts covers the {Int,Float} -> Float
// promotion path (spec.md §4.1), including the cast on the Int operand.
func TestCrossTypeBinaryPromotesAndCasts(t *testing.T) {
	a := collection.NewArena()
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Float(2.5))
	n3 := a.NewAtom(atom.Operator(atom.OpBinaryPlus))
	a.AppendSibling(n1, n2)
	a.AppendSibling(n1, n3)
	seq := a.NewSeq(n1)

	code, _ := generate(t, a, seq)
	if !strings.Contains(code, "wave_float_plus((wave_float)(wave_tab0[0]._content._int), wave_tab0[1]._content._float)") {
		t.Fatalf("expected a cast-wrapped int operand, got:\n%s", code)
	}
	if !strings.Contains(code, "wave_tab0[2]._type = WAVE_DATA_FLOAT;") {
		t.Fatalf("expected the result slot tagged Float, got:\n%s", code)
	}
}

func TestRepSeqConstantEmitsCountedLoop(t *testing.T) {
	a := collection.NewArena()
	body := a.NewAtom(atom.Int(7))
	rep := a.NewRepSeqConstant(3, body)
	seq := a.NewSeq(rep)

	code, _ := generate(t, a, seq)
	if !strings.Contains(code, "for(int __wave_parallel_iterator__ = 0; __wave_parallel_iterator__ < 3; ++__wave_parallel_iterator__)") {
		t.Fatalf("expected a counted for loop, got:\n%s", code)
	}
}

func TestStopOutsideCyclicIsRejected(t *testing.T) {
	a := collection.NewArena()
	n1 := a.NewAtom(atom.Int(1))
	stop := a.NewAtom(atom.Operator(atom.OpSpecificStop))
	a.AppendSibling(n1, stop)
	seq := a.NewSeq(n1)

	ph := prepare(a, seq)
	var codeBuf, allocBuf bytes.Buffer
	err := New(&codeBuf, &allocBuf).EmitProgram(a, ph)
	if err == nil {
		t.Fatalf("expected an error for stop used outside a cyclic collection")
	}
}

func TestStopInsideCyclicEmitsBreak(t *testing.T) {
	a := collection.NewArena()
	n1 := a.NewAtom(atom.Int(1))
	stop := a.NewAtom(atom.Operator(atom.OpSpecificStop))
	a.AppendSibling(n1, stop)
	cyc := a.NewCyclicSeq(n1)

	code, _ := generate(t, a, cyc)
	if !strings.Contains(code, "for(;;)\n{\n") {
		t.Fatalf("expected an infinite loop, got:\n%s", code)
	}
	if !strings.Contains(code, "break;") {
		t.Fatalf("expected a break statement, got:\n%s", code)
	}
}

// TestPathAtomResolvedEmitsDirectAssignment covers the still-resolvable
// case of _wave_code_generation_fprint_path: a path that still resolves
// at code-generation time emits a direct slot-to-slot assignment.
func TestPathAtomResolvedEmitsDirectAssignment(t *testing.T) {
	a := collection.NewArena()
	n0 := a.NewAtom(atom.Int(5))
	ref := a.NewAtom(atom.Path(path.Simple(path.MovePre)))
	a.AppendSibling(n0, ref)
	seq := a.NewSeq(n0)

	code, _ := generate(t, a, seq)
	if !strings.Contains(code, "wave_tab0[1] = wave_tab0[0];") {
		t.Fatalf("expected a direct slot assignment, got:\n%s", code)
	}
}

func TestAtomPredicateEmission(t *testing.T) {
	a := collection.NewArena()
	n0 := a.NewAtom(atom.Int(5))
	pred := a.NewAtom(atom.Operator(atom.OpSpecificAtom))
	a.AppendSibling(n0, pred)
	seq := a.NewSeq(n0)

	code, _ := generate(t, a, seq)
	if !strings.Contains(code, "wave_data_atom(&wave_tab0[0])") {
		t.Fatalf("expected an atom? predicate call, got:\n%s", code)
	}
}
