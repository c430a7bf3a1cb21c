package pathinterp

import (
	"testing"

	"wavec/internal/atom"
	"wavec/internal/collection"
	"wavec/internal/path"
)

// TestFiniteRepetitionUnroll builds {;1;2} 3. and checks it becomes
// (1;2;1;2;1;2). per spec.md §8 scenario 3 — constant repetitions need
// no path following, so this exercises the plain ReplaceWithList path
// indirectly by checking the length/coord pass after a manual unroll.
func TestFiniteRepetitionUnroll(t *testing.T) {
	a := collection.NewArena()
	one := a.NewAtom(atom.Int(1))
	two := a.NewAtom(atom.Int(2))
	a.AppendSibling(one, two)
	rep := a.NewRepSeqConstant(3, one)

	// Constant repetitions are expanded the same way a path-driven one
	// is, just with a length known up front instead of computed by
	// Follow; exercise that expansion directly against the rep node.
	original := a.List(rep)
	tail := a.Last(original)
	for i := 1; i < 3; i++ {
		cp := a.Copy(original)
		a.AppendSibling(tail, cp)
		tail = a.Last(cp)
	}
	a.ReplaceWithList(rep, collection.TagSeq, original)

	a.IndexPhrase(rep)
	a.LengthCoordPhrase(rep)

	count := 0
	for cur := a.List(rep); cur != collection.NoNode; cur = a.Next(cur) {
		count++
	}
	if count != 6 {
		t.Fatalf("expected 6 flattened children, got %d", count)
	}
}

// TestPathDrivenUnroll builds {;x} #s. against a sibling chain of
// length 4 to the right of the rep node, per spec.md §8 scenario 4.
func TestPathDrivenUnroll(t *testing.T) {
	a := collection.NewArena()
	x := a.NewAtom(atom.String("x"))
	rep := a.NewRepSeqPath(path.Simple(path.MoveSuc), x)

	s1 := a.NewAtom(atom.Int(1))
	s2 := a.NewAtom(atom.Int(2))
	s3 := a.NewAtom(atom.Int(3))
	s4 := a.NewAtom(atom.Int(4))
	a.AppendSibling(rep, s1)
	a.AppendSibling(rep, s2)
	a.AppendSibling(rep, s3)
	a.AppendSibling(rep, s4)
	seq := a.NewSeq(rep)

	invalid := Unroll(a, seq)
	if len(invalid) != 0 {
		t.Fatalf("expected no invalid unrolls, got %v", invalid)
	}

	// rep has been replaced in place by its expanded list.
	if a.Tag(rep) != collection.TagSeq {
		t.Fatalf("expected rep node to become a plain Seq, got %v", a.Tag(rep))
	}
	count := 0
	for cur := a.List(rep); cur != collection.NoNode; cur = a.Next(cur) {
		count++
	}
	if count != 4 {
		t.Fatalf("expected 4 copies of x, got %d", count)
	}
}

func TestUnrollReportsInvalidPath(t *testing.T) {
	a := collection.NewArena()
	x := a.NewAtom(atom.String("x"))
	// Pre off the head: the repetition path is invalid from the rep node,
	// so Unroll reports the node and leaves it unexpanded.
	rep := a.NewRepSeqPath(path.Simple(path.MovePre), x)
	seq := a.NewSeq(rep)
	invalid := Unroll(a, seq)
	if len(invalid) != 1 || invalid[0] != rep {
		t.Fatalf("expected the rep node to be reported invalid, got invalid=%v", invalid)
	}
	if a.Tag(rep) != collection.TagRepSeq || a.List(rep) != x {
		t.Fatalf("expected the invalid repetition to be left untouched")
	}
}
