package collection

import (
	"testing"

	"wavec/internal/atom"
)

// buildScalarSum builds (1;2;+): a Seq of three atoms (spec.md §8
// scenario 1).
func buildScalarSum(a *Arena) NodeID {
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Int(2))
	n3 := a.NewAtom(atom.Operator(atom.OpBinaryPlus))
	a.AppendSibling(n1, n2)
	a.AppendSibling(n1, n3)
	return a.NewSeq(n1)
}

func TestIndexingPass(t *testing.T) {
	a := NewArena()
	seq := buildScalarSum(a)
	a.IndexPhrase(seq)

	children := a.List(seq)
	idx := 0
	for cur := children; cur != NoNode; cur = a.Next(cur) {
		if a.Info(cur).Index != idx {
			t.Fatalf("child %d: Index = %d, want %d", idx, a.Info(cur).Index, idx)
		}
		idx++
	}
	if idx != 3 {
		t.Fatalf("expected 3 children, got %d", idx)
	}
}

func TestLengthCoordPass(t *testing.T) {
	a := NewArena()
	seq := buildScalarSum(a)
	a.IndexPhrase(seq)
	a.LengthCoordPhrase(seq)

	children := a.List(seq)
	wantCoords := []int{0, 1, 2}
	i := 0
	for cur := children; cur != NoNode; cur = a.Next(cur) {
		info := a.Info(cur)
		if info.Length.Value() != 1 {
			t.Errorf("child %d: length = %d, want 1", i, info.Length.Value())
		}
		if info.Coordinate.Value() != wantCoords[i] {
			t.Errorf("child %d: coordinate = %d, want %d", i, info.Coordinate.Value(), wantCoords[i])
		}
		i++
	}
	if a.Info(seq).Length.Value() != 1 {
		t.Errorf("seq length should be Constant(1), got %v", a.Info(seq).Length)
	}
}

func TestRepSeqLength(t *testing.T) {
	a := NewArena()
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Int(2))
	a.AppendSibling(n1, n2)
	rep := a.NewRepSeqConstant(3, n1)
	a.IndexPhrase(rep)
	a.LengthCoordPhrase(rep)
	if got := a.Info(rep).Length.Value(); got != 6 {
		t.Fatalf("rep length = %d, want 6 (3 * (1+1))", got)
	}
}

func TestAppendSiblingReparents(t *testing.T) {
	a := NewArena()
	seq := a.NewSeq(NoNode)
	child1 := a.NewAtom(atom.Int(1))
	child2 := a.NewAtom(atom.Int(2))
	a.SetList(seq, child1)
	a.AppendSibling(child1, child2)
	if a.Parent(child2) != seq {
		t.Fatalf("appended sibling was not re-parented to seq")
	}
}

func TestCopyIsDeep(t *testing.T) {
	a := NewArena()
	seq := buildScalarSum(a)
	a.IndexPhrase(seq)
	a.LengthCoordPhrase(seq)

	cp := a.Copy(seq)
	if cp == seq {
		t.Fatalf("copy should be a new node")
	}
	origChild := a.List(seq)
	cpChild := a.List(cp)
	if origChild == cpChild {
		t.Fatalf("copy should have independent children")
	}
	if a.Parent(cpChild) != cp {
		t.Fatalf("copy's children should be re-parented to the copy")
	}
}

func TestFullIndexes(t *testing.T) {
	a := NewArena()
	seq := buildScalarSum(a)
	a.IndexPhrase(seq)
	a.Info(seq).Index = 0

	children := a.List(seq)
	second := a.Next(children)
	indexes := a.FullIndexes(second)
	if indexes.Len() != 2 {
		t.Fatalf("expected full index depth 2, got %d", indexes.Len())
	}
	if indexes.At(0) != 0 || indexes.At(1) != 1 {
		t.Fatalf("unexpected full indexes: %v", indexes.Values())
	}
}

func TestContainsPathAtom(t *testing.T) {
	a := NewArena()
	plain := a.NewAtom(atom.Int(1))
	if a.ContainsPathAtom(plain) {
		t.Fatalf("plain int atom should not contain a path atom")
	}

	withPath := a.NewAtom(atom.Path(nil))
	seqHead := plain
	a.AppendSibling(seqHead, withPath)
	seq := a.NewSeq(seqHead)
	if !a.ContainsPathAtom(seq) {
		t.Fatalf("seq containing a path atom should report true")
	}
}
