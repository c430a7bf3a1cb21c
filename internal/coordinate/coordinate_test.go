package coordinate

import (
	"testing"

	"wavec/internal/intlist"
)

func TestConstantFolding(t *testing.T) {
	sum := Plus(Constant(2), Constant(3))
	if sum.Kind() != KindConstant || sum.Value() != 5 {
		t.Fatalf("expected folded constant 5, got %v", sum)
	}
	prod := Times(Constant(2), Constant(3))
	if prod.Kind() != KindConstant || prod.Value() != 6 {
		t.Fatalf("expected folded constant 6, got %v", prod)
	}
}

func TestNonConstantBuildsTree(t *testing.T) {
	v := Var(intlist.FromValues([]int{0, 1}))
	sum := Plus(v, Constant(1))
	if sum.Kind() != KindPlus {
		t.Fatalf("expected KindPlus, got %v", sum.Kind())
	}
	if sum.String() != "(0_1 + 1)" {
		t.Fatalf("unexpected string form: %s", sum.String())
	}
}

func TestCopyIsIndependent(t *testing.T) {
	orig := Plus(Constant(1), Constant(0)) // folds to Constant(1)
	cp := orig.Copy()
	if !Equal(orig, cp) {
		t.Fatalf("copy should be structurally equal")
	}
}

func TestEqual(t *testing.T) {
	a := Times(Var(intlist.FromValues([]int{2})), Constant(3))
	b := Times(Var(intlist.FromValues([]int{2})), Constant(3))
	if !Equal(a, b) {
		t.Fatalf("expected equal coordinates")
	}
	c := Times(Var(intlist.FromValues([]int{1})), Constant(3))
	if Equal(a, c) {
		t.Fatalf("expected unequal coordinates")
	}
}
