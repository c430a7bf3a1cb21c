package pathinterp

import (
	"testing"

	"wavec/internal/atom"
	"wavec/internal/collection"
	"wavec/internal/path"
)

// buildChain4 builds a Seq of four atoms and returns (seq, children...).
func buildChain4(a *collection.Arena) (seq collection.NodeID, children []collection.NodeID) {
	n0 := a.NewAtom(atom.Int(0))
	n1 := a.NewAtom(atom.Int(1))
	n2 := a.NewAtom(atom.Int(2))
	n3 := a.NewAtom(atom.Int(3))
	a.AppendSibling(n0, n1)
	a.AppendSibling(n0, n2)
	a.AppendSibling(n0, n3)
	seq = a.NewSeq(n0)
	return seq, []collection.NodeID{n0, n1, n2, n3}
}

func TestSimpleMoves(t *testing.T) {
	a := collection.NewArena()
	seq, children := buildChain4(a)

	res := Follow(a, children[0], path.Simple(path.MoveSuc), Options{Count: CountAll})
	if res.Destination != children[1] || res.Length != 1 {
		t.Fatalf("suc: got dest=%v length=%d", res.Destination, res.Length)
	}

	res = Follow(a, children[1], path.Simple(path.MoveUp), Options{Count: CountAll})
	if res.Destination != seq {
		t.Fatalf("up: expected seq, got %v", res.Destination)
	}

	res = Follow(a, seq, path.Simple(path.MoveDown), Options{Count: CountAll})
	if res.Destination != children[0] {
		t.Fatalf("down: expected first child")
	}
}

func TestInvalidMoveReturnsMinusOne(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	res := Follow(a, children[0], path.Simple(path.MovePre), Options{Count: CountAll})
	if res.Destination != collection.NoNode || res.Length != -1 {
		t.Fatalf("expected invalid path, got dest=%v length=%d", res.Destination, res.Length)
	}
}

func TestRepConstant(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	p := path.NewRep(3, path.Simple(path.MoveSuc))
	res := Follow(a, children[0], p, Options{Count: CountAll})
	if res.Destination != children[3] {
		t.Fatalf("expected last child, got %v", res.Destination)
	}
	if res.Length != 3 {
		t.Fatalf("expected length 3, got %d", res.Length)
	}
}

func TestRepConstantOverrunIsInvalid(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	p := path.NewRep(5, path.Simple(path.MoveSuc))
	res := Follow(a, children[0], p, Options{Count: CountAll})
	if res.Destination != collection.NoNode || res.Length != -1 {
		t.Fatalf("expected invalid overrun, got dest=%v length=%d", res.Destination, res.Length)
	}
}

func TestRepInfiniteStopsAtLastNonNull(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	p := path.NewRepInfinite(path.Simple(path.MoveSuc))
	res := Follow(a, children[0], p, Options{Count: CountAll})
	if res.Destination != children[3] {
		t.Fatalf("expected last child, got %v", res.Destination)
	}
	if res.Length != 3 {
		t.Fatalf("expected 3 steps to reach the end, got %d", res.Length)
	}
}

func TestPartAndRewind(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	p := path.NewPart(path.Simple(path.MoveSuc))
	p.Append(path.Simple(path.MoveSuc))
	p.Append(path.Simple(path.MoveRewind))

	res := Follow(a, children[0], p, Options{Count: CountAll})
	// Part moves to children[1] (1 step), then Suc moves to children[2]
	// (1 step), then Rewind re-executes the Part's recorded path (Suc)
	// from children[2], landing on children[3].
	if res.Destination != children[3] {
		t.Fatalf("expected children[3], got %v", res.Destination)
	}
}

func TestRecordBufferIsInverse(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	p := path.Simple(path.MoveSuc)
	p.Append(path.Simple(path.MoveSuc))

	res := Follow(a, children[0], p, Options{Count: CountAll, Record: true})
	if res.Destination != children[2] {
		t.Fatalf("expected children[2]")
	}
	back := Follow(a, res.Destination, res.Record, Options{Count: CountAll})
	if back.Destination != children[0] {
		t.Fatalf("record buffer did not walk back to start, got %v", back.Destination)
	}
}

func TestValidAndLength(t *testing.T) {
	a := collection.NewArena()
	_, children := buildChain4(a)

	if !Valid(a, children[0], path.Simple(path.MoveSuc)) {
		t.Fatalf("expected valid path")
	}
	if Valid(a, children[0], path.Simple(path.MovePre)) {
		t.Fatalf("expected invalid path")
	}
	if Length(a, children[0], path.Simple(path.MoveSuc)) != 1 {
		t.Fatalf("expected length 1")
	}
}
