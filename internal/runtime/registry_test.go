package runtime

import (
	"testing"

	"wavec/internal/atom"
	"wavec/internal/value"
)

func TestBinaryTracksParResult(t *testing.T) {
	r := NewRegistry()
	l := value.Par([]value.Value{value.Int(1), value.Int(2)})
	rhs := value.Par([]value.Value{value.Int(10), value.Int(20)})

	v, err := r.Binary(l, rhs, atom.OpBinaryPlus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != value.KindPar {
		t.Fatalf("expected a Par result")
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 tracked allocation, got %d", r.Count())
	}
}

func TestUnaryScalarResultIsNotTracked(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Unary(value.Int(1), atom.OpUnaryMinus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("expected scalar results to not be tracked, got %d", r.Count())
	}
}

func TestCleanDropsTrackedValues(t *testing.T) {
	r := NewRegistry()
	par := value.Par([]value.Value{value.Int(1)})
	if _, err := r.Unary(par, atom.OpUnaryIncrement); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 tracked allocation before Clean")
	}
	r.Clean()
	if r.Count() != 0 {
		t.Fatalf("expected Clean to drop tracked allocations")
	}
}

func TestRunPhraseClearsRegistryEvenOnError(t *testing.T) {
	r := NewRegistry()
	par := value.Par([]value.Value{value.Int(1)})
	err := RunPhrase(r, func() error {
		if _, err := r.Unary(par, atom.OpUnaryIncrement); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return errBoom
	})
	if err != errBoom {
		t.Fatalf("expected RunPhrase to propagate fn's error, got %v", err)
	}
	if r.Count() != 0 {
		t.Fatalf("expected the registry to be cleared after RunPhrase, got %d", r.Count())
	}
}

var errBoom = &sentinelError{"boom"}

type sentinelError struct{ msg string }

func (e *sentinelError) Error() string { return e.msg }
