// Package value implements the runtime tagged union C1 describes: a
// Go-side model of the value library the emitted C program links
// against, with Unary/Binary dispatch over the admissible (type, op)
// matrix (spec.md §6). It is used by internal/runtime; neither the code
// generator nor cmd/wavec calls into it.
//
// Par dispatch maps element-wise across a bounded goroutine pool via
// golang.org/x/sync/errgroup, the same parallelisation the generator
// itself emits as `#pragma omp parallel for` for the target C program:
// the reference model and the emitted C both fan the work out across
// GOMAXPROCS workers, one batch per worker, for the same reason.
package value

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"wavec/internal/atom"
)

// Kind discriminates a Value's variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
	KindSeq
	KindPar
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindSeq:
		return "seq"
	case KindPar:
		return "par"
	case KindOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Value is the tagged union the emitted program's runtime library
// operates on: exactly one payload field is meaningful for a given
// Kind, following the same closed-union discipline as atom.Atom.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	b     bool
	ch    byte
	s     string
	op    atom.OpCode
	elems []Value
}

// OpBinaryGet and the specific-group operators (stop, cut, read, print)
// have no entry in the admissible matrix of spec.md §6, which only
// enumerates the five scalar base types; `get` indexes into a Seq/Par
// collection rather than combining two scalars, and the remaining
// specific operators are control/IO primitives the generator emits as
// direct runtime calls rather than routing through Unary/Binary. Both
// groups are therefore handled by the code generator, not this table.

func Unknown() Value                  { return Value{kind: KindUnknown} }
func Int(i int64) Value               { return Value{kind: KindInt, i: i} }
func Float(f float64) Value           { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value               { return Value{kind: KindBool, b: b} }
func Char(ch byte) Value              { return Value{kind: KindChar, ch: ch} }
func String(s string) Value           { return Value{kind: KindString, s: s} }
func Operator(op atom.OpCode) Value   { return Value{kind: KindOperator, op: op} }
func Seq(elems []Value) Value         { return Value{kind: KindSeq, elems: elems} }
func Par(elems []Value) Value         { return Value{kind: KindPar, elems: elems} }

func (v Value) Kind() Kind            { return v.kind }
func (v Value) IntValue() int64       { return v.i }
func (v Value) FloatValue() float64   { return v.f }
func (v Value) BoolValue() bool       { return v.b }
func (v Value) CharValue() byte       { return v.ch }
func (v Value) StringValue() string   { return v.s }
func (v Value) OpValue() atom.OpCode  { return v.op }
func (v Value) Elems() []Value        { return v.elems }

// floatEpsilon is the absolute tolerance for Float equality (spec.md §4.1).
const floatEpsilon = 1e-5

// AsFloat promotes an Int or Float value to its float64 representation.
func (v Value) AsFloat() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// AsString promotes a Char or String value to its string representation,
// a Char becoming a 1-character string.
func (v Value) AsString() string {
	if v.kind == KindChar {
		return string(rune(v.ch))
	}
	return v.s
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindChar:
		return string(rune(v.ch))
	case KindString:
		return v.s
	case KindOperator:
		return v.op.String()
	case KindSeq, KindPar:
		return fmt.Sprintf("%v(%d)", v.kind, len(v.elems))
	default:
		return "unknown"
	}
}

// IsAtomKind reports whether v's kind is one of the scalar atom kinds
// the `atom?` specific operator recognises (spec.md §4.1).
func (v Value) IsAtomKind() bool {
	switch v.kind {
	case KindInt, KindFloat, KindChar, KindBool, KindString:
		return true
	default:
		return false
	}
}

// TypeError reports a (type, operator) pair outside the admissible
// matrix; the emitted program aborts on this with exit code 65
// (spec.md §6, §7 kind 4).
type TypeError struct {
	Op    atom.OpCode
	Kinds []Kind
}

func (e *TypeError) Error() string {
	kinds := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("wave: operator %s not admissible for operand type(s) %v", e.Op, kinds)
}

func typeErr(op atom.OpCode, kinds ...Kind) error {
	return errors.WithStack(&TypeError{Op: op, Kinds: kinds})
}

// Atom evaluates the `atom?` specific operator.
func Atom(x Value) Value {
	return Bool(x.IsAtomKind())
}

// Unary computes unary(x, op) per spec.md §4.1: a Par operand maps
// element-wise in parallel, otherwise the (type, op) pair is looked up
// in the admissible table and a TypeError is returned for a disallowed
// pair.
func Unary(x Value, op atom.OpCode) (Value, error) {
	if x.kind == KindPar {
		return parMap1(x, op)
	}
	fn, ok := unaryTable[tableKey{x.kind, op}]
	if !ok {
		return Value{}, typeErr(op, x.kind)
	}
	return fn(x), nil
}

// Binary computes binary(l, r, op) per spec.md §4.1.
func Binary(l, r Value, op atom.OpCode) (Value, error) {
	if l.kind == KindPar && r.kind == KindPar {
		if len(l.elems) != len(r.elems) {
			return Value{}, errors.Errorf("wave: Par operands of differing length (%d vs %d) for %s", len(l.elems), len(r.elems), op)
		}
		return parMap2(l, r, op)
	}
	if l.kind == KindPar || r.kind == KindPar {
		return Value{}, typeErr(op, l.kind, r.kind)
	}

	if l.kind == r.kind {
		fn, ok := binaryTable[tableKey{l.kind, op}]
		if !ok {
			return Value{}, typeErr(op, l.kind, r.kind)
		}
		return fn(l, r), nil
	}

	// Cross-type promotion: {Int,Float} -> Float, {Char,String} -> String.
	switch {
	case isNumeric(l.kind) && isNumeric(r.kind):
		fn, ok := binaryTable[tableKey{KindFloat, op}]
		if !ok {
			return Value{}, typeErr(op, l.kind, r.kind)
		}
		return fn(Float(l.AsFloat()), Float(r.AsFloat())), nil
	case isTextual(l.kind) && isTextual(r.kind):
		fn, ok := binaryTable[tableKey{KindString, op}]
		if !ok {
			return Value{}, typeErr(op, l.kind, r.kind)
		}
		return fn(String(l.AsString()), String(r.AsString())), nil
	default:
		return Value{}, typeErr(op, l.kind, r.kind)
	}
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindFloat }
func isTextual(k Kind) bool { return k == KindChar || k == KindString }

type tableKey struct {
	kind Kind
	op   atom.OpCode
}

// parMap1 applies Unary element-wise to a Par value, one goroutine per
// GOMAXPROCS-sized batch (mirroring the `#pragma omp parallel for` the
// generator emits for the corresponding C loop).
func parMap1(x Value, op atom.OpCode) (Value, error) {
	out := make([]Value, len(x.elems))
	g := new(errgroup.Group)
	for _, batch := range batches(len(x.elems)) {
		batch := batch
		g.Go(func() error {
			for i := batch.lo; i < batch.hi; i++ {
				v, err := Unary(x.elems[i], op)
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Value{}, err
	}
	return Par(out), nil
}

// parMap2 applies Binary element-wise across two equal-length Par
// values.
func parMap2(l, r Value, op atom.OpCode) (Value, error) {
	out := make([]Value, len(l.elems))
	g := new(errgroup.Group)
	for _, batch := range batches(len(l.elems)) {
		batch := batch
		g.Go(func() error {
			for i := batch.lo; i < batch.hi; i++ {
				v, err := Binary(l.elems[i], r.elems[i], op)
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Value{}, err
	}
	return Par(out), nil
}

type batch struct{ lo, hi int }

// batches splits [0,n) into at most GOMAXPROCS contiguous ranges.
func batches(n int) []batch {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	var out []batch
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, batch{lo, hi})
	}
	return out
}
