// Package atom implements Atom (C4): the leaf AST node holding a
// literal, an operator reference, or a path reference.
package atom

import (
	"fmt"

	"wavec/internal/path"
)

// Kind discriminates the Atom variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindString
	KindOperator
	KindPath
)

// Atom is a tagged value. It exclusively owns its string buffer or path:
// Copy deep-copies both.
type Atom struct {
	kind Kind

	i    int64
	f    float64
	b    bool
	ch   byte
	s    string
	op   OpCode
	p    *path.Path
}

// Unknown returns the zero Atom.
func Unknown() *Atom { return &Atom{kind: KindUnknown} }

// Int returns an Atom holding an integer literal.
func Int(v int64) *Atom { return &Atom{kind: KindInt, i: v} }

// Float returns an Atom holding a float literal.
func Float(v float64) *Atom { return &Atom{kind: KindFloat, f: v} }

// Bool returns an Atom holding a boolean literal.
func Bool(v bool) *Atom { return &Atom{kind: KindBool, b: v} }

// Char returns an Atom holding a character literal.
func Char(v byte) *Atom { return &Atom{kind: KindChar, ch: v} }

// String returns an Atom holding a copy of s as a string literal.
func String(s string) *Atom { return &Atom{kind: KindString, s: s} }

// Operator returns an Atom referencing operator op.
func Operator(op OpCode) *Atom { return &Atom{kind: KindOperator, op: op} }

// Path returns an Atom owning p (p is not copied; ownership transfers to
// the Atom).
func Path(p *path.Path) *Atom { return &Atom{kind: KindPath, p: p} }

// Kind reports the variant of a.
func (a *Atom) Kind() Kind { return a.kind }

// IntValue returns the integer payload. Valid only when Kind() == KindInt.
func (a *Atom) IntValue() int64 { return a.i }

// FloatValue returns the float payload. Valid only when Kind() == KindFloat.
func (a *Atom) FloatValue() float64 { return a.f }

// BoolValue returns the bool payload. Valid only when Kind() == KindBool.
func (a *Atom) BoolValue() bool { return a.b }

// CharValue returns the char payload. Valid only when Kind() == KindChar.
func (a *Atom) CharValue() byte { return a.ch }

// StringValue returns the string payload. Valid only when Kind() == KindString.
func (a *Atom) StringValue() string { return a.s }

// OpValue returns the operator payload. Valid only when Kind() == KindOperator.
func (a *Atom) OpValue() OpCode { return a.op }

// PathValue returns the path payload. Valid only when Kind() == KindPath.
func (a *Atom) PathValue() *path.Path { return a.p }

// SetInt re-tags a as a KindInt atom holding v.
func (a *Atom) SetInt(v int64) { *a = Atom{kind: KindInt, i: v} }

// SetFloat re-tags a as a KindFloat atom holding v.
func (a *Atom) SetFloat(v float64) { *a = Atom{kind: KindFloat, f: v} }

// SetBool re-tags a as a KindBool atom holding v.
func (a *Atom) SetBool(v bool) { *a = Atom{kind: KindBool, b: v} }

// SetChar re-tags a as a KindChar atom holding v.
func (a *Atom) SetChar(v byte) { *a = Atom{kind: KindChar, ch: v} }

// SetString re-tags a as a KindString atom holding a copy of s.
func (a *Atom) SetString(s string) { *a = Atom{kind: KindString, s: s} }

// SetOperator re-tags a as a KindOperator atom referencing op.
func (a *Atom) SetOperator(op OpCode) { *a = Atom{kind: KindOperator, op: op} }

// SetPath re-tags a as a KindPath atom owning p.
func (a *Atom) SetPath(p *path.Path) { *a = Atom{kind: KindPath, p: p} }

// Copy returns an independent deep copy of a: strings and paths are
// deep-copied, not shared.
func (a *Atom) Copy() *Atom {
	if a == nil {
		return nil
	}
	cp := *a
	cp.p = a.p.Copy()
	return &cp
}

// String renders a in Wave's surface grammar, used by the generator for
// literal emission and for diagnostics.
func (a *Atom) String() string {
	switch a.kind {
	case KindInt:
		return fmt.Sprintf("%d", a.i)
	case KindFloat:
		return fmt.Sprintf("%g", a.f)
	case KindBool:
		if a.b {
			return "true"
		}
		return "false"
	case KindChar:
		return fmt.Sprintf("'%c'", a.ch)
	case KindString:
		return fmt.Sprintf("%q", a.s)
	case KindOperator:
		return a.op.String()
	case KindPath:
		return "@" + a.p.String()
	default:
		return "<unknown>"
	}
}
