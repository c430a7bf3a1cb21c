// Package path implements Wave paths: small programs that walk a
// collection tree, used both as first-class atoms (@p) and to drive
// path-counted repetitions ({...} #p).
package path

// MoveType is the tag of a single path node.
type MoveType int

const (
	MoveUp MoveType = iota
	MoveDown
	MovePre
	MoveSuc
	MoveRewind
	MovePart
	MoveRep
	MoveUnknown
)

func (m MoveType) String() string {
	switch m {
	case MoveUp:
		return "u"
	case MoveDown:
		return "d"
	case MovePre:
		return "p"
	case MoveSuc:
		return "s"
	case MoveRewind:
		return "r"
	case MovePart:
		return "part"
	case MoveRep:
		return "rep"
	default:
		return "unknown"
	}
}

// RepeatKind discriminates a Rep node's repetition count.
type RepeatKind int

const (
	// RepeatConstant repeats the inner path a fixed number of times.
	RepeatConstant RepeatKind = iota
	// RepeatInfinite repeats the inner path until it would leave the tree.
	RepeatInfinite
)

// Path is a doubly-linked chain of moves. Each node owns its inner path
// (Part's argument, or Rep's repeated path) and the rest of the chain
// following it.
type Path struct {
	move MoveType

	part *Path // MovePart

	repeatKind   RepeatKind
	repeatNumber int
	repeatPath   *Path // MoveRep

	next     *Path
	previous *Path
}

// New returns an uninitialized path node with move MoveUnknown.
func New() *Path {
	return &Path{move: MoveUnknown}
}

// Simple returns a single-node path performing move m. m must be one of
// MoveUp, MoveDown, MovePre, MoveSuc, or MoveRewind.
func Simple(m MoveType) *Path {
	return &Path{move: m}
}

// NewPart returns a path node performing Part(inner).
func NewPart(inner *Path) *Path {
	p := &Path{}
	p.SetPart(inner)
	return p
}

// NewRep returns a path node performing Rep(kind, inner) with a
// constant repetition count n. Use NewRepInfinite for infinite
// repetition.
func NewRep(n int, inner *Path) *Path {
	p := &Path{}
	p.SetRepeatPath(inner)
	p.SetRepeatNumber(n)
	return p
}

// NewRepInfinite returns a path node performing an infinite Rep(inner).
func NewRepInfinite(inner *Path) *Path {
	p := &Path{}
	p.SetRepeatPath(inner)
	p.SetRepeatType(RepeatInfinite)
	return p
}

// Move reports the move tag of p.
func (p *Path) Move() MoveType { return p.move }

// Part returns the inner path of a MovePart node.
func (p *Path) Part() *Path { return p.part }

// RepeatType returns the repetition kind of a MoveRep node.
func (p *Path) RepeatType() RepeatKind { return p.repeatKind }

// RepeatNumber returns the repetition count of a constant MoveRep node.
func (p *Path) RepeatNumber() int { return p.repeatNumber }

// RepeatPath returns the repeated inner path of a MoveRep node.
func (p *Path) RepeatPath() *Path { return p.repeatPath }

// Next returns the next move in the chain, or nil at the end.
func (p *Path) Next() *Path { return p.next }

// Previous returns the previous move in the chain, or nil at the start.
func (p *Path) Previous() *Path { return p.previous }

// HasNext reports whether p has a following move.
func (p *Path) HasNext() bool { return p.next != nil }

// HasPrevious reports whether p has a preceding move.
func (p *Path) HasPrevious() bool { return p.previous != nil }

// SetMove sets p's move tag directly. It is used for the simple moves
// (Up/Down/Pre/Suc/Rewind) that carry no payload.
func (p *Path) SetMove(m MoveType) {
	p.move = m
}

// SetPart sets p to be a Part node wrapping inner, stamping the move
// tag so the node cannot disagree with its payload.
func (p *Path) SetPart(inner *Path) {
	p.move = MovePart
	p.part = inner
}

// SetRepeatType sets the repetition kind of a Rep node, stamping the
// move tag to MoveRep.
func (p *Path) SetRepeatType(k RepeatKind) {
	p.move = MoveRep
	p.repeatKind = k
}

// SetRepeatNumber sets the repetition count of a Rep node, stamping the
// move tag to MoveRep and the repetition kind to RepeatConstant.
func (p *Path) SetRepeatNumber(n int) {
	p.move = MoveRep
	p.repeatKind = RepeatConstant
	p.repeatNumber = n
}

// SetRepeatPath sets the repeated inner path of a Rep node, stamping the
// move tag to MoveRep.
func (p *Path) SetRepeatPath(inner *Path) {
	p.move = MoveRep
	p.repeatPath = inner
}

// Append splices next onto the end of p's chain.
func (p *Path) Append(next *Path) {
	if next == nil {
		return
	}
	last := p
	for last.HasNext() {
		last = last.next
	}
	last.next = next
	next.previous = last
}

// Copy returns an independent deep copy of the whole chain starting
// at p (siblings, Part/Rep payloads included). It returns nil for a
// nil receiver.
func (p *Path) Copy() *Path {
	if p == nil {
		return nil
	}
	var head, tail *Path
	for cur := p; cur != nil; cur = cur.next {
		n := &Path{
			move:         cur.move,
			repeatKind:   cur.repeatKind,
			repeatNumber: cur.repeatNumber,
			part:         cur.part.Copy(),
			repeatPath:   cur.repeatPath.Copy(),
		}
		if head == nil {
			head = n
		} else {
			tail.next = n
			n.previous = tail
		}
		tail = n
	}
	return head
}

// String renders p (and its chain) using the surface grammar of spec.md
// §6: single-letter moves, [part], (rep)n or (rep)*.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var sb []byte
	for cur := p; cur != nil; cur = cur.next {
		switch cur.move {
		case MoveUp, MoveDown, MovePre, MoveSuc, MoveRewind:
			sb = append(sb, cur.move.String()...)
		case MovePart:
			sb = append(sb, '[')
			sb = append(sb, cur.part.String()...)
			sb = append(sb, ']')
		case MoveRep:
			sb = append(sb, '(')
			sb = append(sb, cur.repeatPath.String()...)
			sb = append(sb, ')')
			if cur.repeatKind == RepeatInfinite {
				sb = append(sb, '*')
			} else {
				sb = append(sb, []byte(itoa(cur.repeatNumber))...)
			}
		}
	}
	return string(sb)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
