// Package phrase implements Phrase (C7): the top-level doubly-linked
// list of collections the parser produces, each phrase owning one root
// collection.
package phrase

import "wavec/internal/collection"

// Phrase is a node in a doubly-linked list owning one collection root.
// The backward link is navigational only; ownership flows forward via
// Next.
type Phrase struct {
	Root collection.NodeID
	next *Phrase
	prev *Phrase
}

// New returns a phrase owning root.
func New(root collection.NodeID) *Phrase {
	return &Phrase{Root: root}
}

// Next returns the following phrase, or nil at the end of the list.
func (p *Phrase) Next() *Phrase { return p.next }

// Previous returns the preceding phrase, or nil at the start of the list.
func (p *Phrase) Previous() *Phrase { return p.prev }

// Append splices next onto the end of p's list.
func (p *Phrase) Append(next *Phrase) {
	last := p
	for last.next != nil {
		last = last.next
	}
	last.next = next
	next.prev = last
}

// Each calls fn for every phrase from p to the end of the list, in order.
func (p *Phrase) Each(fn func(*Phrase)) {
	for cur := p; cur != nil; cur = cur.next {
		fn(cur)
	}
}

// EachReverse calls fn for every phrase from p back to the start of the
// list. p is assumed to be the tail.
func (p *Phrase) EachReverse(fn func(*Phrase)) {
	for cur := p; cur != nil; cur = cur.prev {
		fn(cur)
	}
}
