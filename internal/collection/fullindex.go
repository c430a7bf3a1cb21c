package collection

import (
	"wavec/internal/atom"
	"wavec/internal/intlist"
)

// FullIndexes returns the tuple of Info.Index values from the root down
// to id inclusive, obtained by walking parent links and prepending.
func (a *Arena) FullIndexes(id NodeID) *intlist.IntList {
	l := intlist.New()
	for cur := id; cur != NoNode; cur = a.Parent(cur) {
		l.PushFront(a.Info(cur).Index)
	}
	return l
}

// ContainsPathAtom reports whether the subtree rooted at id (its own
// list, recursively, not its siblings) contains an Atom(Path) node.
// Grounded on wave_collection_contains_path, used by the backward
// substitution safety check (spec.md §4.5).
func (a *Arena) ContainsPathAtom(id NodeID) bool {
	if id == NoNode {
		return false
	}
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch a.Tag(cur) {
		case TagAtom:
			if a.Atom(cur).Kind() == atom.KindPath {
				return true
			}
		case TagUnknown:
			// nothing to recurse into
		default:
			for child := a.List(cur); child != NoNode; child = a.Next(child) {
				stack = append(stack, child)
			}
		}
	}
	return false
}
