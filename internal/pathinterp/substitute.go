package pathinterp

import (
	"wavec/internal/atom"
	"wavec/internal/collection"
	"wavec/internal/path"
)

// Substitute walks the sibling chain starting at root and, for every
// Atom(Path) whose target resolves, replaces the path-atom with a deep
// copy of the target collection in place (spec.md §4.5 "path
// substitution").
//
// A forward reference (the source's full-index tuple sorts before the
// target's) is always substituted. A backward reference is substituted
// only when the target subtree contains no further path atoms, avoiding
// a substitution cycle (spec.md §7 kind 3); otherwise the atom is left
// for runtime evaluation and its node id is reported back to the caller
// as skipped. Path atoms whose path does not resolve, or whose target
// has the same full indexes as the atom, are left in place and reported
// as skipped as well.
//
// Per design note 2 in SPEC_FULL.md, the replacement is materialised
// before anything about the original atom is discarded: we never free
// the original node (the arena has no explicit free), so the historical
// free-before-use hazard in the original implementation does not arise
// here.
func Substitute(a *collection.Arena, root collection.NodeID) (skipped []collection.NodeID) {
	for cur := root; cur != collection.NoNode; cur = a.Next(cur) {
		switch a.Tag(cur) {
		case collection.TagAtom:
			at := a.Atom(cur)
			if at.Kind() != atom.KindPath {
				continue
			}
			if trySubstitute(a, cur) {
				continue
			}
			skipped = append(skipped, cur)
		case collection.TagUnknown:
			// nothing to recurse into
		default:
			skipped = append(skipped, Substitute(a, a.List(cur))...)
		}
	}
	return skipped
}

func trySubstitute(a *collection.Arena, self collection.NodeID) bool {
	at := a.Atom(self)
	target, ok := Resolve(a, self, at.PathValue())
	if !ok {
		return false
	}

	me := a.FullIndexes(self)
	him := a.FullIndexes(target)
	cmp := me.Compare(him)

	// me < him: a forward reference, the referent sorts after the
	// reference itself and is always safe to inline (it cannot yet
	// contain a copy of self). me > him: a backward reference; only
	// inline it if its subtree holds no further path atoms, since those
	// could not yet have been resolved and copying them over risks a
	// substitution cycle (spec.md §7 kind 3). me == him does not arise
	// for a well-formed reference and is left unresolved, matching the
	// original's lack of an else branch for that case.
	switch {
	case cmp == 0:
		return false
	case cmp > 0:
		if a.ContainsPathAtom(target) {
			return false
		}
	}

	replacement := a.CopyNode(target)
	info := a.Info(self).Copy()
	tag := a.Tag(target)
	if tag == collection.TagAtom {
		a.ReplaceWithAtom(self, a.Atom(replacement))
	} else {
		a.ReplaceWithList(self, tag, a.List(replacement))
	}
	a.SetInfo(self, info)
	if a.List(self) != collection.NoNode {
		reindexChain(a, a.List(self))
	}
	return true
}

func reindexChain(a *collection.Arena, head collection.NodeID) {
	i := 0
	for cur := head; cur != collection.NoNode; cur = a.Next(cur) {
		a.Info(cur).Index = i
		i++
	}
}

// Resolve follows p from self's collection tree and, if the path is
// valid, returns the node it denotes.
func Resolve(a *collection.Arena, self collection.NodeID, p *path.Path) (collection.NodeID, bool) {
	res := Follow(a, self, p, Options{Count: CountAll})
	if res.Destination == collection.NoNode {
		return collection.NoNode, false
	}
	return res.Destination, true
}
