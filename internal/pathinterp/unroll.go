package pathinterp

import (
	"wavec/internal/collection"
	"wavec/internal/path"
)

// Unroll walks the sibling chain starting at root pre-order, and for
// every RepSeq/RepPar whose repetition is path-driven, computes the
// record length produced by following that path as an infinite
// repetition starting at the repetition node itself, deep-copies the
// child list (length-1) additional times, splices the copies after the
// original, and replaces the repetition node by the expanded flat list
// (spec.md §4.5 "path unrolling").
//
// A path-driven repetition whose path is invalid when followed once from
// the repetition node is left untouched and reported back to the caller so semantic analysis can
// surface a diagnostic (spec.md §7 kind 2: unrolling halts for that
// node, the rest of the tree is still processed).
func Unroll(a *collection.Arena, root collection.NodeID) (invalid []collection.NodeID) {
	for cur := root; cur != collection.NoNode; cur = a.Next(cur) {
		switch a.Tag(cur) {
		case collection.TagRepSeq, collection.TagRepPar:
			if a.RepetitionKind(cur) == collection.RepetitionPath {
				if ok := unrollOne(a, cur); !ok {
					invalid = append(invalid, cur)
					continue
				}
			}
			// Recurse into the (possibly just-expanded) list.
			invalid = append(invalid, Unroll(a, a.List(cur))...)
		case collection.TagAtom, collection.TagUnknown:
			// nothing to recurse into
		default:
			invalid = append(invalid, Unroll(a, a.List(cur))...)
		}
	}
	return invalid
}

func unrollOne(a *collection.Arena, rep collection.NodeID) bool {
	p := a.RepetitionPath(rep)
	if !Valid(a, rep, p) {
		return false
	}
	res := Follow(a, rep, path.NewRepInfinite(p), Options{Count: CountAll})
	if res.Length < 0 {
		return false
	}
	length := res.Length
	original := a.List(rep)
	tag := collectionTagFor(a, rep)

	tail := a.Last(original)
	for i := 1; i < length; i++ {
		copyHead := a.Copy(original)
		a.AppendSibling(tail, copyHead)
		tail = a.Last(copyHead)
	}
	if length == 0 {
		a.ReplaceWithList(rep, tag, collection.NoNode)
	} else {
		a.ReplaceWithList(rep, tag, original)
	}
	return true
}

// collectionTagFor maps a RepSeq/RepPar node to the plain-list tag its
// unrolled form becomes.
func collectionTagFor(a *collection.Arena, rep collection.NodeID) collection.Tag {
	if a.Tag(rep) == collection.TagRepSeq {
		return collection.TagSeq
	}
	return collection.TagPar
}
