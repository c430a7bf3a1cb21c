package collection

import "wavec/internal/coordinate"

// IndexPhrase runs the indexing pass (spec.md §4.5) over every sibling
// chain reachable from root: each chain's siblings are numbered
// 0,1,2,... in order, recursing into the child list of every
// non-atom, non-unknown node.
func (a *Arena) IndexPhrase(root NodeID) {
	a.indexChain(root)
}

func (a *Arena) indexChain(head NodeID) {
	i := 0
	for cur := head; cur != NoNode; cur = a.Next(cur) {
		a.Info(cur).Index = i
		i++
		if t := a.Tag(cur); t != TagAtom && t != TagUnknown {
			a.indexChain(a.List(cur))
		}
	}
}

// LengthCoordPhrase runs the length & coordinate pass (spec.md §4.5)
// over root's whole sibling chain, depth-first, children before
// parent. The root chain's head gets Coordinate = Constant(0); every
// later sibling's coordinate is previous.coordinate + previous.length.
func (a *Arena) LengthCoordPhrase(root NodeID) {
	a.lengthCoordChain(root)
}

func (a *Arena) lengthCoordChain(head NodeID) {
	for cur := head; cur != NoNode; cur = a.Next(cur) {
		if t := a.Tag(cur); t != TagAtom && t != TagUnknown {
			a.lengthCoordChain(a.List(cur))
		}
		a.computeLength(cur)
		a.computeCoordinate(cur)
	}
}

func (a *Arena) computeCoordinate(id NodeID) {
	prev := a.Previous(id)
	if prev == NoNode {
		a.Info(id).Coordinate = coordinate.Constant(0)
		return
	}
	prevInfo := a.Info(prev)
	a.Info(id).Coordinate = coordinate.Plus(prevInfo.Coordinate.Copy(), prevInfo.Length.Copy())
}

func (a *Arena) computeLength(id NodeID) {
	switch a.Tag(id) {
	case TagAtom, TagSeq, TagPar, TagCyclicSeq, TagCyclicPar:
		a.Info(id).Length = coordinate.Constant(1)
	case TagRepSeq, TagRepPar:
		childrenLength := a.sumListLengths(a.List(id))
		var repetition *coordinate.Coordinate
		if a.RepetitionKind(id) == RepetitionConstant {
			repetition = coordinate.Constant(a.RepetitionTimes(id))
		} else {
			// Path-driven: the statically-known path length, possibly
			// 0 at this point in the pipeline; the unrolling pass
			// recomputes it once the path's traversal length is known.
			repetition = coordinate.Constant(a.RepetitionTimes(id))
		}
		a.Info(id).Length = coordinate.Times(repetition, childrenLength)
	default:
		a.Info(id).Length = coordinate.Constant(0)
	}
}

// sumListLengths returns Sum_i length(child_i) for the sibling chain
// starting at head (spec.md's wave_collection_get_list_length).
func (a *Arena) sumListLengths(head NodeID) *coordinate.Coordinate {
	if head == NoNode {
		return coordinate.Constant(0)
	}
	sum := a.Info(head).Length.Copy()
	for cur := a.Next(head); cur != NoNode; cur = a.Next(cur) {
		sum = coordinate.Plus(sum, a.Info(cur).Length.Copy())
	}
	return sum
}
