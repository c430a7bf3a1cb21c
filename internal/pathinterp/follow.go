// Package pathinterp implements the path interpreter (C8): a small
// state machine that walks a collection tree following a path program,
// computing both the destination node and a length, and driving path
// unrolling and path-atom substitution during semantic analysis.
package pathinterp

import (
	"wavec/internal/collection"
	"wavec/internal/path"
)

// CountMode selects what Result.Length reports.
type CountMode int

const (
	// CountAll reports the total number of steps taken.
	CountAll CountMode = iota
	// CountRecordOnly reports only the steps recorded by the most
	// recently completed Part (or Rep-of-Part) group.
	CountRecordOnly
)

// Options configures a call to Follow.
type Options struct {
	Count CountMode
	// Record, if true, makes Follow populate Result.Record with the
	// inverse of the moves actually performed, suitable for walking
	// back from the destination to the start.
	Record bool
}

// Result is the outcome of following a path from a starting node.
type Result struct {
	// Destination is the node reached, or collection.NoNode if the path
	// was invalid.
	Destination collection.NodeID
	// Length is -1 when the path was invalid; otherwise the step count
	// selected by Options.Count.
	Length int
	// Record holds the inverse move sequence when Options.Record was
	// set and the path was valid; nil otherwise.
	Record *path.Path
}

// walkState threads the mutable parts of the interpreter's state
// (performed moves, and the "last recorded" sub-path consulted by
// Rewind) through a walk without mutating shared state on a path that
// is ultimately discarded (the Rep(Infinite) trial-and-roll-back case).
type walkState struct {
	cursor        collection.NodeID
	steps         int
	moves         []path.MoveType
	lastRecord    *path.Path
	lastRecordLen int
	ok            bool
}

// Follow walks start under path p and reports the destination and a
// length, per opts (spec.md §4.8).
func Follow(a *collection.Arena, start collection.NodeID, p *path.Path, opts Options) Result {
	st := walk(a, walkState{cursor: start, ok: true}, p)
	if !st.ok {
		return Result{Destination: collection.NoNode, Length: -1}
	}
	res := Result{Destination: st.cursor}
	switch opts.Count {
	case CountRecordOnly:
		res.Length = st.lastRecordLen
	default:
		res.Length = st.steps
	}
	if opts.Record {
		res.Record = buildRecord(st.moves)
	}
	return res
}

// walk executes the move chain p against state in, returning the
// resulting state. On failure (an unconditional move hit a null
// cursor), the returned state has ok=false and must not be used to
// update any caller-visible state: the caller is responsible for
// discarding it, which is how a failed Rep(Infinite) trial iteration is
// rolled back without corrupting lastRecord/steps/moves.
func walk(a *collection.Arena, in walkState, p *path.Path) walkState {
	st := in
	for cur := p; cur != nil; cur = cur.Next() {
		switch cur.Move() {
		case path.MoveUp:
			next := a.Parent(st.cursor)
			if next == collection.NoNode {
				return walkState{ok: false}
			}
			st.cursor = next
			st.steps++
			st.moves = append(st.moves, path.MoveUp)

		case path.MoveDown:
			if !a.HasDown(st.cursor) {
				return walkState{ok: false}
			}
			st.cursor = a.List(st.cursor)
			st.steps++
			st.moves = append(st.moves, path.MoveDown)

		case path.MovePre:
			next := a.Previous(st.cursor)
			if next == collection.NoNode {
				return walkState{ok: false}
			}
			st.cursor = next
			st.steps++
			st.moves = append(st.moves, path.MovePre)

		case path.MoveSuc:
			next := a.Next(st.cursor)
			if next == collection.NoNode {
				return walkState{ok: false}
			}
			st.cursor = next
			st.steps++
			st.moves = append(st.moves, path.MoveSuc)

		case path.MoveRewind:
			if st.lastRecord == nil {
				continue // no recorded path: no-op
			}
			sub := walk(a, walkState{cursor: st.cursor, lastRecord: st.lastRecord, ok: true}, st.lastRecord)
			if !sub.ok {
				return walkState{ok: false}
			}
			st.cursor = sub.cursor
			st.steps += sub.steps
			st.moves = append(st.moves, sub.moves...)
			// Rewind does not itself become the new "last record".

		case path.MovePart:
			sub := walk(a, walkState{cursor: st.cursor, lastRecord: st.lastRecord, ok: true}, cur.Part())
			if !sub.ok {
				return walkState{ok: false}
			}
			st.cursor = sub.cursor
			st.steps += sub.steps
			st.moves = append(st.moves, sub.moves...)
			st.lastRecord = cur.Part()
			st.lastRecordLen = sub.steps

		case path.MoveRep:
			inner := cur.RepeatPath()
			if cur.RepeatType() == path.RepeatConstant {
				groupSteps := 0
				n := cur.RepeatNumber()
				for i := 0; i < n; i++ {
					sub := walk(a, walkState{cursor: st.cursor, lastRecord: st.lastRecord, ok: true}, inner)
					if !sub.ok {
						return walkState{ok: false}
					}
					st.cursor = sub.cursor
					st.steps += sub.steps
					st.moves = append(st.moves, sub.moves...)
					st.lastRecord = sub.lastRecord
					groupSteps += sub.steps
				}
				st.lastRecordLen = groupSteps
			} else {
				groupSteps := 0
				for {
					sub := walk(a, walkState{cursor: st.cursor, lastRecord: st.lastRecord, ok: true}, inner)
					if !sub.ok {
						break
					}
					st.cursor = sub.cursor
					st.steps += sub.steps
					st.moves = append(st.moves, sub.moves...)
					st.lastRecord = sub.lastRecord
					groupSteps += sub.steps
				}
				st.lastRecordLen = groupSteps
			}
		}
	}
	return st
}

var inverse = map[path.MoveType]path.MoveType{
	path.MoveUp:   path.MoveDown,
	path.MoveDown: path.MoveUp,
	path.MovePre:  path.MoveSuc,
	path.MoveSuc:  path.MovePre,
}

// buildRecord turns the moves actually performed (in execution order)
// into the path that walks back from the destination to the start:
// the inverse of each move, applied in reverse order.
func buildRecord(moves []path.MoveType) *path.Path {
	if len(moves) == 0 {
		return nil
	}
	var head *path.Path
	for i := len(moves) - 1; i >= 0; i-- {
		node := path.Simple(inverse[moves[i]])
		if head == nil {
			head = node
		} else {
			head.Append(node)
		}
	}
	return head
}

// Valid reports whether a path is valid against start: the interpreter
// terminates at a non-null destination (spec.md §4.5, "path validity").
func Valid(a *collection.Arena, start collection.NodeID, p *path.Path) bool {
	res := Follow(a, start, p, Options{Count: CountAll})
	return res.Destination != collection.NoNode
}

// Length returns the total step count of following p from start, or -1
// if the path is invalid.
func Length(a *collection.Arena, start collection.NodeID, p *path.Path) int {
	res := Follow(a, start, p, Options{Count: CountAll})
	return res.Length
}
