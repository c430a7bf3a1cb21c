// Package collection implements Collection, CollectionInfo and Phrase
// (C5-C7): the inner AST node tree, its per-node index/coordinate/length
// annotations, and the top-level phrase list the parser produces.
//
// Nodes live in an Arena and are addressed by NodeID rather than raw
// pointers (design note 1 in SPEC_FULL.md): parent keeps exclusive
// ownership of its children, while previous/parent links are purely
// navigational back-references. This sidesteps the cyclic
// parent/previous/next pointer graph of the original C implementation
// without reintroducing manual memory management.
package collection

import (
	"github.com/google/uuid"

	"wavec/internal/atom"
	"wavec/internal/coordinate"
	"wavec/internal/path"
)

// NodeID addresses a node within an Arena. Ids are slice indexes
// starting at 0 (the first allocated node); use NoNode to mean "no node".
type NodeID int

// NoNode is the sentinel meaning "no node" (nil pointer equivalent).
const NoNode NodeID = -1

// Tag discriminates the Collection variants.
type Tag int

const (
	TagUnknown Tag = iota
	TagAtom
	TagSeq
	TagPar
	TagCyclicSeq
	TagCyclicPar
	TagRepSeq
	TagRepPar
)

// String renders a Tag the way wave_collection_fprint names the variant
// in the original's AST dump, used by the -dump-ast diagnostic.
func (t Tag) String() string {
	switch t {
	case TagAtom:
		return "atom"
	case TagSeq:
		return "seq"
	case TagPar:
		return "par"
	case TagCyclicSeq:
		return "cyclic_seq"
	case TagCyclicPar:
		return "cyclic_par"
	case TagRepSeq:
		return "rep_seq"
	case TagRepPar:
		return "rep_par"
	default:
		return "unknown"
	}
}

// RepetitionKind discriminates how a RepSeq/RepPar's repetition count is
// described.
type RepetitionKind int

const (
	// RepetitionConstant repeats the child list a fixed number of times.
	RepetitionConstant RepetitionKind = iota
	// RepetitionPath repeats the child list as many times as the length
	// produced by following a path.
	RepetitionPath
)

// Info is the per-node annotation computed by the indexing and
// length/coordinate passes (C6).
type Info struct {
	Index      int
	Coordinate *coordinate.Coordinate
	Length     *coordinate.Coordinate
}

// Copy returns an independent deep copy of info.
func (info Info) Copy() Info {
	cp := Info{Index: info.Index}
	if info.Coordinate != nil {
		cp.Coordinate = info.Coordinate.Copy()
	}
	if info.Length != nil {
		cp.Length = info.Length.Copy()
	}
	return cp
}

type node struct {
	id   uuid.UUID
	tag  Tag

	// TagAtom
	atom *atom.Atom

	// TagSeq, TagPar, TagCyclicSeq, TagCyclicPar, TagRepSeq, TagRepPar
	children NodeID

	// TagRepSeq, TagRepPar
	repKind   RepetitionKind
	repTimes  int
	repPath   *path.Path

	next     NodeID
	previous NodeID
	parent   NodeID

	info Info
}

// Arena owns a forest of collection nodes.
type Arena struct {
	nodes []node
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) alloc(n node) NodeID {
	n.next, n.previous, n.parent = NoNode, NoNode, NoNode
	n.id = uuid.New()
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

func (a *Arena) get(id NodeID) *node {
	return &a.nodes[id]
}

// NewAtom allocates a new TagAtom node owning at.
func (a *Arena) NewAtom(at *atom.Atom) NodeID {
	return a.alloc(node{tag: TagAtom, atom: at})
}

// NewSeq allocates a new TagSeq node whose child sibling chain is head.
func (a *Arena) NewSeq(head NodeID) NodeID {
	return a.newList(TagSeq, head)
}

// NewPar allocates a new TagPar node whose child sibling chain is head.
func (a *Arena) NewPar(head NodeID) NodeID {
	return a.newList(TagPar, head)
}

// NewCyclicSeq allocates a new TagCyclicSeq node whose child sibling
// chain is head.
func (a *Arena) NewCyclicSeq(head NodeID) NodeID {
	return a.newList(TagCyclicSeq, head)
}

// NewCyclicPar allocates a new TagCyclicPar node whose child sibling
// chain is head.
func (a *Arena) NewCyclicPar(head NodeID) NodeID {
	return a.newList(TagCyclicPar, head)
}

func (a *Arena) newList(tag Tag, head NodeID) NodeID {
	id := a.alloc(node{tag: tag, children: head})
	a.reparentChain(head, id)
	return id
}

// NewRepSeqConstant allocates a TagRepSeq node repeating the child chain
// head exactly times times.
func (a *Arena) NewRepSeqConstant(times int, head NodeID) NodeID {
	return a.newRep(TagRepSeq, RepetitionConstant, times, nil, head)
}

// NewRepParConstant allocates a TagRepPar node repeating the child chain
// head exactly times times.
func (a *Arena) NewRepParConstant(times int, head NodeID) NodeID {
	return a.newRep(TagRepPar, RepetitionConstant, times, nil, head)
}

// NewRepSeqPath allocates a TagRepSeq node repeating the child chain
// head as many times as p's traversal length.
func (a *Arena) NewRepSeqPath(p *path.Path, head NodeID) NodeID {
	return a.newRep(TagRepSeq, RepetitionPath, 0, p, head)
}

// NewRepParPath allocates a TagRepPar node repeating the child chain
// head as many times as p's traversal length.
func (a *Arena) NewRepParPath(p *path.Path, head NodeID) NodeID {
	return a.newRep(TagRepPar, RepetitionPath, 0, p, head)
}

func (a *Arena) newRep(tag Tag, kind RepetitionKind, times int, p *path.Path, head NodeID) NodeID {
	id := a.alloc(node{tag: tag, children: head, repKind: kind, repTimes: times, repPath: p})
	a.reparentChain(head, id)
	return id
}

// reparentChain walks the sibling chain starting at head and stamps
// every node's parent to p.
func (a *Arena) reparentChain(head, p NodeID) {
	for cur := head; cur != NoNode; cur = a.get(cur).next {
		a.get(cur).parent = p
	}
}

// Tag reports the variant of id.
func (a *Arena) Tag(id NodeID) Tag { return a.get(id).tag }

// Atom returns the atom payload of a TagAtom node.
func (a *Arena) Atom(id NodeID) *atom.Atom { return a.get(id).atom }

// List returns the head of id's child sibling chain (spec.md's
// wave_collection_get_list: resolves through the repetition payload for
// RepSeq/RepPar, the plain list otherwise).
func (a *Arena) List(id NodeID) NodeID { return a.get(id).children }

// RepetitionKind returns the repetition kind of a RepSeq/RepPar node.
func (a *Arena) RepetitionKind(id NodeID) RepetitionKind { return a.get(id).repKind }

// RepetitionTimes returns the constant repetition count of a RepSeq/RepPar node.
func (a *Arena) RepetitionTimes(id NodeID) int { return a.get(id).repTimes }

// RepetitionPath returns the repetition path of a RepSeq/RepPar node.
func (a *Arena) RepetitionPath(id NodeID) *path.Path { return a.get(id).repPath }

// Next returns the next sibling of id, or NoNode.
func (a *Arena) Next(id NodeID) NodeID { return a.get(id).next }

// Previous returns the previous sibling of id, or NoNode.
func (a *Arena) Previous(id NodeID) NodeID { return a.get(id).previous }

// Parent returns the parent of id, or NoNode for a phrase root.
func (a *Arena) Parent(id NodeID) NodeID { return a.get(id).parent }

// HasDown reports whether id is a Seq or Par node with a non-empty
// child list (the only tags Down may descend into).
func (a *Arena) HasDown(id NodeID) bool {
	t := a.Tag(id)
	return (t == TagSeq || t == TagPar) && a.List(id) != NoNode
}

// Info returns a pointer to id's mutable collection-info record.
func (a *Arena) Info(id NodeID) *Info { return &a.get(id).info }

// SetInfo replaces id's collection-info record wholesale.
func (a *Arena) SetInfo(id NodeID, info Info) { a.get(id).info = info }

// UUID returns the stable diagnostic identifier assigned to id at
// allocation time.
func (a *Arena) UUID(id NodeID) uuid.UUID { return a.get(id).id }

// Last returns the tail of id's sibling chain.
func (a *Arena) Last(id NodeID) NodeID {
	last := id
	for a.Next(last) != NoNode {
		last = a.Next(last)
	}
	return last
}

// AppendSibling walks to the tail of self's sibling chain and splices
// other onto the end, re-parenting other's whole chain to self's
// parent.
func (a *Arena) AppendSibling(self, other NodeID) {
	if other == NoNode {
		return
	}
	last := a.Last(self)
	a.get(last).next = other
	a.get(other).previous = last
	parent := a.Parent(last)
	for cur := other; cur != NoNode; cur = a.Next(cur) {
		a.get(cur).parent = parent
	}
}

// SetList replaces id's child list with head, re-parenting head's whole
// sibling chain to id. Valid for Seq, Par, CyclicSeq, CyclicPar.
func (a *Arena) SetList(id, head NodeID) {
	a.get(id).children = head
	a.reparentChain(head, id)
}

// SetRepetitionList replaces id's repeated child list with head,
// re-parenting it. Valid for RepSeq, RepPar.
func (a *Arena) SetRepetitionList(id, head NodeID) {
	a.get(id).children = head
	a.reparentChain(head, id)
}

// ReplaceWithList swaps id's tag and payload for the flattened list
// head (used when a RepSeq/RepPar is replaced by its unrolled list, or
// an Atom(Path) is replaced by a copy of its target). The node's Info
// is preserved by the caller unless explicitly overwritten via SetInfo.
func (a *Arena) ReplaceWithList(id NodeID, tag Tag, head NodeID) {
	n := a.get(id)
	n.tag = tag
	n.children = head
	n.atom = nil
	n.repPath = nil
	a.reparentChain(head, id)
}

// ReplaceWithAtom swaps id's tag and payload for at, used by path
// substitution to turn an unrelated node's copy into a standalone atom.
func (a *Arena) ReplaceWithAtom(id NodeID, at *atom.Atom) {
	n := a.get(id)
	n.tag = TagAtom
	n.atom = at
	n.children = NoNode
}
