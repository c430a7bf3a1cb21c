// Package codegen implements the syntax-directed translator (C9):
// given an indexed, length/coordinate-annotated, path-resolved AST
// (collection.Arena + phrase.Phrase), it emits a companion C program
// that allocates a flat runtime value table and evaluates every
// operator with OpenMP parallelism where the tree is marked parallel.
//
// Two output streams mirror the two-file contract the original
// declares in wave_code_generation.h (wave_code_generation_collection
// takes a code_file and an alloc_file, even though the lone .c
// implementation found alongside it writes everything to one stream —
// treated as an unfinished draft, and the header's signature as the
// intended contract): code carries executable statements and control
// structure, alloc carries table declarations, so every wave_tab is
// declared before any control flow that might jump into its scope.
// Splicing the two back into one translation unit (alloc content
// ahead of code content) is cmd/wavec's job, not this package's.
package codegen

import (
	"fmt"
	"io"

	"wavec/internal/collection"
	"wavec/internal/coordinate"
	"wavec/internal/phrase"
	"wavec/internal/waveerr"
)

// Generator holds the two output streams and the nesting counters
// operator emission (stop/cut) and Par-region read/print serialisation
// consult.
type Generator struct {
	code  io.Writer
	alloc io.Writer

	cyclicDepth int
	repDepth    int
	parDepth    int
}

// New returns a Generator writing table declarations to alloc and
// everything else to code.
func New(code, alloc io.Writer) *Generator {
	return &Generator{code: code, alloc: alloc}
}

// EmitProgram translates every phrase in the list headed by phrases
// into the companion C program, wrapping the whole translation in a
// single main and clearing the runtime garbage registry at each phrase
// boundary (design note 2 in SPEC_FULL.md: Par allocations are live
// only for the phrase that produced them).
func (g *Generator) EmitProgram(a *collection.Arena, phrases *phrase.Phrase) error {
	fmt.Fprint(g.code, "#include \"wave_runtime.h\"\n\n")
	fmt.Fprint(g.code, "int main(void)\n{\n")

	var emitErr error
	phrases.Each(func(p *phrase.Phrase) {
		if emitErr != nil {
			return
		}
		if err := g.emitChain(a, p.Root); err != nil {
			emitErr = err
			return
		}
		fmt.Fprint(g.code, "wave_garbage_clean();\n")
	})
	if emitErr != nil {
		return emitErr
	}

	fmt.Fprint(g.code, "return 0;\n}\n")
	return nil
}

// emitChain walks a sibling chain, dispatching every node by tag
// (wave_code_generation_collection's do/while loop over wave_collection_get_next).
func (g *Generator) emitChain(a *collection.Arena, head collection.NodeID) error {
	for cur := head; cur != collection.NoNode; cur = a.Next(cur) {
		if err := g.emitNode(a, cur); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitNode(a *collection.Arena, id collection.NodeID) error {
	switch a.Tag(id) {
	case collection.TagAtom:
		return g.emitAtom(a, id)
	case collection.TagSeq:
		return g.emitSeq(a, id)
	case collection.TagPar:
		return g.emitPar(a, id)
	case collection.TagCyclicSeq:
		return g.emitCyclicSeq(a, id)
	case collection.TagCyclicPar:
		return g.emitCyclicPar(a, id)
	case collection.TagRepSeq:
		return g.emitRepSeq(a, id)
	case collection.TagRepPar:
		return g.emitRepPar(a, id)
	default:
		return nil
	}
}

// allocTab declares id's own runtime table to the alloc stream, sized
// by the symbolic total length of its children: the last child's
// coordinate plus its length (wave_code_generation_alloc_collection_tab).
func (g *Generator) allocTab(a *collection.Arena, id collection.NodeID) {
	name := coordinate.Var(a.FullIndexes(id)).String()
	size := coordinate.Constant(0)
	if last := a.Last(a.List(id)); last != collection.NoNode {
		info := a.Info(last)
		size = coordinate.Plus(info.Coordinate.Copy(), info.Length.Copy())
	}
	fmt.Fprintf(g.alloc, "wave_data wave_tab%s[%s];\n", name, size.String())
}

func (g *Generator) emitSeq(a *collection.Arena, id collection.NodeID) error {
	g.allocTab(a, id)
	return g.emitChain(a, a.List(id))
}

func (g *Generator) emitPar(a *collection.Arena, id collection.NodeID) error {
	fmt.Fprint(g.code, "#pragma omp parallel\n{\n#pragma omp sections\n{\n")
	g.allocTab(a, id)
	g.parDepth++
	var err error
	for cur := a.List(id); cur != collection.NoNode && err == nil; cur = a.Next(cur) {
		fmt.Fprint(g.code, "#pragma omp section\n{\n")
		err = g.emitNode(a, cur)
		fmt.Fprint(g.code, "}\n")
	}
	g.parDepth--
	fmt.Fprint(g.code, "}\n}\n")
	return err
}

func (g *Generator) emitCyclicSeq(a *collection.Arena, id collection.NodeID) error {
	fmt.Fprint(g.code, "for(;;)\n{\n")
	g.allocTab(a, id)
	g.cyclicDepth++
	err := g.emitChain(a, a.List(id))
	g.cyclicDepth--
	fmt.Fprint(g.code, "}\n")
	return err
}

func (g *Generator) emitCyclicPar(a *collection.Arena, id collection.NodeID) error {
	fmt.Fprint(g.code, "for(;;)\n{\n#pragma omp parallel\n{\n#pragma omp sections\n{\n")
	g.allocTab(a, id)
	fmt.Fprint(g.code, "#pragma omp section\n{\n")
	g.cyclicDepth++
	g.parDepth++
	err := g.emitChain(a, a.List(id))
	g.parDepth--
	g.cyclicDepth--
	fmt.Fprint(g.code, "}\n}\n}\n}\n")
	return err
}

// repLoopBound resolves the iteration count a RepSeq/RepPar's for loop
// counts to. By the time codegen runs, every path-driven repetition
// should already have been replaced by its flattened list
// (pathinterp.Unroll only ever rewrites RepetitionPath nodes, spec.md
// §4.5): a node still carrying RepetitionPath here means Unroll's
// invalid list was never checked upstream, a pipeline invariant
// violation reported as a diagnostic rather than silently miscompiled.
func repLoopBound(a *collection.Arena, id collection.NodeID) (string, error) {
	if a.RepetitionKind(id) != collection.RepetitionConstant {
		return "", waveerr.NewInvalidPathError("repetition count not resolved before code generation", waveerr.SourceLocation{})
	}
	return fmt.Sprintf("%d", a.RepetitionTimes(id)), nil
}

const repIterator = "__wave_parallel_iterator__"

func (g *Generator) emitRepSeq(a *collection.Arena, id collection.NodeID) error {
	bound, err := repLoopBound(a, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.code, "for(int %s = 0; %s < %s; ++%s)\n{\n", repIterator, repIterator, bound, repIterator)
	g.allocTab(a, id)
	g.repDepth++
	err = g.emitChain(a, a.List(id))
	g.repDepth--
	fmt.Fprint(g.code, "}\n")
	return err
}

func (g *Generator) emitRepPar(a *collection.Arena, id collection.NodeID) error {
	bound, err := repLoopBound(a, id)
	if err != nil {
		return err
	}
	fmt.Fprint(g.code, "#pragma omp parallel\n{\n#pragma omp for\n{\n")
	fmt.Fprintf(g.code, "for(int %s = 0; %s < %s; ++%s)\n{\n", repIterator, repIterator, bound, repIterator)
	fmt.Fprint(g.code, "#pragma omp sections\n{\n")
	g.allocTab(a, id)
	fmt.Fprint(g.code, "#pragma omp section\n{\n")
	g.repDepth++
	g.parDepth++
	err = g.emitChain(a, a.List(id))
	g.parDepth--
	g.repDepth--
	fmt.Fprint(g.code, "}\n}\n}\n}\n}\n")
	return err
}
