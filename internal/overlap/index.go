// Package overlap implements the overlap (FP-)index: a subterm index over
// a clause set's maximal literals, used to find paramodulation/rewrite
// candidates without scanning every clause (spec.md §3.8, §4.6). Grounded
// on original_source/CLAUSES/ccl_overlap_index.{c,h}.
package overlap

import (
	"github.com/google/btree"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// Occurrence is one indexed (clause, position) pair returned by a query
// (ccl_overlap_index.c's ClauseTPos entries).
type Occurrence struct {
	Clause *clause.Clause
	Pos    Pos
}

// occItem orders Occurrences by (clause ID, position) so a single clause's
// occurrences sit contiguously — OverlapIndexDeleteClauseOcc relies on
// this to delete every position belonging to one clause in one ascending
// scan instead of a linear search.
type occItem Occurrence

func (a occItem) Less(than btree.Item) bool {
	b := than.(occItem)
	if a.Clause.ID != b.Clause.ID {
		return a.Clause.ID < b.Clause.ID
	}
	return a.Pos < b.Pos
}

// Index is a subterm → occurrence-set map (ccl_overlap_index.h's
// OverlapIndex, collapsed from its three-level fingerprint/subterm/
// clause-position tree to a single Go map — the fingerprint layer exists
// in the original purely to keep the subterm comparison approximate and
// cheap before an exact lookup; Go's map already gives an exact O(1)
// lookup on *term.Term identity, since this core's term bank perfectly
// shares subterms, so the approximation layer has nothing left to buy).
type Index struct {
	byTerm map[*term.Term]*btree.BTree
}

// New creates an empty overlap index.
func New() *Index {
	return &Index{byTerm: make(map[*term.Term]*btree.BTree)}
}

// InsertPos adds (c, pos) under t (OverlapIndexInsertPos).
func (idx *Index) InsertPos(t *term.Term, c *clause.Clause, pos Pos) {
	bt, ok := idx.byTerm[t]
	if !ok {
		bt = btree.New(32)
		idx.byTerm[t] = bt
	}
	bt.ReplaceOrInsert(occItem{c, pos})
}

// DeletePos removes (c, pos) from under t, if present (OverlapIndexDeletePos).
func (idx *Index) DeletePos(t *term.Term, c *clause.Clause, pos Pos) {
	bt, ok := idx.byTerm[t]
	if !ok {
		return
	}
	bt.Delete(occItem{c, pos})
	if bt.Len() == 0 {
		delete(idx.byTerm, t)
	}
}

// DeleteClauseOcc removes every occurrence of clause c indexed under t in
// one ascending scan (OverlapIndexDeleteClauseOcc).
func (idx *Index) DeleteClauseOcc(t *term.Term, c *clause.Clause) {
	bt, ok := idx.byTerm[t]
	if !ok {
		return
	}
	var dead []btree.Item
	bt.AscendGreaterOrEqual(occItem{Clause: c, Pos: 0}, func(i btree.Item) bool {
		o := i.(occItem)
		if o.Clause.ID != c.ID {
			return false
		}
		dead = append(dead, i)
		return true
	})
	for _, i := range dead {
		bt.Delete(i)
	}
	if bt.Len() == 0 {
		delete(idx.byTerm, t)
	}
}

// Occurrences returns every (clause, position) pair indexed under t, or
// nil if t is not indexed.
func (idx *Index) Occurrences(t *term.Term) []Occurrence {
	bt, ok := idx.byTerm[t]
	if !ok {
		return nil
	}
	out := make([]Occurrence, 0, bt.Len())
	bt.Ascend(func(i btree.Item) bool {
		o := i.(occItem)
		out = append(out, Occurrence(o))
		return true
	})
	return out
}
