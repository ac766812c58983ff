// Package pdt implements the perfect discrimination tree used to index
// demodulators (unit rewrite equations) for fast leftmost-innermost
// rewriting (spec.md §3.7, §4.5). Grounded line-for-line on
// original_source/CLAUSES/ccl_pdtrees.{c,h}.
package pdt

import (
	set "github.com/hashicorp/go-set/v3"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// Side names which side of an equational literal an indexed term is.
type Side int

const (
	LHS Side = iota
	RHS
)

// Entry is one demodulator position: a side of a literal of a clause
// (the original's ClausePos_p). It is the tree's indexing unit; the same
// *Entry pointer must be reused across Insert/Delete calls describing the
// same position, since the tree's leaf sets key membership by pointer
// identity (mirroring the original's set of ClausePos_p pointers).
type Entry struct {
	Clause *clause.Clause
	LitIdx int
	Side   Side
}

// Term returns the indexed side of the entry's literal.
func (e *Entry) Term() *term.Term {
	lit := e.Clause.Literals[e.LitIdx]
	if e.Side == LHS {
		return lit.LTerm
	}
	return lit.RTerm
}

// OtherSide returns the literal's non-indexed side — the replacement a
// rewrite step substitutes in (spec.md §4.5's "demodulator" is indexed by
// its larger side; the smaller side is what a match rewrites to).
func (e *Entry) OtherSide() *term.Term {
	lit := e.Clause.Literals[e.LitIdx]
	if e.Side == LHS {
		return lit.RTerm
	}
	return lit.LTerm
}

// newEntrySet creates an empty leaf entry set. Leaves key membership by
// *Entry pointer identity, mirroring the original's set of ClausePos_p
// pointers: callers must reuse the same *Entry across Insert/Delete for
// the same clause position.
func newEntrySet() *set.Set[*Entry] {
	return set.New[*Entry](0)
}
