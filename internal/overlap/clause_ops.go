package overlap

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// collectIntoTerms returns every non-variable subterm of every maximal
// literal's relevant side(s), each paired with its compact position
// within c (ClauseCollectIntoTermsPos). These are the subterms a future
// demodulator could rewrite inside of — candidates for paramodulation
// "into".
func collectIntoTerms(bank *term.Bank, c *clause.Clause) []occurrence {
	var out []occurrence
	pos := Pos(0)
	for _, l := range c.Literals {
		if l.HasProp(clause.PropMaximal) {
			lhsPos, rhsPos, hasRHS := literalTermPositions(l, pos)
			collectSubterms(bank, l.LTerm, lhsPos, &out)
			if hasRHS {
				collectSubterms(bank, l.RTerm, rhsPos, &out)
			}
		}
		pos += Pos(l.Weight())
	}
	return out
}

// collectFromTerms returns the top position of each maximal, positive,
// unselected literal's side(s) — candidate demodulator left-hand sides
// (ClauseCollectFromTermsPos). Unlike collectIntoTerms this does not
// recurse: only the literal's own term(s) are rewrite-rule candidates,
// not their subterms.
func collectFromTerms(c *clause.Clause) []occurrence {
	var out []occurrence
	pos := Pos(0)
	for _, l := range c.Literals {
		if l.Positive && l.HasProp(clause.PropMaximal) && !l.HasProp(clause.PropSelected) {
			lhsPos, rhsPos, hasRHS := literalTermPositions(l, pos)
			if !l.LTerm.IsVar() {
				out = append(out, occurrence{l.LTerm, lhsPos})
			}
			if hasRHS && !l.RTerm.IsVar() {
				out = append(out, occurrence{l.RTerm, rhsPos})
			}
		}
		pos += Pos(l.Weight())
	}
	return out
}

// distinctTerms collapses a position list down to its distinct terms, for
// the clause-level delete operations (which remove every occurrence of a
// clause under each term it touches, rather than one position at a time —
// ccl_overlap_index.c's ClauseCollectIntoTerms, the PTree-collecting twin
// of ClauseCollectIntoTermsPos).
func distinctTerms(occs []occurrence) []*term.Term {
	seen := make(map[*term.Term]bool, len(occs))
	var out []*term.Term
	for _, o := range occs {
		if !seen[o.term] {
			seen[o.term] = true
			out = append(out, o.term)
		}
	}
	return out
}

// InsertIntoClause indexes c's into-terms: every subterm of a maximal
// literal's relevant side(s) (OverlapIndexInsertIntoClause). Callers must
// have already run ComputeMaximal on c.
func (idx *Index) InsertIntoClause(bank *term.Bank, c *clause.Clause) {
	for _, o := range collectIntoTerms(bank, c) {
		idx.InsertPos(o.term, c, o.pos)
	}
}

// DeleteIntoClause removes every into-term occurrence of c
// (OverlapIndexDeleteIntoClause).
func (idx *Index) DeleteIntoClause(bank *term.Bank, c *clause.Clause) {
	for _, t := range distinctTerms(collectIntoTerms(bank, c)) {
		idx.DeleteClauseOcc(t, c)
	}
}

// InsertFromClause indexes c's from-terms: the top term(s) of each
// maximal, positive, unselected literal (OverlapIndexInsertFromClause).
func (idx *Index) InsertFromClause(c *clause.Clause) {
	for _, o := range collectFromTerms(c) {
		idx.InsertPos(o.term, c, o.pos)
	}
}

// DeleteFromClause removes every from-term occurrence of c
// (OverlapIndexDeleteFromClause).
func (idx *Index) DeleteFromClause(c *clause.Clause) {
	for _, t := range distinctTerms(collectFromTerms(c)) {
		idx.DeleteClauseOcc(t, c)
	}
}
