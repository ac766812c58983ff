package rewrite

import "github.com/eprover-go/eqcore/internal/clause"

// NormalizeClause rewrites every literal side of c to its leftmost-innermost
// normal form, keeps c's cached weight in sync via ReplaceLiteralTerms, and
// reports whether anything changed (ClauseComputeLINormalform /
// eqn_li_normalform, applied literal by literal).
//
// A changed clause loses CPInitial (it's no longer the clause the input
// parser produced) and gains CPSOS if any rewrite step along the way pulled
// in a set-of-support demodulator (r.sosRewritten, reset per literal so one
// clause's provenance can't leak into the next).
func (r *Rewriter) NormalizeClause(c *clause.Clause) bool {
	if r.level == NoRewrite {
		return false
	}
	changed := false
	for _, lit := range c.Literals {
		r.sosRewritten = false
		newL := r.NormalizeTerm(lit.LTerm)
		newR := r.NormalizeTerm(lit.RTerm)
		if newL == lit.LTerm && newR == lit.RTerm {
			continue
		}
		c.ReplaceLiteralTerms(lit, newL, newR)
		changed = true
		if r.sosRewritten {
			c.SetProp(clause.CPSOS)
		}
	}
	if changed {
		c.ClearProp(clause.CPInitial)
	}
	return changed
}

// NormalizeSet rewrites every clause in cs to its normal form
// (ClauseSetComputeLINormalform), returning how many clauses actually
// changed. Clauses reduced to a literal-less (empty) state or otherwise left
// unsatisfiable by rewriting are not specially handled here — spec.md §4.7
// scopes this core's rewriter to term/clause normalization, not the
// given-clause loop's empty-clause detection.
func (r *Rewriter) NormalizeSet(cs *clause.Set) int {
	rewritten := 0
	for _, c := range cs.Clauses() {
		if r.NormalizeClause(c) {
			rewritten++
		}
	}
	return rewritten
}
