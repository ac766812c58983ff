package overlap

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/ordering"
	"github.com/eprover-go/eqcore/internal/term"
)

// ComputeMaximal marks every literal of c that is maximal in c under ocb's
// term ordering, clearing clause.PropMaximal on every literal first
// (ccl_clauses.c's clause_set_prop_maximal, called before a clause is
// indexed). Lives here rather than in package clause because computing it
// needs real KBO comparisons (package ordering, spec.md §2's layer 8),
// which the clause layer (layer 5) may not depend on — the same reason
// EqLit.orient takes its comparator as a parameter instead of reaching for
// the OCB itself.
//
// A literal's rank is its larger side under ocb, then (to break ties) its
// smaller side — the standard simplification of the full literal multiset
// order to single-term comparison on the maximal side. This core only ever
// indexes demodulators from unit clauses (package pdt), where a lone
// literal is trivially maximal; the simplification only affects which
// extra literals of a non-unit clause package overlap offers up for
// paramodulation, which sits outside this core's scope (spec.md §1's
// given-clause loop Non-goal).
func ComputeMaximal(ocb *ordering.OCB, c *clause.Clause) {
	for _, l := range c.Literals {
		l.ClearProp(clause.PropMaximal)
	}
	for i, li := range c.Literals {
		maximal := true
		for j, lj := range c.Literals {
			if i == j {
				continue
			}
			if literalGreater(ocb, lj, li) {
				maximal = false
				break
			}
		}
		if maximal {
			li.SetProp(clause.PropMaximal)
		}
	}
}

func literalGreater(ocb *ordering.OCB, a, b *clause.EqLit) bool {
	aMax, aMin := litMaxMin(ocb, a)
	bMax, bMin := litMaxMin(ocb, b)
	switch ocb.KBO6Compare(aMax, bMax) {
	case ordering.Greater:
		return true
	case ordering.Lesser:
		return false
	}
	return ocb.KBO6Compare(aMin, bMin) == ordering.Greater
}

func litMaxMin(ocb *ordering.OCB, l *clause.EqLit) (max, min *term.Term) {
	if ocb.KBO6Compare(l.LTerm, l.RTerm) == ordering.Lesser {
		return l.RTerm, l.LTerm
	}
	return l.LTerm, l.RTerm
}
