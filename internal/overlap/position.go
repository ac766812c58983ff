package overlap

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// Pos is a compact position: an integer offset into a clause's flattened
// left-to-right term sequence, from which the occupying subterm can be
// recovered without retaining the traversal path (spec.md §4.6,
// ccl_overlap_index.h's CompactPos). Position 0 is always the first
// literal's first side's top symbol.
type Pos int64

// occurrence is one (term, position) pair discovered while walking a
// clause (term_collect_into_terms_pos's PStack_p of alternating term/pos
// entries, flattened into a slice of pairs).
type occurrence struct {
	term *term.Term
	pos  Pos
}

// collectSubterms appends every non-variable subterm of t (t included) to
// out, positioned starting at base and advancing by bank's function weight
// per symbol and each argument's standard weight in turn
// (term_collect_into_terms_pos).
func collectSubterms(bank *term.Bank, t *term.Term, base Pos, out *[]occurrence) {
	if t.IsVar() {
		return
	}
	*out = append(*out, occurrence{t, base})
	p := base + Pos(bank.FunWeight())
	for _, a := range t.Args {
		collectSubterms(bank, a, p, out)
		p += Pos(a.Weight)
	}
}

// literalTermPositions returns the positions, within a clause starting at
// base, of the literal's sides: just lterm if oriented, both sides if not
// (eqn_collect_into_terms_pos / eqn_collect_from_terms_pos's position
// half, shared by both the into- and from- collectors).
func literalTermPositions(l *clause.EqLit, base Pos) (lhsPos Pos, rhsPos Pos, hasRHS bool) {
	lhsPos = base
	if !l.HasProp(clause.PropOriented) {
		return lhsPos, base + Pos(l.LTerm.Weight), true
	}
	return lhsPos, 0, false
}
