package rewrite

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/ordering"
)

// orientForRewrite sets lit's PropOriented bit from a genuine KBO
// comparison under ocb, overriding whatever package clause's structural,
// precedence-free Canonize may have left it as. spec.md §3.3 defines
// orientation as "lterm > rterm under the (simplification) ordering" —
// only this OCB-grounded bit may be trusted by rewriteWithSet's oriented
// fast path and by DemodSet.Insert's single-vs-both-sides indexing
// decision; structuralOrder's FCode tie-break can disagree with KBO's
// own precedence tie-break, so a clause canonized only by package
// clause's Canonize carries no such guarantee. Swapping LTerm/RTerm here
// is always weight-neutral (a literal's weight is the sum of both
// sides), so it needs no Clause.ReplaceLiteralTerms bookkeeping call.
func orientForRewrite(ocb *ordering.OCB, lit *clause.EqLit) {
	switch {
	case ocb.KBO6Greater(lit.LTerm, lit.RTerm):
		lit.SetProp(clause.PropOriented)
	case ocb.KBO6Greater(lit.RTerm, lit.LTerm):
		lit.LTerm, lit.RTerm = lit.RTerm, lit.LTerm
		lit.SetProp(clause.PropOriented)
	default:
		lit.ClearProp(clause.PropOriented)
	}
}
