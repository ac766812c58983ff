package formula

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

func collectConjuncts(f TF, out []TF) []TF {
	if f.FCode == int(sig.CodeAnd) {
		out = collectConjuncts(f.Args[0], out)
		out = collectConjuncts(f.Args[1], out)
		return out
	}
	return append(out, f)
}

func collectDisjuncts(f TF, out []TF) []TF {
	if f.FCode == int(sig.CodeOr) {
		out = collectDisjuncts(f.Args[0], out)
		out = collectDisjuncts(f.Args[1], out)
		return out
	}
	return append(out, f)
}

func collectTermVarRefs(t *term.Term, out map[int]*term.Term) {
	if t.IsVar() {
		out[t.FCode] = t
		return
	}
	for _, a := range t.Args {
		collectTermVarRefs(a, out)
	}
}

// ExtractClauses walks the top-level ∧-tree of f (a fully prenexed,
// distributed formula, so any ∀ prefix comes first and the matrix is a
// conjunction of disjunctions of literals), and for each leaf collects a
// clause: literals are gathered, variables are renumbered densely via a
// fresh substitution from the variable bank, and the clause is inserted
// into target with role (spec.md §4.2 clause extraction).
func ExtractClauses(bank *term.Bank, f TF, role clause.Role, ids *clause.IDGen, target *clause.Set) {
	for f.FCode == int(sig.CodeAll) {
		f = f.Args[1]
	}
	for _, leaf := range collectConjuncts(f, nil) {
		extractOneClause(bank, leaf, role, ids, target)
	}
}

func extractOneClause(bank *term.Bank, leaf TF, role clause.Role, ids *clause.IDGen, target *clause.Set) {
	disjuncts := collectDisjuncts(leaf, nil)

	oldVars := make(map[int]*term.Term)
	for _, d := range disjuncts {
		collectTermVarRefs(d, oldVars)
	}

	vb := bank.Variables()
	vb.ResetCounter(sig.DefaultSort)
	subst := make(map[int]*term.Term, len(oldVars))
	for old, v := range oldVars {
		subst[old] = vb.NextClauseVar(vb.SortOf(v))
	}

	lits := make([]*clause.EqLit, 0, len(disjuncts))
	for _, d := range disjuncts {
		renamed := substituteVars(bank, d, subst)
		lits = append(lits, literalToEqLit(bank, renamed))
	}

	c := clause.New(lits, role, ids)
	c.SetProp(clause.CPInitial)
	target.Insert(c)
}
