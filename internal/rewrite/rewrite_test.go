package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/ordering"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/stats"
	"github.com/eprover-go/eqcore/internal/term"
)

// buildFixture builds a signature {f/2, g/1, a/0, b/0, c/0} ordered
// f > g > a > b > c, a bank, and an IDGen. The constants are ordered
// a > b > c (rather than alphabetically) so that ruleSet's chain
// a = b, b = c is already KBO-oriented left-to-right: DemodSet.Insert
// recomputes PropOriented from the real ordering (orientForRewrite), so
// a fixture whose OCB disagreed with the intended rewrite direction
// would have its rules silently reoriented out from under the tests.
func buildFixture(t *testing.T) (*sig.Signature, *term.Bank, *clause.IDGen, *ordering.OCB, sig.FunCode, sig.FunCode, sig.FunCode, sig.FunCode, sig.FunCode) {
	t.Helper()
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	f := sg.Intern("f", 2, sig.DefaultSort)
	g := sg.Intern("g", 1, sig.DefaultSort)
	a := sg.Intern("a", 0, sig.DefaultSort)
	b := sg.Intern("b", 0, sig.DefaultSort)
	c := sg.Intern("c", 0, sig.DefaultSort)
	ocb := ordering.NewOCB(ordering.KBO6, false, sg, nil)
	for _, fc := range []sig.FunCode{f, g, a, b, c} {
		ocb.SetWeight(fc, 1)
	}
	_, _ = ocb.AddPrecedenceTuple(f, g, ordering.Greater)
	_, _ = ocb.AddPrecedenceTuple(g, a, ordering.Greater)
	_, _ = ocb.AddPrecedenceTuple(a, b, ordering.Greater)
	_, _ = ocb.AddPrecedenceTuple(b, c, ordering.Greater)
	return sg, bank, ids, ocb, f, g, a, b, c
}

// ruleSet builds a single-tier demodulator set out of unit equations
// lhs = rhs, for the given clause role. Each pair's lhs must be the
// genuinely KBO-greater side under ocb: DemodSet.Insert (via
// orientForRewrite) recomputes PropOriented itself and will swap the
// sides right back if the pair is given backwards.
func ruleSet(ocb *ordering.OCB, ids *clause.IDGen, pairs [][2]*term.Term) *DemodSet {
	ds := NewDemodSet()
	for _, p := range pairs {
		lit := clause.NewEquational(p[0], p[1], true)
		cl := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)
		ds.Insert(ocb, cl)
	}
	return ds
}

func TestNormalizeTermAppliesDemodulator(t *testing.T) {
	_, bank, ids, ocb, f, _, a, b, _ := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	ds := ruleSet(ocb, ids, [][2]*term.Term{{aTerm, bTerm}})

	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, false, nil, nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, aTerm})

	got := r.NormalizeTerm(fab)
	want := bank.InsertTop(int(f), []*term.Term{bTerm, bTerm})
	require.Same(t, want, got)
}

func TestNormalizeTermIdempotent(t *testing.T) {
	_, bank, ids, ocb, f, g, a, b, c := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	cTerm := bank.InsertTop(int(c), nil)
	ds := ruleSet(ocb, ids, [][2]*term.Term{{aTerm, bTerm}, {bTerm, cTerm}})

	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, false, nil, nil)
	ga := bank.InsertTop(int(g), []*term.Term{aTerm})
	fAGA := bank.InsertTop(int(f), []*term.Term{aTerm, ga})

	first := r.NormalizeTerm(fAGA)
	want := bank.InsertTop(int(f), []*term.Term{cTerm, bank.InsertTop(int(g), []*term.Term{cTerm})})
	require.Same(t, want, first)

	second := r.NormalizeTerm(first)
	require.Same(t, first, second, "renormalizing an already-normal term must be a no-op")
}

func TestNormalizeTermRejectsUnboundRHSVariable(t *testing.T) {
	_, bank, ids, ocb, f, _, a, b, _ := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)

	counters := &stats.Counters{}
	y := bank.Variables().FreshVar(sig.DefaultSort)
	// Unrelated unoriented rule a = Y (Y free on RHS only) should never
	// fire as a rewrite: Y is never bound by matching "a".
	unorientedLit := clause.NewEquational(aTerm, y, true)
	cl := clause.New([]*clause.EqLit{unorientedLit}, clause.RoleAxiom, ids)
	ds := NewDemodSet()
	ds.Insert(ocb, cl)

	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, false, counters, nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})
	got := r.NormalizeTerm(fab)

	require.Same(t, fab, got, "unbound RHS variable must block the rewrite")
	require.Equal(t, int64(1), counters.RewriteUnboundVarFails.Load())
}

func TestNormalizeTermStrongRHSInstCompletesUnboundVariable(t *testing.T) {
	_, bank, ids, ocb, f, _, a, b, _ := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	y := bank.Variables().FreshVar(sig.DefaultSort)

	unorientedLit := clause.NewEquational(aTerm, y, true)
	cl := clause.New([]*clause.EqLit{unorientedLit}, clause.RoleAxiom, ids)
	ds := NewDemodSet()
	ds.Insert(ocb, cl)

	counters := &stats.Counters{}
	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, true, counters, nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})

	got := r.NormalizeTerm(fab)
	want := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})
	require.Same(t, want, got)
	_ = want
}

func TestNormalizeClauseUpdatesWeightAndClearsInitial(t *testing.T) {
	_, bank, ids, ocb, f, _, a, b, _ := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	ds := ruleSet(ocb, ids, [][2]*term.Term{{aTerm, bTerm}})

	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, false, nil, nil)

	fax := bank.InsertTop(int(f), []*term.Term{aTerm, aTerm})
	lit := clause.NewEquational(fax, aTerm, true)
	c := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)
	require.True(t, c.HasProp(clause.CPInitial))
	before := c.Weight

	changed := r.NormalizeClause(c)
	require.True(t, changed)
	require.False(t, c.HasProp(clause.CPInitial))
	// a and b have the same standard weight, so the recomputed weight of
	// f(b,b) = b equals that of f(a,a) = a.
	require.Equal(t, before, c.Weight)

	// idempotent at the clause level too.
	require.False(t, r.NormalizeClause(c))
}

func TestNormalizeSetCountsRewrittenClauses(t *testing.T) {
	_, bank, ids, ocb, f, _, a, b, _ := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	ds := ruleSet(ocb, ids, [][2]*term.Term{{aTerm, bTerm}})

	r := NewRewriter(ocb, bank, []*DemodSet{ds}, RuleOnly, false, false, nil, nil)

	cs := clause.NewSet()
	rewritable := clause.New([]*clause.EqLit{
		clause.NewEquational(bank.InsertTop(int(f), []*term.Term{aTerm, aTerm}), aTerm, true),
	}, clause.RoleAxiom, ids)
	already := clause.New([]*clause.EqLit{
		clause.NewEquational(bTerm, bTerm, true),
	}, clause.RoleAxiom, ids)
	cs.Insert(rewritable)
	cs.Insert(already)

	n := r.NormalizeSet(cs)
	require.Equal(t, 1, n)
}
