package overlap

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/ordering"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
	"github.com/eprover-go/eqcore/internal/termtext"
)

// occurrencePositions projects occs to a sorted []Pos, a comparable value
// shape cmp.Diff can handle directly without needing IgnoreUnexported
// options for *clause.Clause's own unexported bookkeeping fields.
func occurrencePositions(occs []Occurrence) []Pos {
	out := make([]Pos, len(occs))
	for i, o := range occs {
		out[i] = o.Pos
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func buildFixture(t *testing.T) (*sig.Signature, *term.Bank, *clause.IDGen, *ordering.OCB, sig.FunCode, sig.FunCode, sig.FunCode) {
	t.Helper()
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	f := sg.Intern("f", 2, sig.DefaultSort)
	a := sg.Intern("a", 0, sig.DefaultSort)
	b := sg.Intern("b", 0, sig.DefaultSort)
	ocb := ordering.NewOCB(ordering.KBO6, false, sg, nil)
	ocb.SetWeight(f, 1)
	ocb.SetWeight(a, 1)
	ocb.SetWeight(b, 1)
	_, _ = ocb.AddPrecedenceTuple(f, a, ordering.Greater)
	_, _ = ocb.AddPrecedenceTuple(f, b, ordering.Greater)
	_, _ = ocb.AddPrecedenceTuple(a, b, ordering.Greater)
	return sg, bank, ids, ocb, f, a, b
}

func TestComputeMaximalUnitClauseAlwaysMaximal(t *testing.T) {
	_, bank, ids, ocb, f, a, b := buildFixture(t)
	fab := bank.InsertTop(int(f), []*term.Term{
		bank.InsertTop(int(a), nil),
		bank.InsertTop(int(b), nil),
	})
	lit := clause.NewEquational(fab, bank.InsertTop(int(a), nil), true)
	c := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)

	ComputeMaximal(ocb, c)
	require.True(t, c.Literals[0].HasProp(clause.PropMaximal))
}

func TestInsertIntoClauseIndexesEverySubterm(t *testing.T) {
	_, bank, ids, ocb, f, a, b := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})
	lit := clause.NewEquational(fab, aTerm, true)
	c := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)
	ComputeMaximal(ocb, c)

	idx := New()
	idx.InsertIntoClause(bank, c)

	require.Len(t, idx.Occurrences(fab), 1)
	// a occurs twice: as f(a,b)'s first argument and, since the literal is
	// not oriented, as its right-hand side.
	require.Len(t, idx.Occurrences(aTerm), 2)
	require.Len(t, idx.Occurrences(bTerm), 1)

	idx.DeleteIntoClause(bank, c)
	require.Empty(t, idx.Occurrences(fab))
	require.Empty(t, idx.Occurrences(aTerm))
	require.Empty(t, idx.Occurrences(bTerm))
}

func TestInsertFromClauseSkipsNegativeAndSubterms(t *testing.T) {
	_, bank, ids, ocb, f, a, b := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})

	posLit := clause.NewEquational(fab, aTerm, true)
	negLit := clause.NewEquational(bTerm, aTerm, false)
	c := clause.New([]*clause.EqLit{posLit, negLit}, clause.RoleAxiom, ids)
	ComputeMaximal(ocb, c)

	idx := New()
	idx.InsertFromClause(c)

	// Only the positive literal's top terms are from-candidates: f(a,b)
	// and, since the literal is not oriented, its right-hand side a. Its
	// subterms are not collected (unlike InsertIntoClause), and the
	// negative literal contributes nothing, so b is not indexed.
	require.Len(t, idx.Occurrences(fab), 1)
	require.Len(t, idx.Occurrences(aTerm), 1)
	require.Empty(t, idx.Occurrences(bTerm))

	idx.DeleteFromClause(c)
	require.Empty(t, idx.Occurrences(fab))
}

func TestComputeMaximalRanksByLargerSide(t *testing.T) {
	_, bank, ids, ocb, f, a, b := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})

	// f(a,b) = a dominates a = b under this precedence (f > a > b), so
	// only the first literal should end up marked maximal.
	big := clause.NewEquational(fab, aTerm, true)
	small := clause.NewEquational(aTerm, bTerm, true)
	c := clause.New([]*clause.EqLit{big, small}, clause.RoleAxiom, ids)

	ComputeMaximal(ocb, c)
	require.True(t, c.Literals[0].HasProp(clause.PropMaximal))
	require.False(t, c.Literals[1].HasProp(clause.PropMaximal))
}

// TestInsertIntoClausePositionsMatchCompactPosFormula checks the exact
// compact positions InsertIntoClause assigns a two-argument term's
// subterms: 0 for the top symbol, FunWeight() for the first argument, and
// FunWeight()+arg0.Weight for the second (position.go's accumulation
// formula), via a direct cmp.Diff against the expected position set.
func TestInsertIntoClausePositionsMatchCompactPosFormula(t *testing.T) {
	_, bank, ids, ocb, f, a, b := buildFixture(t)
	aTerm := bank.InsertTop(int(a), nil)
	bTerm := bank.InsertTop(int(b), nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})
	lit := clause.NewEquational(fab, aTerm, true)
	lit.SetProp(clause.PropOriented) // fab is already the canonically larger side
	c := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)
	ComputeMaximal(ocb, c)

	idx := New()
	idx.InsertIntoClause(bank, c)

	want := []Pos{0}
	got := occurrencePositions(idx.Occurrences(fab))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fab occurrence positions mismatch (-want +got):\n%s", diff)
	}

	wantA := []Pos{Pos(bank.FunWeight())}
	gotA := occurrencePositions(idx.Occurrences(aTerm))
	if diff := cmp.Diff(wantA, gotA); diff != "" {
		t.Fatalf("a occurrence positions mismatch (-want +got):\n%s", diff)
	}

	wantB := []Pos{Pos(bank.FunWeight() + aTerm.Weight)}
	gotB := occurrencePositions(idx.Occurrences(bTerm))
	if diff := cmp.Diff(wantB, gotB); diff != "" {
		t.Fatalf("b occurrence positions mismatch (-want +got):\n%s", diff)
	}
}

// TestComputeMaximalRanksByLargerSideFromSource is the same scenario as
// TestComputeMaximalRanksByLargerSide, built from source text via
// termtext.Builder instead of hand-assembled term/clause graphs.
func TestComputeMaximalRanksByLargerSideFromSource(t *testing.T) {
	sg, bank, ids, ocb, f, a, b := buildFixture(t)
	_, _, _ = f, a, b

	tb := termtext.NewBuilder(sg, bank, ids, sig.DefaultSort)
	c, err := tb.Clause("f(a,b) = a | a = b")
	require.NoError(t, err)

	ComputeMaximal(ocb, c)
	require.True(t, c.Literals[0].HasProp(clause.PropMaximal))
	require.False(t, c.Literals[1].HasProp(clause.PropMaximal))
}
