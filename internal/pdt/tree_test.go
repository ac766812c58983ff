package pdt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// buildFixture builds a signature {f/2, g/1, a/0, b/0}, a bank, and an
// IDGen shared by the fixture's clauses.
func buildFixture(t *testing.T) (*sig.Signature, *term.Bank, *clause.IDGen, sig.FunCode, sig.FunCode, sig.FunCode, sig.FunCode) {
	t.Helper()
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	f := sg.Intern("f", 2, sig.DefaultSort)
	g := sg.Intern("g", 1, sig.DefaultSort)
	a := sg.Intern("a", 0, sig.DefaultSort)
	b := sg.Intern("b", 0, sig.DefaultSort)
	return sg, bank, ids, f, g, a, b
}

// unitEq builds a one-literal unit clause lhs = rhs and returns it plus
// an Entry describing its LHS side.
func unitEq(lhs, rhs *term.Term, ids *clause.IDGen) (*clause.Clause, *Entry) {
	lit := clause.NewEquational(lhs, rhs, true)
	c := clause.New([]*clause.EqLit{lit}, clause.RoleAxiom, ids)
	return c, &Entry{Clause: c, LitIdx: 0, Side: LHS}
}

func TestInsertAndFindGroundMatch(t *testing.T) {
	_, bank, ids, f, _, a, b := buildFixture(t)

	fab := bank.InsertTop(int(f), []*term.Term{
		bank.InsertTop(int(a), nil),
		bank.InsertTop(int(b), nil),
	})
	rhs := bank.InsertTop(int(a), nil)
	c, e := unitEq(fab, rhs, ids)
	_ = c

	tr := New()
	tr.Insert(e)

	// Cutoff 0: the query has no normal-form date yet, so every indexed
	// clause is newer than it.
	tr.SearchInit(fab, 0, false)
	got := tr.FindNextDemodulator()
	require.NotNil(t, got)
	require.Same(t, e, got)
	require.Nil(t, tr.FindNextDemodulator())
	tr.SearchExit()
}

func TestFindNextDemodulatorMatchesVariableRule(t *testing.T) {
	_, bank, ids, f, _, a, b := buildFixture(t)

	x := bank.Variables().Get(sig.DefaultSort, 0)
	fxx := bank.InsertTop(int(f), []*term.Term{x, x})
	rhs := x
	c, e := unitEq(fxx, rhs, ids)
	_ = c

	tr := New()
	tr.Insert(e)

	aTerm := bank.InsertTop(int(a), nil)
	faa := bank.InsertTop(int(f), []*term.Term{aTerm, aTerm})

	tr.SearchInit(faa, 0, false)
	got := tr.FindNextDemodulator()
	require.NotNil(t, got)
	require.Same(t, e, got)
	tr.SearchExit()

	// f(a,b) should NOT match f(x,x): the second occurrence of x must
	// bind to the same term as the first.
	bTerm := bank.InsertTop(int(b), nil)
	fab := bank.InsertTop(int(f), []*term.Term{aTerm, bTerm})
	tr.SearchInit(fab, 0, false)
	require.Nil(t, tr.FindNextDemodulator())
	tr.SearchExit()
}

func TestDeleteRemovesEntryAndPrunesNodes(t *testing.T) {
	_, bank, ids, f, _, a, b := buildFixture(t)

	fab := bank.InsertTop(int(f), []*term.Term{
		bank.InsertTop(int(a), nil),
		bank.InsertTop(int(b), nil),
	})
	rhs := bank.InsertTop(int(a), nil)
	c, e := unitEq(fab, rhs, ids)

	tr := New()
	tr.Insert(e)
	require.Equal(t, 1, tr.ClauseCount())
	nodesAfterInsert := tr.NodeCount()
	require.Greater(t, nodesAfterInsert, 0)

	removed := tr.Delete(fab, c)
	require.Equal(t, 1, removed)
	require.Equal(t, 0, tr.ClauseCount())
	require.Equal(t, 0, tr.NodeCount())

	tr.SearchInit(fab, 0, false)
	require.Nil(t, tr.FindNextDemodulator())
	tr.SearchExit()
}

func TestSizeConstraintPrunesTooSmallQuery(t *testing.T) {
	_, bank, ids, f, g, a, _ := buildFixture(t)

	aTerm := bank.InsertTop(int(a), nil)
	ga := bank.InsertTop(int(g), []*term.Term{aTerm})
	fga := bank.InsertTop(int(f), []*term.Term{ga, aTerm})
	_, e := unitEq(fga, aTerm, ids)

	tr := New()
	tr.Insert(e)

	// aTerm's weight is smaller than the indexed term's; the root's
	// size_constr should prune the search immediately.
	tr.SearchInit(aTerm, 0, false)
	require.Nil(t, tr.FindNextDemodulator())
	tr.SearchExit()
}

func TestAgeConstraintExcludesYoungerCutoff(t *testing.T) {
	_, bank, ids, f, _, a, b := buildFixture(t)

	fab := bank.InsertTop(int(f), []*term.Term{
		bank.InsertTop(int(a), nil),
		bank.InsertTop(int(b), nil),
	})
	rhs := bank.InsertTop(int(a), nil)
	c, e := unitEq(fab, rhs, ids)

	tr := New()
	tr.Insert(e)

	// The query's cutoff date must be strictly earlier than the node's
	// age_constr (here, the clause's own date) for a match to be usable —
	// a cutoff at or after the clause's date excludes it.
	tr.SearchInit(fab, c.Date, false)
	require.Nil(t, tr.FindNextDemodulator())
	tr.SearchExit()

	tr.SearchInit(fab, c.Date-1, false)
	require.NotNil(t, tr.FindNextDemodulator())
	tr.SearchExit()
}
