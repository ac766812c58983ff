package clause

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

func TestNewPredicateEncodesAsAtomEqualsTrue(t *testing.T) {
	bank := term.NewBank()
	sg := sig.New()
	p := sg.Intern("p", 0, sig.DefaultSort)
	atom := bank.InsertTop(int(p), nil)

	lit := NewPredicate(bank, atom, true)
	require.False(t, lit.IsEquational())
	require.Same(t, atom, lit.LTerm)
	require.Same(t, TrueTerm(bank), lit.RTerm)
}

func TestNewEquationalIsEquational(t *testing.T) {
	bank := term.NewBank()
	sg := sig.New()
	a := sg.Intern("a", 0, sig.DefaultSort)
	b := sg.Intern("b", 0, sig.DefaultSort)
	lit := NewEquational(bank.InsertTop(int(a), nil), bank.InsertTop(int(b), nil), true)
	require.True(t, lit.IsEquational())
}

func TestLiteralWeightIsSumOfSides(t *testing.T) {
	bank := term.NewBank()
	sg := sig.New()
	f := sg.Intern("f", 1, sig.DefaultSort)
	a := sg.Intern("a", 0, sig.DefaultSort)
	aTerm := bank.InsertTop(int(a), nil)
	fa := bank.InsertTop(int(f), []*term.Term{aTerm})
	lit := NewEquational(fa, aTerm, true)
	require.Equal(t, fa.Weight+aTerm.Weight, lit.Weight())
}

func TestOrientSwapsToCanonicallyLargerLHS(t *testing.T) {
	bank := term.NewBank()
	sg := sig.New()
	f := sg.Intern("f", 1, sig.DefaultSort)
	a := sg.Intern("a", 0, sig.DefaultSort)
	aTerm := bank.InsertTop(int(a), nil)
	fa := bank.InsertTop(int(f), []*term.Term{aTerm})

	lit := NewEquational(aTerm, fa, true) // smaller side first, deliberately
	lit.orient(structuralOrder)

	require.Same(t, fa, lit.LTerm)
	require.Same(t, aTerm, lit.RTerm)
	require.True(t, lit.HasProp(PropOriented))
}

func TestPropertyBitsetRoundTrip(t *testing.T) {
	lit := &EqLit{}
	require.False(t, lit.HasProp(PropMaximal))
	lit.SetProp(PropMaximal)
	require.True(t, lit.HasProp(PropMaximal))
	require.False(t, lit.HasProp(PropSelected))
	lit.ClearProp(PropMaximal)
	require.False(t, lit.HasProp(PropMaximal))
}
