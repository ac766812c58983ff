package termtext

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

func TestBuilderTermSharesStructurallyIdenticalSubterms(t *testing.T) {
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	b := NewBuilder(sg, bank, ids, sig.DefaultSort)

	t1, err := b.Term("f(a,b)")
	require.NoError(t, err)
	t2, err := b.Term("f(a,b)")
	require.NoError(t, err)
	require.Same(t, t1, t2, "bank hash-consing must share identical terms across calls")
}

func TestBuilderTermVariable(t *testing.T) {
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	b := NewBuilder(sg, bank, ids, sig.DefaultSort)

	x, err := b.Term("f(X,X)")
	require.NoError(t, err)
	require.True(t, x.Args[0].IsVar())
	require.Same(t, x.Args[0], x.Args[1], "repeated variable name within one call must corefer")
}

func TestBuilderClausePolarity(t *testing.T) {
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	b := NewBuilder(sg, bank, ids, sig.DefaultSort)

	c, err := b.Clause("f(a,b) = a | ~p(X) | a != b")
	require.NoError(t, err)
	require.Len(t, c.Literals, 3)
	require.True(t, c.Literals[0].Positive)
	require.False(t, c.Literals[1].Positive)
	require.False(t, c.Literals[2].Positive)
}

func TestBuilderClauseNegatedDisequality(t *testing.T) {
	sg := sig.New()
	bank := term.NewBank()
	ids := clause.NewIDGen()
	b := NewBuilder(sg, bank, ids, sig.DefaultSort)

	c, err := b.Clause("~ a != b")
	require.NoError(t, err)
	require.True(t, c.Literals[0].Positive, "~ and != must cancel out to a positive equation")
}
