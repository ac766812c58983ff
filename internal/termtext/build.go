package termtext

import (
	"fmt"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// Builder converts parsed termtext ASTs into the prover's own term/clause
// graphs, interning every non-variable name it sees into sg at the arity it
// is first used with (sig.Intern's re-intern-by-name rule makes repeated
// uses across many Builder calls agree automatically, the same way the
// teacher's grammar package leaves symbol-table bookkeeping entirely to the
// semantic phase instead of the grammar).
type Builder struct {
	Sig   *sig.Signature
	Bank  *term.Bank
	IDs   *clause.IDGen
	Sort  sig.Sort // sort every interned symbol and variable is assigned; DefaultSort if zero value
	Role  clause.Role
	vars  map[string]int
	nextV int
}

// NewBuilder returns a Builder over sg/bank/ids, assigning every symbol and
// variable the given sort.
func NewBuilder(sg *sig.Signature, bank *term.Bank, ids *clause.IDGen, sort sig.Sort) *Builder {
	return &Builder{Sig: sg, Bank: bank, IDs: ids, Sort: sort, Role: clause.RoleAxiom}
}

func (b *Builder) resetVars() {
	b.vars = make(map[string]int)
	b.nextV = 0
}

func isVarName(name string) bool {
	return name[0] >= 'A' && name[0] <= 'Z'
}

func (b *Builder) term(src *TermSrc) *term.Term {
	if isVarName(src.Name) {
		idx, ok := b.vars[src.Name]
		if !ok {
			idx = b.nextV
			b.nextV++
			b.vars[src.Name] = idx
		}
		return b.Bank.Variables().Get(b.Sort, idx)
	}
	args := make([]*term.Term, len(src.Args))
	for i, a := range src.Args {
		args[i] = b.term(a)
	}
	code := b.Sig.Intern(src.Name, len(src.Args), b.Sort)
	return b.Bank.InsertTop(int(code), args)
}

func (b *Builder) literal(src *LiteralSrc) *clause.EqLit {
	left := b.term(src.Left)
	if src.Eq != nil {
		right := b.term(src.Eq.Right)
		positive := (src.Eq.Op == "=") != src.Negated // "!=" XOR "~" cancel out
		return clause.NewEquational(left, right, positive)
	}
	return clause.NewPredicate(b.Bank, left, !src.Negated)
}

// Term parses src as a single term, scoping any variable names to this call
// (repeated names within one call corefer; calls don't share a scope).
func (b *Builder) Term(src string) (*term.Term, error) {
	b.resetVars()
	ast, err := parseTerm(src)
	if err != nil {
		return nil, fmt.Errorf("termtext: %w", err)
	}
	return b.term(ast), nil
}

// Clause parses src as a disjunction of literals and builds a clause with
// Builder.Role, scoping variable names to this one clause (spec.md §4.2's
// own clause-local variable numbering discipline — termtext mirrors it
// rather than threading a renaming pass through fixture code).
func (b *Builder) Clause(src string) (*clause.Clause, error) {
	b.resetVars()
	ast, err := parseClause(src)
	if err != nil {
		return nil, fmt.Errorf("termtext: %w", err)
	}
	lits := make([]*clause.EqLit, len(ast.Literals))
	for i, l := range ast.Literals {
		lits[i] = b.literal(l)
	}
	return clause.New(lits, b.Role, b.IDs), nil
}
