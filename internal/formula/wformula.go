package formula

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// WProperty is a bitset of wrapped-formula flags (spec.md §3.5).
type WProperty uint32

const (
	WPInitial WProperty = 1 << iota
	WPInputFormula
	WPIsRelevant
	WPIsLambdaDef
)

// WFormula wraps a term-encoded formula with the identity, derivation,
// and set-membership bookkeeping that only applies to a top-level
// formula, not to a recursive subformula (spec.md §3.5), grounded on
// `ccl_formula_wrapper.h`'s wformula_cell.
type WFormula struct {
	TF         TF
	ID         int64
	Role       clause.Role
	Source     string
	Derivation []string
	props      WProperty
	set        *Set
}

// NewWFormula wraps tf with role and an identity minted from ids.
func NewWFormula(tf TF, role clause.Role, ids *clause.IDGen) *WFormula {
	return &WFormula{TF: tf, Role: role, ID: ids.NextID(), props: WPInitial}
}

func (w *WFormula) HasProp(p WProperty) bool { return w.props&p == p }
func (w *WFormula) SetProp(p WProperty)      { w.props |= p }
func (w *WFormula) ClearProp(p WProperty)    { w.props &^= p }

// Negate returns a new WFormula with tf negated and role set to
// RoleNegatedConjecture, the "conjecture negation" operation spec.md §6
// lists as part of the formula set's external interface. Typically
// called on a WFormula whose Role is RoleConjecture.
func (w *WFormula) Negate(bank *term.Bank, ids *clause.IDGen) *WFormula {
	neg := NewWFormula(Not(w.TF, bank), clause.RoleNegatedConjecture, ids)
	neg.Source = w.Source
	neg.Derivation = append([]string{}, w.Derivation...)
	return neg
}

// Set is a wrapped-formula set (spec.md §6's "Formula set"): it
// implements term.RootSet so every formula's term-encoded content stays
// alive across a term bank GC while the set holds it.
type Set struct {
	formulas []*WFormula
	byID     map[int64]*WFormula
}

// NewSet creates an empty formula set.
func NewSet() *Set {
	return &Set{byID: make(map[int64]*WFormula)}
}

// Insert adds wf to the set.
func (s *Set) Insert(wf *WFormula) {
	wf.set = s
	s.formulas = append(s.formulas, wf)
	s.byID[wf.ID] = wf
}

// Formulas returns the set's wrapped formulas in insertion order.
func (s *Set) Formulas() []*WFormula { return s.formulas }

// Len is the number of formulas in the set.
func (s *Set) Len() int { return len(s.formulas) }

// GCRoots implements term.RootSet.
func (s *Set) GCRoots(dst []*term.Term) []*term.Term {
	for _, wf := range s.formulas {
		dst = append(dst, wf.TF)
	}
	return dst
}
