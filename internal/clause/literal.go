// Package clause implements equational literals, clauses, and clause sets
// (spec.md §3.3, §3.4, §4.3): a clause is a multiset of equational
// literals, interpreted as a disjunction under universal closure.
package clause

import (
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// Property is a bitset of mutable literal flags (spec.md §3.3).
type Property uint32

const (
	PropOriented Property = 1 << iota
	PropMaximal
	PropUsed
	// PropSelected marks a literal chosen by a literal-selection
	// strategy (ordered resolution/superposition) — out of this core's
	// scope (spec.md §1 Non-goals: the given-clause/inference loop), so
	// nothing ever sets it here; package overlap's "from" collection
	// still checks it so a future selection strategy slots in without
	// changing the index contract.
	PropSelected
)

// EqLit is an equational literal: either a genuine equation `lterm =
// rterm` or a predicate literal, represented uniformly as `atom = $true`
// (spec.md §3.3's invariant: a non-equational literal has rterm = $true).
type EqLit struct {
	LTerm, RTerm *term.Term
	Positive     bool
	equational   bool
	props        Property
}

// TrueTerm returns bank's canonical nullary `$true` cell; hash-consing
// makes every call on the same bank return the same cell.
func TrueTerm(bank *term.Bank) *term.Term {
	return bank.InsertTop(int(sig.CodeTrue), nil)
}

// NewEquational builds a genuine equality literal l = r.
func NewEquational(l, r *term.Term, positive bool) *EqLit {
	return &EqLit{LTerm: l, RTerm: r, Positive: positive, equational: true}
}

// NewPredicate builds a predicate literal atom (or its negation),
// encoded as atom = $true per spec.md §3.3.
func NewPredicate(bank *term.Bank, atom *term.Term, positive bool) *EqLit {
	return &EqLit{LTerm: atom, RTerm: TrueTerm(bank), Positive: positive}
}

// IsEquational reports whether this literal is a genuine equation rather
// than a predicate literal in atom-=-$true encoding.
func (l *EqLit) IsEquational() bool { return l.equational }

// Weight is the literal's standard weight: the sum of its two sides'
// cached term weights (spec.md §3.4's clause weight invariant is defined
// in terms of this).
func (l *EqLit) Weight() int { return l.LTerm.Weight + l.RTerm.Weight }

func (l *EqLit) HasProp(p Property) bool { return l.props&p == p }
func (l *EqLit) SetProp(p Property)      { l.props |= p }
func (l *EqLit) ClearProp(p Property)    { l.props &^= p }

// flip toggles the literal's polarity in place. It is called through
// Clause.FlipLiteralSign, which keeps the owning clause's pos/neg counters
// consistent (spec.md §4.3 flip_sign).
func (l *EqLit) flip() { l.Positive = !l.Positive }

// orient swaps LTerm/RTerm so that LTerm is the canonically larger side
// under ord, and sets PropOriented. ord need not be a simplification
// ordering (the clause layer sits below the OCB, spec.md §2) — any total
// function suffices for canonical storage. This PropOriented value is
// only a storage-order hint: before a literal is used as a demodulator,
// package rewrite's DemodSet.Insert recomputes the bit from the real KBO
// comparison (orientForRewrite), since ord's tie-break can disagree with
// KBO's own precedence tie-break.
func (l *EqLit) orient(ord func(a, b *term.Term) int) {
	if ord(l.LTerm, l.RTerm) < 0 {
		l.LTerm, l.RTerm = l.RTerm, l.LTerm
	}
	l.SetProp(PropOriented)
}

// structuralOrder is the clause layer's canonical, precedence-free term
// order: compare by cached standard weight, then by function code, then
// lexicographically on arguments. It exists purely to give canonize_set
// a deterministic, total order to sort by before any OCB exists.
func structuralOrder(a, b *term.Term) int {
	if a == b {
		return 0
	}
	if a.Weight != b.Weight {
		if a.Weight < b.Weight {
			return -1
		}
		return 1
	}
	if a.FCode != b.FCode {
		if a.FCode < b.FCode {
			return -1
		}
		return 1
	}
	for i := 0; i < a.Arity() && i < b.Arity(); i++ {
		if c := structuralOrder(a.Args[i], b.Args[i]); c != 0 {
			return c
		}
	}
	if a.Arity() != b.Arity() {
		if a.Arity() < b.Arity() {
			return -1
		}
		return 1
	}
	return 0
}

// literalOrder is the canonical order canonize_set sorts a clause's
// literals by: negative before positive, then by decreasing weight, then
// by structuralOrder of the (already-oriented) sides.
func literalOrder(a, b *EqLit) int {
	if a.Positive != b.Positive {
		if !a.Positive {
			return -1
		}
		return 1
	}
	if aw, bw := a.Weight(), b.Weight(); aw != bw {
		if aw > bw {
			return -1
		}
		return 1
	}
	if c := structuralOrder(a.LTerm, b.LTerm); c != 0 {
		return c
	}
	return structuralOrder(a.RTerm, b.RTerm)
}
