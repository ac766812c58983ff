// Package formula implements first-order formulas, the CNF pipeline, and
// clause extraction (spec.md §3.5, §4.2). The "term-encoded form is
// canonical" choice spec.md §3.5 calls out is realized literally: a
// formula is a *term.Term built from the logical function codes package
// sig pre-assigns (CodeNot, CodeAnd, ... CodeAll/CodeExist with (bound
// var, body) as their two arguments), so every pass reuses the term
// bank's own hash-consing to share identical subformulas for free.
package formula

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// TF is the term-encoded formula representation: an ordinary bank term
// whose head is either a logical operator code or, at a leaf, an atom
// (predicate application or an `$equal(l, r)` application).
type TF = *term.Term

func isQuantifier(code int) bool {
	return code == int(sig.CodeAll) || code == int(sig.CodeExist)
}

func isBinary(code int) bool {
	switch sig.FunCode(code) {
	case sig.CodeAnd, sig.CodeOr, sig.CodeImpl, sig.CodeEquiv, sig.CodeXor:
		return true
	}
	return false
}

// IsLiteral reports whether f is a leaf (an atom or equality
// application), as opposed to a logical connective or quantifier.
func IsLiteral(f TF) bool {
	return f.FCode != int(sig.CodeNot) && !isBinary(f.FCode) && !isQuantifier(f.FCode)
}

// True returns bank's canonical $true leaf.
func True(bank *term.Bank) TF { return bank.InsertTop(int(sig.CodeTrue), nil) }

// IsTrue reports whether f is exactly $true.
func IsTrue(f TF) bool { return f.FCode == int(sig.CodeTrue) }

// False is encoded as ¬$true, since the signature pre-assigns no
// separate constant for it (spec.md §3.1 fixes only the ten listed
// codes); this keeps the operator set exactly as specified instead of
// inventing a new one.
func False(bank *term.Bank) TF { return Not(True(bank), bank) }

// IsFalse reports whether f is the canonical False encoding, recognized
// structurally so it is also true of a False built via any other bank.
func IsFalse(f TF) bool { return f.FCode == int(sig.CodeNot) && IsTrue(f.Args[0]) }

func Not(a TF, bank *term.Bank) TF { return bank.InsertTop(int(sig.CodeNot), []TF{a}) }
func And(a, b TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeAnd), []TF{a, b})
}
func Or(a, b TF, bank *term.Bank) TF { return bank.InsertTop(int(sig.CodeOr), []TF{a, b}) }
func Impl(a, b TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeImpl), []TF{a, b})
}
func Equiv(a, b TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeEquiv), []TF{a, b})
}
func Xor(a, b TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeXor), []TF{a, b})
}
func All(v, body TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeAll), []TF{v, body})
}
func Exist(v, body TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeExist), []TF{v, body})
}

// Quant rebuilds a quantifier of the same kind as q (All or Exist) over
// (v, body); q need only carry its FCode, as produced by a traversal
// that peeled v/body off an existing quantifier node.
func Quant(q sig.FunCode, v, body TF, bank *term.Bank) TF {
	return bank.InsertTop(int(q), []TF{v, body})
}

func binOp(code int, a, b TF, bank *term.Bank) TF {
	return bank.InsertTop(code, []TF{a, b})
}

// Equal builds the equational atom `l = r`.
func Equal(l, r TF, bank *term.Bank) TF {
	return bank.InsertTop(int(sig.CodeEqual), []TF{l, r})
}

// freeVars computes f's free variables, respecting quantifier shadowing
// by construction: each quantifier node deletes exactly its own bound
// variable's code from its subtree's free-variable set before returning
// it to the caller, which is the correct scoping fixed point regardless
// of whether an inner and outer binder happen to share a variable code
// (spec.md §3.5's shadowing allowance before the rename pass runs).
func freeVars(f TF) map[int]bool {
	out := make(map[int]bool)
	collectFree(f, out)
	return out
}

func collectFree(f TF, out map[int]bool) {
	switch {
	case isQuantifier(f.FCode):
		v := f.Args[0]
		inner := make(map[int]bool)
		collectFree(f.Args[1], inner)
		delete(inner, v.FCode)
		for k := range inner {
			out[k] = true
		}
	case IsLiteral(f):
		collectTermVars(f, out)
	default: // Not / binary connective
		for _, a := range f.Args {
			collectFree(a, out)
		}
	}
}

func collectTermVars(t *term.Term, out map[int]bool) {
	if t.IsVar() {
		out[t.FCode] = true
		return
	}
	for _, a := range t.Args {
		collectTermVars(a, out)
	}
}

func occursFree(v, f TF) bool { return freeVars(f)[v.FCode] }

// literalToEqLit converts a (possibly negated) leaf into a clause
// literal, peeling off any chain of ¬ (NNF guarantees at most one, but
// peeling a chain costs nothing and makes the helper robust to direct
// callers that haven't run NNF).
func literalToEqLit(bank *term.Bank, f TF) *clause.EqLit {
	positive := true
	for f.FCode == int(sig.CodeNot) {
		positive = !positive
		f = f.Args[0]
	}
	if f.FCode == int(sig.CodeEqual) {
		return clause.NewEquational(f.Args[0], f.Args[1], positive)
	}
	return clause.NewPredicate(bank, f, positive)
}
