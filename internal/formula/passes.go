package formula

import (
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// Simplify applies the rewrite catalogue of spec.md §4.2 bottom-up,
// reporting whether anything changed (so the pipeline can log a
// derivation step when proof recording is enabled, per the teacher's
// OptimizationPass.Apply(program) bool convention in
// internal/ir/optimizations.go).
func Simplify(bank *term.Bank, f TF) (TF, bool) {
	switch {
	case f.FCode == int(sig.CodeNot):
		a, ca := Simplify(bank, f.Args[0])
		switch {
		case IsTrue(a):
			return False(bank), true
		case IsFalse(a):
			return True(bank), true
		}
		if !ca && a == f.Args[0] {
			return f, false
		}
		return Not(a, bank), true

	case f.FCode == int(sig.CodeAnd):
		a, ca := Simplify(bank, f.Args[0])
		b, cb := Simplify(bank, f.Args[1])
		switch {
		case a == b:
			return a, true
		case IsTrue(a):
			return b, true
		case IsTrue(b):
			return a, true
		case IsFalse(a) || IsFalse(b):
			return False(bank), true
		}
		if !ca && !cb && a == f.Args[0] && b == f.Args[1] {
			return f, false
		}
		return And(a, b, bank), true

	case f.FCode == int(sig.CodeOr):
		a, ca := Simplify(bank, f.Args[0])
		b, cb := Simplify(bank, f.Args[1])
		switch {
		case a == b:
			return a, true
		case IsFalse(a):
			return b, true
		case IsFalse(b):
			return a, true
		case IsTrue(a) || IsTrue(b):
			return True(bank), true
		}
		if !ca && !cb && a == f.Args[0] && b == f.Args[1] {
			return f, false
		}
		return Or(a, b, bank), true

	case f.FCode == int(sig.CodeImpl):
		a, ca := Simplify(bank, f.Args[0])
		b, cb := Simplify(bank, f.Args[1])
		switch {
		case IsTrue(b):
			return True(bank), true
		case IsTrue(a):
			return b, true
		case IsFalse(b):
			r, _ := Simplify(bank, Not(a, bank))
			return r, true
		case IsFalse(a):
			return True(bank), true
		}
		if !ca && !cb && a == f.Args[0] && b == f.Args[1] {
			return f, false
		}
		return Impl(a, b, bank), true

	case f.FCode == int(sig.CodeEquiv):
		a, ca := Simplify(bank, f.Args[0])
		b, cb := Simplify(bank, f.Args[1])
		switch {
		case a == b:
			return True(bank), true
		case IsFalse(b):
			r, _ := Simplify(bank, Not(a, bank))
			return r, true
		case IsFalse(a):
			r, _ := Simplify(bank, Not(b, bank))
			return r, true
		}
		if !ca && !cb && a == f.Args[0] && b == f.Args[1] {
			return f, false
		}
		return Equiv(a, b, bank), true

	case f.FCode == int(sig.CodeXor):
		// Canonical form: P ⊕ Q ≡ ¬P ↔ Q, then re-simplified (spec.md
		// §4.2: "XOR, ... are rewritten to their canonical forms and
		// re-simplified").
		a, _ := Simplify(bank, f.Args[0])
		b, _ := Simplify(bank, f.Args[1])
		r, _ := Simplify(bank, Equiv(Not(a, bank), b, bank))
		return r, true

	case isQuantifier(f.FCode):
		v := f.Args[0]
		body, cb := Simplify(bank, f.Args[1])
		if !occursFree(v, body) {
			return body, true
		}
		if !cb && body == f.Args[1] {
			return f, false
		}
		return Quant(sig.FunCode(f.FCode), v, body, bank), true

	default: // literal
		return f, false
	}
}

// NNF pushes negation inward, threading polarity explicitly through the
// recursion per spec.md §9's design note rather than mutating ambient
// state, and eliminates → / ↔ / ⊕ entirely, leaving only ¬ (applied to
// literals), ∧, ∨, ∀, ∃.
func NNF(bank *term.Bank, f TF, polarity bool) TF {
	switch {
	case f.FCode == int(sig.CodeNot):
		return NNF(bank, f.Args[0], !polarity)

	case f.FCode == int(sig.CodeAnd):
		a, b := f.Args[0], f.Args[1]
		if polarity {
			return And(NNF(bank, a, true), NNF(bank, b, true), bank)
		}
		return Or(NNF(bank, a, false), NNF(bank, b, false), bank)

	case f.FCode == int(sig.CodeOr):
		a, b := f.Args[0], f.Args[1]
		if polarity {
			return Or(NNF(bank, a, true), NNF(bank, b, true), bank)
		}
		return And(NNF(bank, a, false), NNF(bank, b, false), bank)

	case f.FCode == int(sig.CodeImpl):
		a, b := f.Args[0], f.Args[1]
		if polarity {
			return Or(NNF(bank, a, false), NNF(bank, b, true), bank)
		}
		return And(NNF(bank, a, true), NNF(bank, b, false), bank)

	case f.FCode == int(sig.CodeEquiv):
		a, b := f.Args[0], f.Args[1]
		if polarity {
			return And(Or(NNF(bank, a, false), NNF(bank, b, true), bank),
				Or(NNF(bank, b, false), NNF(bank, a, true), bank), bank)
		}
		return Or(And(NNF(bank, a, true), NNF(bank, b, false), bank),
			And(NNF(bank, a, false), NNF(bank, b, true), bank), bank)

	case f.FCode == int(sig.CodeXor):
		a, b := f.Args[0], f.Args[1]
		if polarity {
			return Or(And(NNF(bank, a, true), NNF(bank, b, false), bank),
				And(NNF(bank, a, false), NNF(bank, b, true), bank), bank)
		}
		return And(Or(NNF(bank, a, false), NNF(bank, b, true), bank),
			Or(NNF(bank, b, false), NNF(bank, a, true), bank), bank)

	case f.FCode == int(sig.CodeAll):
		v, body := f.Args[0], f.Args[1]
		if polarity {
			return All(v, NNF(bank, body, true), bank)
		}
		return Exist(v, NNF(bank, body, false), bank)

	case f.FCode == int(sig.CodeExist):
		v, body := f.Args[0], f.Args[1]
		if polarity {
			return Exist(v, NNF(bank, body, true), bank)
		}
		return All(v, NNF(bank, body, false), bank)

	default: // literal
		if polarity {
			return f
		}
		return Not(f, bank)
	}
}

// Miniscope pushes quantifiers inward past a binary connective when the
// bound variable is free in only one operand, and splits a quantifier
// across both operands when that operand/connective pairing preserves
// equivalence (∀ over ∧, ∃ over ∨). Runs after NNF, so the only binary
// connectives it ever sees are ∧ and ∨ (spec.md §4.2).
func Miniscope(bank *term.Bank, f TF) TF {
	switch {
	case f.FCode == int(sig.CodeNot):
		return Not(Miniscope(bank, f.Args[0]), bank)
	case f.FCode == int(sig.CodeAnd):
		return And(Miniscope(bank, f.Args[0]), Miniscope(bank, f.Args[1]), bank)
	case f.FCode == int(sig.CodeOr):
		return Or(Miniscope(bank, f.Args[0]), Miniscope(bank, f.Args[1]), bank)
	case isQuantifier(f.FCode):
		v := f.Args[0]
		body := Miniscope(bank, f.Args[1])
		return pushQuantifier(bank, sig.FunCode(f.FCode), v, body)
	default:
		return f
	}
}

func pushQuantifier(bank *term.Bank, q sig.FunCode, v, body TF) TF {
	if body.FCode == int(sig.CodeAnd) || body.FCode == int(sig.CodeOr) {
		a, b := body.Args[0], body.Args[1]
		af, bf := occursFree(v, a), occursFree(v, b)
		matches := (q == sig.CodeAll && body.FCode == int(sig.CodeAnd)) ||
			(q == sig.CodeExist && body.FCode == int(sig.CodeOr))
		switch {
		case af && bf && matches:
			return binOp(body.FCode, pushQuantifier(bank, q, v, a), pushQuantifier(bank, q, v, b), bank)
		case af && !bf:
			return binOp(body.FCode, pushQuantifier(bank, q, v, a), b, bank)
		case !af && bf:
			return binOp(body.FCode, a, pushQuantifier(bank, q, v, b), bank)
		}
	}
	return Quant(q, v, body, bank)
}

// Rename replaces every bound variable in f with a freshly issued one,
// after setting the variable bank's counter above the maximum variable
// index already present in f (spec.md §4.2's stated precondition), so
// every quantifier binds a distinct variable across the whole formula.
func Rename(bank *term.Bank, f TF) TF {
	vb := bank.Variables()
	max := -1
	collectMaxVarIndex(vb, f, &max)
	vb.SetCounter(sig.DefaultSort, max+1)
	return renameRec(bank, f, map[int]*term.Term{})
}

func collectMaxVarIndex(vb *term.VariableBank, f TF, max *int) {
	switch {
	case isQuantifier(f.FCode):
		if idx := vb.IndexOf(f.Args[0]); idx > *max {
			*max = idx
		}
		collectMaxVarIndex(vb, f.Args[1], max)
	case IsLiteral(f):
		collectMaxTermVarIndex(vb, f, max)
	default:
		for _, a := range f.Args {
			collectMaxVarIndex(vb, a, max)
		}
	}
}

func collectMaxTermVarIndex(vb *term.VariableBank, t *term.Term, max *int) {
	if t.IsVar() {
		if idx := vb.IndexOf(t); idx > *max {
			*max = idx
		}
		return
	}
	for _, a := range t.Args {
		collectMaxTermVarIndex(vb, a, max)
	}
}

func renameRec(bank *term.Bank, f TF, subst map[int]*term.Term) TF {
	switch {
	case isQuantifier(f.FCode):
		v := f.Args[0]
		nv := bank.Variables().FreshVar(sig.DefaultSort)
		inner := make(map[int]*term.Term, len(subst)+1)
		for k, val := range subst {
			inner[k] = val
		}
		inner[v.FCode] = nv
		return Quant(sig.FunCode(f.FCode), nv, renameRec(bank, f.Args[1], inner), bank)
	case IsLiteral(f):
		return substituteVars(bank, f, subst)
	default:
		args := make([]TF, len(f.Args))
		changed := false
		for i, a := range f.Args {
			args[i] = renameRec(bank, a, subst)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return f
		}
		return bank.InsertTop(f.FCode, args)
	}
}

func substituteVars(bank *term.Bank, t *term.Term, subst map[int]*term.Term) *term.Term {
	if t.IsVar() {
		if nv, ok := subst[t.FCode]; ok {
			return nv
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]*term.Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		args[i] = substituteVars(bank, a, subst)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return bank.InsertTop(t.FCode, args)
}

// Skolemize replaces every remaining existential with a Skolem term
// applied to the enclosing universals (spec.md §4.2). Must run after
// Rename so every bound variable is distinct.
func Skolemize(bank *term.Bank, sg *sig.Signature, f TF) TF {
	return skolemRec(bank, sg, f, nil)
}

func skolemRec(bank *term.Bank, sg *sig.Signature, f TF, universals []*term.Term) TF {
	switch {
	case f.FCode == int(sig.CodeAll):
		v, body := f.Args[0], f.Args[1]
		return All(v, skolemRec(bank, sg, body, append(universals, v)), bank)

	case f.FCode == int(sig.CodeExist):
		v, body := f.Args[0], f.Args[1]
		code, _ := sg.InternSkolem(len(universals))
		args := make([]*term.Term, len(universals))
		copy(args, universals)
		skolemTerm := bank.InsertTop(int(code), args)
		v.Binding = skolemTerm
		result := skolemRec(bank, sg, body, universals)
		v.Binding = nil
		return result

	case f.FCode == int(sig.CodeNot):
		return Not(skolemRec(bank, sg, f.Args[0], universals), bank)
	case f.FCode == int(sig.CodeAnd):
		return And(skolemRec(bank, sg, f.Args[0], universals), skolemRec(bank, sg, f.Args[1], universals), bank)
	case f.FCode == int(sig.CodeOr):
		return Or(skolemRec(bank, sg, f.Args[0], universals), skolemRec(bank, sg, f.Args[1], universals), bank)

	default: // literal: collapse any variable just bound to its Skolem term
		return bank.InsertInstantiated(f)
	}
}

// Prenex lifts every remaining ∀ to the front of the formula. Sound
// unconditionally (not just when the bound variable happens to be free
// in only one operand) because Rename already gave every quantifier a
// globally distinct variable, so the side-condition spec.md §4.2
// mentions always holds by construction once renaming has run.
func Prenex(bank *term.Bank, f TF) TF {
	prefix, matrix := prenexRec(bank, f)
	result := matrix
	for i := len(prefix) - 1; i >= 0; i-- {
		result = All(prefix[i], result, bank)
	}
	return result
}

func prenexRec(bank *term.Bank, f TF) ([]TF, TF) {
	switch {
	case f.FCode == int(sig.CodeAll):
		v := f.Args[0]
		p, m := prenexRec(bank, f.Args[1])
		return append([]TF{v}, p...), m
	case f.FCode == int(sig.CodeAnd) || f.FCode == int(sig.CodeOr):
		pa, ma := prenexRec(bank, f.Args[0])
		pb, mb := prenexRec(bank, f.Args[1])
		return append(pa, pb...), binOp(f.FCode, ma, mb, bank)
	default:
		return nil, f
	}
}

// Distribute distributes ∨ over ∧ until the matrix is conjunctive
// (spec.md §4.2). Runs on the quantifier-free matrix (the CNF driver
// strips any ∀ prefix before calling this, and rewraps it afterward).
func Distribute(bank *term.Bank, f TF) TF {
	switch {
	case f.FCode == int(sig.CodeAnd):
		return And(Distribute(bank, f.Args[0]), Distribute(bank, f.Args[1]), bank)
	case f.FCode == int(sig.CodeOr):
		a, b := Distribute(bank, f.Args[0]), Distribute(bank, f.Args[1])
		if a.FCode == int(sig.CodeAnd) {
			return And(Distribute(bank, Or(a.Args[0], b, bank)), Distribute(bank, Or(a.Args[1], b, bank)), bank)
		}
		if b.FCode == int(sig.CodeAnd) {
			return And(Distribute(bank, Or(a, b.Args[0], bank)), Distribute(bank, Or(a, b.Args[1], bank)), bank)
		}
		return Or(a, b, bank)
	default:
		return f
	}
}
