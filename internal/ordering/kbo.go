package ordering

import (
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/term"
)

// kboBalance is the OCB's reusable accumulator for one KBO6 comparison
// (spec.md §3.6/§4.4): `wb` is the running weight balance, `posBal`/
// `negBal` count variables whose balance has gone positive/negative, and
// `vb` maps a variable's index to its signed occurrence count (LHS minus
// RHS). Reset at the start of every top-level comparison.
type kboBalance struct {
	wb     int
	posBal int
	negBal int
	maxVar int
	vb     map[int]int
}

func (b *kboBalance) reset() {
	b.wb, b.posBal, b.negBal, b.maxVar = 0, 0, 0, 0
	if b.vb == nil {
		b.vb = make(map[int]int)
	} else {
		for k := range b.vb {
			delete(b.vb, k)
		}
	}
}

// incVB processes a variable occurrence on the LHS of a comparison
// (spec.md §4.4 step 2/3/4: "increment the balance of var(s)").
func (b *kboBalance) incVB(ocb *OCB, v *term.Term) {
	idx := v.VarIndex()
	if idx > b.maxVar {
		b.maxVar = idx
	}
	b.wb += ocb.varWeight
	switch b.vb[idx] {
	case 0:
		b.posBal++
	case -1:
		b.negBal--
	}
	b.vb[idx]++
}

// decVB processes a variable occurrence on the RHS of a comparison.
func (b *kboBalance) decVB(ocb *OCB, v *term.Term) {
	idx := v.VarIndex()
	if idx > b.maxVar {
		b.maxVar = idx
	}
	b.wb -= ocb.varWeight
	switch b.vb[idx] {
	case 0:
		b.negBal++
	case 1:
		b.posBal--
	}
	b.vb[idx]--
}

// localUpdate folds one term cell t (not recursed into) onto the balance
// as either a variable occurrence or a plain weight contribution,
// depending on which side of the comparison it came from.
func (b *kboBalance) localUpdate(ocb *OCB, t *term.Term, lhs bool) {
	if lhs {
		if t.IsVar() {
			b.incVB(ocb, t)
		} else {
			b.wb += ocb.FunWeight(sig.FunCode(t.FCode))
		}
	} else {
		if t.IsVar() {
			b.decVB(ocb, t)
		} else {
			b.wb -= ocb.FunWeight(sig.FunCode(t.FCode))
		}
	}
}

// foldWeight walks every cell of t, folding each one's weight/variable
// contribution onto the balance without checking for a particular
// variable (spec.md §4.4 step 4: "accumulating balance as a side
// effect" once lexicographic comparison has stopped looking at further
// argument positions).
func (b *kboBalance) foldWeight(ocb *OCB, t *term.Term, lhs bool) {
	t = term.Deref(t, term.DerefAlways)
	b.localUpdate(ocb, t, lhs)
	for _, a := range t.Args {
		b.foldWeight(ocb, a, lhs)
	}
}

// foldWeightChecking behaves like foldWeight but also reports whether
// variable `v` occurs anywhere in t (spec.md §4.4 step 3: "checking
// whether var(s) occurs in t").
func (b *kboBalance) foldWeightChecking(ocb *OCB, t *term.Term, v *term.Term, lhs bool) bool {
	t = term.Deref(t, term.DerefAlways)
	b.localUpdate(ocb, t, lhs)
	found := t.FCode == v.FCode
	for _, a := range t.Args {
		if b.foldWeightChecking(ocb, a, v, lhs) {
			found = true
		}
	}
	return found
}

// KBO6Compare compares s and t in the linear Knuth-Bendix ordering
// (CTKBO6, spec.md §4.4), resetting the OCB's balance accumulator first.
func (ocb *OCB) KBO6Compare(s, t *term.Term) Result {
	ocb.balance.reset()
	return kbo6cmp(ocb, &ocb.balance, s, t)
}

// KBO6Greater reports whether s is strictly greater than t.
func (ocb *OCB) KBO6Greater(s, t *term.Term) bool {
	return ocb.KBO6Compare(s, t) == Greater
}

func kbo6cmp(ocb *OCB, b *kboBalance, s, t *term.Term) Result {
	s = term.Deref(s, term.DerefAlways)
	t = term.Deref(t, term.DerefAlways)

	// Pacman lemma: while both sides are unary applications of the same
	// symbol, descending into the shared child cannot change the
	// comparison's outcome, so skip straight past the matching spine.
	for s.Arity() == 1 && s.FCode == t.FCode {
		s = term.Deref(s.Args[0], term.DerefAlways)
		t = term.Deref(t.Args[0], term.DerefAlways)
	}

	switch {
	case s.IsVar() && t.IsVar():
		b.incVB(ocb, s)
		b.decVB(ocb, t)
		if s == t {
			return Equal
		}
		return Uncomparable

	case s.IsVar():
		contains := b.foldWeightChecking(ocb, t, s, false)
		b.incVB(ocb, s)
		if contains {
			return Lesser
		}
		return Uncomparable

	case t.IsVar():
		contains := b.foldWeightChecking(ocb, s, t, true)
		b.decVB(ocb, t)
		if contains {
			return Greater
		}
		return Uncomparable
	}

	var lex Result
	if s.FCode == t.FCode {
		lex = kbo6cmplex(ocb, b, s, t)
	} else {
		lex = Uncomparable
		b.foldWeight(ocb, s, true)
		b.foldWeight(ocb, t, false)
	}

	gOrN := Greater
	if b.negBal != 0 {
		gOrN = Uncomparable
	}
	lOrN := Lesser
	if b.posBal != 0 {
		lOrN = Uncomparable
	}

	switch {
	case b.wb > 0:
		return gOrN
	case b.wb < 0:
		return lOrN
	}

	switch ocb.FunCompare(sig.FunCode(s.FCode), sig.FunCode(t.FCode)) {
	case Greater:
		return gOrN
	case Lesser:
		return lOrN
	}
	if s.FCode != t.FCode {
		return Uncomparable
	}
	switch lex {
	case Equal:
		return Equal
	case Greater:
		return gOrN
	case Lesser:
		return lOrN
	default:
		return Uncomparable
	}
}

// kbo6cmplex performs the lexicographic comparison of s and t's argument
// lists (same head symbol, same arity by construction): the first
// argument pair that isn't Equal decides the result, and every remaining
// pair still has its weight/variable contribution folded onto the
// balance (spec.md §4.4 step 4).
func kbo6cmplex(ocb *OCB, b *kboBalance, s, t *term.Term) Result {
	res := Equal
	for i := range s.Args {
		if res == Equal {
			res = kbo6cmp(ocb, b, s.Args[i], t.Args[i])
		} else {
			b.foldWeight(ocb, s.Args[i], true)
			b.foldWeight(ocb, t.Args[i], false)
		}
	}
	return res
}
