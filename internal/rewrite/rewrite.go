package rewrite

import (
	"go.uber.org/zap"

	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/obs"
	"github.com/eprover-go/eqcore/internal/ordering"
	"github.com/eprover-go/eqcore/internal/pdt"
	"github.com/eprover-go/eqcore/internal/sig"
	"github.com/eprover-go/eqcore/internal/stats"
	"github.com/eprover-go/eqcore/internal/term"
)

// Rewriter holds everything one leftmost-innermost normalization pass
// needs: the OCB, the term bank, the demodulator tiers (indexed 0..Level-1,
// rules before equations), and the rewrite-statistics counters (ccl_rewrite.c's
// RWDescCell).
type Rewriter struct {
	ocb    *ordering.OCB
	bank   *term.Bank
	demods []*DemodSet
	level  Level

	preferGeneral bool
	strongRHSInst bool

	demodDate int64

	sosRewritten bool

	counters *stats.Counters
	log      *zap.Logger
}

// NewRewriter builds a Rewriter over demods (one DemodSet per tier, tiers
// beyond level are ignored) at the given level. strongRHSInst enables
// RewriteStrongRHSInst: an unbound RHS variable is completed by binding
// it to its sort's OCB-designated minimum constant instead of rejecting
// the match outright.
func NewRewriter(ocb *ordering.OCB, bank *term.Bank, demods []*DemodSet, level Level, preferGeneral, strongRHSInst bool, counters *stats.Counters, log *zap.Logger) *Rewriter {
	if log == nil {
		log = obs.Nop()
	}
	if counters == nil {
		counters = &stats.Counters{}
	}
	r := &Rewriter{
		ocb: ocb, bank: bank, demods: demods, level: level,
		preferGeneral: preferGeneral, strongRHSInst: strongRHSInst,
		counters: counters, log: log,
	}
	for i := 0; i < int(level) && i < len(demods); i++ {
		if demods[i].Date > r.demodDate {
			r.demodDate = demods[i].Date
		}
	}
	return r
}

// followChain follows t's top-rewrite-link chain to its current
// representative, noting set-of-support provenance along the way
// (term_follow_top_RW_chain).
func (r *Rewriter) followChain(t *term.Term) *term.Term {
	for t.HasProp(term.PropTopRewritten) {
		rd := t.RewriteDataPtr()
		if rd.FromSOS {
			r.sosRewritten = true
		}
		t = rd.RewrittenTo
	}
	return t
}

// NormalizeTerm computes term's leftmost-innermost normal form
// (TermComputeLINormalform / term_li_normalform).
func (r *Rewriter) NormalizeTerm(t *term.Term) *term.Term {
	if r.level == NoRewrite {
		return t
	}
	t = r.followChain(t)
	if !t.HasProp(term.PropRewritten) && nfDate(t, r.level) >= r.demodDate {
		return t
	}
	if t.IsVar() {
		return t
	}

	modified := true
	for modified {
		modified = false
		var newArgs []*term.Term
		if len(t.Args) > 0 {
			newArgs = make([]*term.Term, len(t.Args))
			for i, a := range t.Args {
				newArgs[i] = r.NormalizeTerm(a)
				if newArgs[i] != a {
					modified = true
				}
			}
		}
		if modified {
			newTop := r.bank.InsertTop(t.FCode, newArgs)
			rd := t.RewriteDataPtr()
			rd.RewrittenTo = newTop
			rd.FromSOS = false
			t.SetProp(term.PropRewritten)
			t = newTop
		}

		if !t.IsVar() {
			var next *term.Term
			if t.HasProp(term.PropTopRewritten) {
				next = r.followChain(t)
			} else {
				r.rewriteTop(t)
				next = r.followChain(t)
			}
			if next != t {
				modified = true
			}
			t = next
		}
	}

	if !t.HasProp(term.PropRewritten) {
		setNFDate(t, r.level, r.demodDate)
	}
	return t
}

// rewriteTop tries every demodulator tier in order and, on the first
// accepted match, records a top-rewrite link from t to the replacement
// (rewrite_with_clause_setlist / rewrite_with_clause_set /
// indexed_find_demodulator, collapsed into one pass since accepting a
// match always stops the search).
func (r *Rewriter) rewriteTop(t *term.Term) {
	for i := 0; i < int(r.level) && i < len(r.demods); i++ {
		ds := r.demods[i]
		date := nfDate(t, r.level)
		if date >= ds.Date {
			continue
		}
		if r.rewriteWithSet(t, date, ds) {
			return
		}
	}
}

// rewriteWithSet searches ds for a demodulator matching t, accepting the
// first entry whose instance is a genuine rewrite rule. On acceptance it
// instantiates the replacement, links t to it, and returns true.
func (r *Rewriter) rewriteWithSet(t *term.Term, date int64, ds *DemodSet) bool {
	r.counters.RewriteAttempts.Add(1)
	ds.Tree.SearchInit(t, date, r.preferGeneral)
	defer ds.Tree.SearchExit()

	for {
		e := ds.Tree.FindNextDemodulator()
		if e == nil {
			return false
		}
		lit := e.Clause.Literals[e.LitIdx]
		oriented := lit.HasProp(clause.PropOriented)
		if e.Side == pdt.LHS && oriented {
			r.accept(t, e)
			return true
		}
		if r.instanceIsRule(e.Term(), e.OtherSide()) {
			r.accept(t, e)
			return true
		}
	}
}

func (r *Rewriter) accept(t *term.Term, e *pdt.Entry) {
	r.counters.RewriteSuccesses.Add(1)
	repl := r.instantiate(e.OtherSide())
	rd := t.RewriteDataPtr()
	rd.RewrittenTo = repl
	rd.FromSOS = e.Clause.HasProp(clause.CPSOS)
	t.SetProp(term.PropTopRewritten)
	t.SetProp(term.PropRewritten)
}

// instanceIsRule reports whether the matched instance lside -> rside is a
// genuine rewrite rule: rside has no variable left unbound by the match
// (unless strongRHSInst completes it to the sort's minimum constant), and
// the instantiated lside is strictly greater than the instantiated rside
// under the OCB (instance_is_rule). The original's SubstIsRenaming
// short-circuit is a pure performance optimization (its own comment calls
// it "Save comparisons") — a renamed copy of an unoriented equation's two
// sides is uncomparable by the clause's own precondition, so KBO6Compare
// already rejects it; omitting the check changes no outcome.
func (r *Rewriter) instanceIsRule(lside, rside *term.Term) bool {
	if r.strongRHSInst {
		r.completeBindings(rside)
	} else if hasUnboundVar(rside) {
		r.counters.RewriteUnboundVarFails.Add(1)
		return false
	}
	return r.ocb.KBO6Greater(lside, rside)
}

// completeBindings binds every still-unbound variable in t to its sort's
// OCB-designated minimum constant (RewriteStrongRHSInst /
// SubstCompleteInstance). Bindings made here live exactly as long as the
// enclosing search's — they're undone by pdt.Tree.SearchExit along with
// every other binding made during the match.
func (r *Rewriter) completeBindings(t *term.Term) {
	t = term.Deref(t, term.DerefAlways)
	if t.IsVar() {
		sort := r.bank.Variables().SortOf(t)
		min := r.ocb.MinConstant(sort, r.constantsOfSort(sort))
		t.Binding = r.bank.InsertTop(int(min), nil)
		return
	}
	for _, a := range t.Args {
		r.completeBindings(a)
	}
}

func (r *Rewriter) constantsOfSort(sort sig.Sort) []sig.FunCode {
	sg := r.ocb.Signature()
	var out []sig.FunCode
	for c := sig.FunCode(1); c <= sg.MaxCode(); c++ {
		if sg.Arity(c) == 0 && sg.SortOf(c) == sort {
			out = append(out, c)
		}
	}
	return out
}

// hasUnboundVar reports whether t (after following bindings) still
// contains a variable with no binding.
func hasUnboundVar(t *term.Term) bool {
	t = term.Deref(t, term.DerefAlways)
	if t.IsVar() {
		return true
	}
	for _, a := range t.Args {
		if hasUnboundVar(a) {
			return true
		}
	}
	return false
}

// instantiate rebuilds t with every bound variable replaced by its
// binding, re-inserting the result into the bank (TBInsertInstantiated).
func (r *Rewriter) instantiate(t *term.Term) *term.Term {
	t = term.Deref(t, term.DerefAlways)
	if len(t.Args) == 0 {
		return t
	}
	args := make([]*term.Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		args[i] = r.instantiate(a)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return r.bank.InsertTop(t.FCode, args)
}
