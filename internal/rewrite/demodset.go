package rewrite

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/ordering"
	"github.com/eprover-go/eqcore/internal/pdt"
)

// DemodSet is one rewrite tier's demodulator store: a PDT over the unit
// clauses usable as rewrite rules, plus the latest date any clause was
// added (ccl_rewrite.c's ClauseSet_p demodulators[i], whose own `date`
// field rewrite_with_clause_setlist consults to skip tiers a term is
// already known normal against).
type DemodSet struct {
	Tree *pdt.Tree
	Date int64

	entries map[int64][]*pdt.Entry // clause ID -> its indexed sides, for Remove
}

// NewDemodSet creates an empty demodulator set.
func NewDemodSet() *DemodSet {
	return &DemodSet{Tree: pdt.New(), entries: make(map[int64][]*pdt.Entry)}
}

// Insert indexes c's unit equation as a demodulator: always its LTerm
// side, and also its RTerm side when the equation is not oriented (an
// unoriented equation can still supply a rule in either direction once a
// query instance is found greater than its match, see instanceIsRule —
// mirrors how unoriented equations get both ClausePos sides registered in
// the original's ClauseSetIndexedInsertClause). c must be a unit, positive
// equation; callers are expected to have checked this (spec.md §4.5/§4.7
// only ever demodulate with unit equations).
//
// Insert always recomputes the literal's PropOriented bit via ocb
// (orientForRewrite) before deciding how many sides to index: a clause
// that only ever passed through package clause's structural Canonize
// carries no guarantee that PropOriented means "lterm > rterm under
// this ordering", and trusting it uncritically here (or later, in
// rewriteWithSet's oriented fast path) can let rewriting run in the
// KBO-increasing direction.
func (d *DemodSet) Insert(ocb *ordering.OCB, c *clause.Clause) {
	lit := c.Literals[0]
	orientForRewrite(ocb, lit)
	es := []*pdt.Entry{{Clause: c, LitIdx: 0, Side: pdt.LHS}}
	if !lit.HasProp(clause.PropOriented) {
		es = append(es, &pdt.Entry{Clause: c, LitIdx: 0, Side: pdt.RHS})
	}
	for _, e := range es {
		d.Tree.Insert(e)
	}
	d.entries[c.ID] = es
	if c.Date > d.Date {
		d.Date = c.Date
	}
}

// Remove un-indexes every side of c previously added via Insert.
func (d *DemodSet) Remove(c *clause.Clause) {
	es, ok := d.entries[c.ID]
	if !ok {
		return
	}
	for _, e := range es {
		d.Tree.Delete(e.Term(), c)
	}
	delete(d.entries, c.ID)
}
