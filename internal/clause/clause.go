package clause

import (
	"sort"

	"github.com/eprover-go/eqcore/internal/term"
)

// Role is the formula/clause role inherited from CNF clause extraction
// (spec.md §3.4, §3.5): axiom / conjecture / negated-conjecture /
// hypothesis / lemma / question. Shared between package clause and
// package formula, which sits above clause in the layering (spec.md §2).
type Role int

const (
	RoleAxiom Role = iota
	RoleConjecture
	RoleNegatedConjecture
	RoleHypothesis
	RoleLemma
	RoleQuestion
)

func (r Role) String() string {
	switch r {
	case RoleAxiom:
		return "axiom"
	case RoleConjecture:
		return "conjecture"
	case RoleNegatedConjecture:
		return "negated_conjecture"
	case RoleHypothesis:
		return "hypothesis"
	case RoleLemma:
		return "lemma"
	case RoleQuestion:
		return "question"
	default:
		return "unknown"
	}
}

// CProperty is a bitset of clause-level flags (spec.md §3.4).
type CProperty uint32

const (
	CPInitial CProperty = 1 << iota
	CPInputFormula
	CPSOS
	CPProcessed
	CPSubsumesWatch
	CPDIndexed
	CPSIndexed
	CPInputClause
)

// Clause is a multiset of equational literals plus the bookkeeping
// spec.md §3.4 names: counters, cached weight, identity, creation date,
// property bits, and (optional, for proof recording) parent references.
// The literal list is a slice rather than the original's hand-rolled
// linked list — index-based removal over a slice is the idiomatic Go
// rendering of "unlink a node and fix up the neighbours", and the
// teacher's own internal/ir.BasicBlock already holds its instruction
// sequence the same way.
type Clause struct {
	Literals  []*EqLit
	posCount  int
	negCount  int
	Weight    int
	ID        int64
	Date      int64
	NFDate    int64 // rewrite-age pruning stamp; package rewrite keeps its dates on term cells and does not read it
	props     CProperty
	Role      Role
	Parents   []int64
	set       *Set // owning set, for remove_literal's bookkeeping; nil if unattached
}

// New builds a clause from lits, computing counters and weight, and
// mints its identity/date from ids.
func New(lits []*EqLit, role Role, ids *IDGen) *Clause {
	c := &Clause{
		Literals: lits,
		Role:     role,
		ID:       ids.NextID(),
		Date:     ids.Tick(),
		props:    CPInitial,
	}
	for _, l := range lits {
		c.accumulate(l, 1)
	}
	return c
}

func (c *Clause) accumulate(l *EqLit, sign int) {
	if l.Positive {
		c.posCount += sign
	} else {
		c.negCount += sign
	}
	c.Weight += sign * l.Weight()
}

// PosCount, NegCount satisfy spec.md §3.4's pos_lit_no + neg_lit_no =
// |literals| invariant by construction.
func (c *Clause) PosCount() int { return c.posCount }
func (c *Clause) NegCount() int { return c.negCount }

func (c *Clause) HasProp(p CProperty) bool { return c.props&p == p }
func (c *Clause) SetProp(p CProperty)      { c.props |= p }
func (c *Clause) ClearProp(p CProperty)    { c.props &^= p }

// RemoveLiteral unlinks lit, decrementing counters, subtracting its
// standard weight, and updating the owning set's literal count (spec.md
// §4.3 remove_literal). Reports whether lit was found.
func (c *Clause) RemoveLiteral(lit *EqLit) bool {
	for i, l := range c.Literals {
		if l == lit {
			c.accumulate(l, -1)
			c.Literals = append(c.Literals[:i], c.Literals[i+1:]...)
			if c.set != nil {
				c.set.totalLiterals--
			}
			return true
		}
	}
	return false
}

// FlipLiteralSign toggles lit's polarity and adjusts this clause's
// counters (spec.md §4.3 flip_sign). Reports whether lit was found.
func (c *Clause) FlipLiteralSign(lit *EqLit) bool {
	for _, l := range c.Literals {
		if l == lit {
			c.accumulate(l, -1)
			l.flip()
			c.accumulate(l, 1)
			return true
		}
	}
	return false
}

// ReplaceLiteralTerms swaps lit's sides for newL/newR, keeping this
// clause's cached weight in sync the same way FlipLiteralSign does
// (subtract the literal's old contribution, mutate, re-add). Used by
// package rewrite after normalizing a literal's terms (spec.md §4.7's
// clause-level glue).
func (c *Clause) ReplaceLiteralTerms(lit *EqLit, newL, newR *term.Term) {
	c.accumulate(lit, -1)
	lit.LTerm, lit.RTerm = newL, newR
	c.accumulate(lit, 1)
}

type litKey struct {
	l, r *EqLit
}

// RemoveSuperfluousLiterals deletes literals that are syntactically
// identical duplicates, and negative equations of the form t != t (which
// are always false and so never affect the clause's truth value,
// spec.md §4.3). Returns the count removed and clears CPInitial if it
// removed anything.
type litDedupKey struct {
	l, r     *term.Term
	positive bool
}

func litIdentityKey(e *EqLit) litDedupKey {
	return litDedupKey{e.LTerm, e.RTerm, e.Positive}
}

func (c *Clause) RemoveSuperfluousLiterals() int {
	removed := 0
	seen := make(map[litDedupKey]bool, len(c.Literals))
	kept := c.Literals[:0]
	for _, l := range c.Literals {
		if !l.Positive && l.LTerm == l.RTerm {
			c.accumulate(l, -1)
			removed++
			continue
		}
		k := litIdentityKey(l)
		if seen[k] {
			c.accumulate(l, -1)
			removed++
			continue
		}
		seen[k] = true
		kept = append(kept, l)
	}
	c.Literals = kept
	if c.set != nil {
		c.set.totalLiterals -= removed
	}
	if removed > 0 {
		c.ClearProp(CPInitial)
	}
	return removed
}

// Canonize orients this clause's literals canonically and sorts them by
// literalOrder (spec.md §4.3 canonize: "orient literals, sort them by
// the canonical literal order").
func (c *Clause) Canonize() {
	for _, l := range c.Literals {
		l.orient(structuralOrder)
	}
	sort.Slice(c.Literals, func(i, j int) bool {
		return literalOrder(c.Literals[i], c.Literals[j]) < 0
	})
}
