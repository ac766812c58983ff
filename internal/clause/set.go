package clause

import (
	"sort"

	"github.com/eprover-go/eqcore/internal/term"
)

// Set is a clause set: construction, insertion/extraction, and iteration
// in insertion order (spec.md §6's ClauseSet external interface). It
// implements term.RootSet so a term bank can be told to keep every term
// reachable from the set's current clauses alive across a GC (spec.md
// §4.1, §5).
type Set struct {
	clauses       []*Clause
	byID          map[int64]*Clause
	totalLiterals int
}

// NewSet creates an empty clause set.
func NewSet() *Set {
	return &Set{byID: make(map[int64]*Clause)}
}

// Insert adds c to the set, attaching it as c's owner.
func (s *Set) Insert(c *Clause) {
	c.set = s
	s.clauses = append(s.clauses, c)
	s.byID[c.ID] = c
	s.totalLiterals += len(c.Literals)
}

// Extract removes c from the set (spec.md §3.4 "destroyed either on
// extraction-and-free or on set destruction"); c.set is cleared so it is
// safe to keep using c standalone afterward.
func (s *Set) Extract(c *Clause) bool {
	for i, cl := range s.clauses {
		if cl == c {
			s.clauses = append(s.clauses[:i], s.clauses[i+1:]...)
			delete(s.byID, c.ID)
			s.totalLiterals -= len(c.Literals)
			c.set = nil
			return true
		}
	}
	return false
}

// Clauses returns the set's clauses in link-list (insertion) order. The
// returned slice is the set's own backing array and must not be mutated
// by the caller.
func (s *Set) Clauses() []*Clause { return s.clauses }

// ByID looks up a clause by its numeric identity.
func (s *Set) ByID(id int64) (*Clause, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Len is the number of clauses currently in the set.
func (s *Set) Len() int { return len(s.clauses) }

// TotalLiterals is the sum of literal counts across all member clauses,
// maintained incrementally to satisfy spec.md §3.4's set->literals
// invariant without a full rescan.
func (s *Set) TotalLiterals() int { return s.totalLiterals }

// GCRoots implements term.RootSet: every literal side of every clause
// currently in the set is a live term bank root.
func (s *Set) GCRoots(dst []*term.Term) []*term.Term {
	for _, c := range s.clauses {
		for _, l := range c.Literals {
			dst = append(dst, l.LTerm, l.RTerm)
		}
	}
	return dst
}

// clauseOrder is the lexicographic weight-then-structure clause order
// canonize_set sorts the set by (spec.md §4.3).
func clauseOrder(a, b *Clause) int {
	if a.Weight != b.Weight {
		if a.Weight < b.Weight {
			return -1
		}
		return 1
	}
	if len(a.Literals) != len(b.Literals) {
		if len(a.Literals) < len(b.Literals) {
			return -1
		}
		return 1
	}
	for i := range a.Literals {
		if i >= len(b.Literals) {
			return 1
		}
		la, lb := a.Literals[i], b.Literals[i]
		if c := literalOrder(la, lb); c != 0 {
			return c
		}
	}
	return 0
}

// CanonizeSet calls RemoveSuperfluousLiterals then Canonize on every
// clause, then sorts the set by clauseOrder (spec.md §4.3 canonize_set).
func (s *Set) CanonizeSet() {
	for _, c := range s.clauses {
		c.RemoveSuperfluousLiterals()
		c.Canonize()
	}
	sort.Slice(s.clauses, func(i, j int) bool {
		return clauseOrder(s.clauses[i], s.clauses[j]) < 0
	})
}

// oneWayMatch attempts to bind pattern's variables so pattern becomes
// structurally equal to target, recording bindings in bind. It never
// mutates term cells: bindings live only in the local map, not in the
// shared Term.Binding slot, so this is safe to call without the
// push/backtrack discipline spec.md §9 requires for in-place bindings.
func oneWayMatch(pattern, target *term.Term, bind map[int]*term.Term) bool {
	if pattern.IsVar() {
		if b, ok := bind[pattern.VarIndex()]; ok {
			return b == target
		}
		bind[pattern.VarIndex()] = target
		return true
	}
	if target.IsVar() {
		return false
	}
	if pattern.FCode != target.FCode || pattern.Arity() != target.Arity() {
		return false
	}
	for i := range pattern.Args {
		if !oneWayMatch(pattern.Args[i], target.Args[i], bind) {
			return false
		}
	}
	return true
}

// literalSubsumedByUnit reports whether lit is an instance of simp's
// literal (under one-way matching, trying both orientations of simp's
// equation since equality is symmetric) with matching polarity.
func literalSubsumedByUnit(simp, lit *EqLit) bool {
	if simp.Positive != lit.Positive {
		return false
	}
	if bind := map[int]*term.Term{}; oneWayMatch(simp.LTerm, lit.LTerm, bind) && oneWayMatch(simp.RTerm, lit.RTerm, bind) {
		return true
	}
	if bind := map[int]*term.Term{}; oneWayMatch(simp.LTerm, lit.RTerm, bind) && oneWayMatch(simp.RTerm, lit.LTerm, bind) {
		return true
	}
	return false
}

// UnitSimplifyTest returns true if some literal of c is subsumed by the
// (possibly flipped) unit simplifier, used by simplify-reflect (spec.md
// §4.3 unit_simplify_test). simplifier must have exactly one literal.
func UnitSimplifyTest(c *Clause, simplifier *Clause) bool {
	if len(simplifier.Literals) != 1 {
		return false
	}
	u := simplifier.Literals[0]
	for _, l := range c.Literals {
		if literalSubsumedByUnit(u, l) {
			return true
		}
	}
	return false
}
