// Package term implements the perfectly-shared term bank: a hash-consed
// DAG of terms where every structurally-equal subterm is the same Go
// pointer (spec.md §3.2, §4.1).
package term

import "github.com/eprover-go/eqcore/internal/sig"

// Property is a bitset of mutable, interior flags attached to an
// otherwise-immutable shared cell. Mutating these is safe only because
// the core is single-threaded (spec.md §9 "hash-consing with
// properties").
type Property uint32

const (
	PropRewritten Property = 1 << iota
	PropSOSRewritten
	PropRewritable
	PropFreeVar
	PropHasBinding
	PropTopRewritten
)

// RewriteData is the rewrite-link record a term cell carries (spec.md
// §4.7): if PropTopRewritten is set, RewrittenTo names the representative
// this cell rewrites to, RuleNFDate/FullNFDate cache the most
// recent normal-form dates seen at the rule-only and rule+eq levels.
type RewriteData struct {
	RewrittenTo    *Term
	FromSOS        bool
	RuleNFDate     int64
	FullNFDate     int64
}

// Term is a hash-consed term cell: a variable (FCode < 0, Arity == 0) or
// an application f(Args...). Two terms are == (pointer-identical) iff
// they are structurally equal, by construction of the Bank that creates
// them (spec.md §8 property 1).
type Term struct {
	FCode  int // > 0: sig.FunCode; < 0: variable, index = -FCode
	Args   []*Term
	Weight int

	props Property
	rw    RewriteData

	// Binding is set only during matching/unification and is never part
	// of a term's structural identity; DerefType controls whether
	// comparisons see through it (spec.md §3.2).
	Binding *Term

	mark uint64 // GC generation watermark, see Bank.GC
}

// IsVar reports whether t is a variable cell.
func (t *Term) IsVar() bool { return t.FCode < 0 }

// VarIndex returns the variable's positive index; only valid if IsVar().
func (t *Term) VarIndex() int { return -t.FCode }

// Arity returns len(Args).
func (t *Term) Arity() int { return len(t.Args) }

// HasProp reports whether every bit in p is set.
func (t *Term) HasProp(p Property) bool { return t.props&p == p }

// SetProp ORs p into the term's property bitset.
func (t *Term) SetProp(p Property) { t.props |= p }

// ClearProp clears p from the term's property bitset.
func (t *Term) ClearProp(p Property) { t.props &^= p }

// RewriteDataPtr exposes the mutable rewrite-link record for package
// rewrite's use.
func (t *Term) RewriteDataPtr() *RewriteData { return &t.rw }

// DerefType controls whether comparisons/traversals see through a
// variable's current Binding (spec.md §3.2).
type DerefType int

const (
	DerefNever DerefType = iota
	DerefOnce
	DerefAlways
)

// Deref follows t's Binding according to d. DerefOnce stops after one
// hop; DerefAlways chases to a fixpoint (used during substitution
// application).
func Deref(t *Term, d DerefType) *Term {
	switch d {
	case DerefNever:
		return t
	case DerefOnce:
		if t.Binding != nil {
			return t.Binding
		}
		return t
	default: // DerefAlways
		for t.Binding != nil {
			t = t.Binding
		}
		return t
	}
}

// FunCode is re-exported for callers that want the signature type without
// importing package sig directly for this one alias.
type FunCode = sig.FunCode
