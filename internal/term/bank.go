package term

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	coreerrors "github.com/eprover-go/eqcore/internal/errors"
	"github.com/eprover-go/eqcore/internal/obs"
	"github.com/eprover-go/eqcore/internal/sig"
)

// RootSet is implemented by any externally-owned collection of terms the
// Bank's garbage collector must treat as live (clause sets, formula sets,
// spec.md §4.1's "registered roots"). The Bank holds these only as weak
// references: it neither owns nor counts them (spec.md §9).
type RootSet interface {
	// GCRoots appends every term reachable from this root set's current
	// contents onto dst and returns the extended slice.
	GCRoots(dst []*Term) []*Term
}

// Bank is the hash-consed term store. All structurally-equal terms
// inserted through it share one *Term cell (spec.md §8 property 1).
type Bank struct {
	mu      sync.Mutex
	table   map[string]*Term
	vars    *VariableBank
	wFun    int
	wVar    int
	log     *zap.Logger
	roots   map[RootSet]struct{}
	markGen uint64
	minTerm map[sig.Sort]*Term
}

// Option configures a Bank at construction time.
type Option func(*Bank)

// WithLogger attaches a structured logger; default is a no-op logger.
func WithLogger(log *zap.Logger) Option { return func(b *Bank) { b.log = log } }

// WithSymbolWeights overrides the uniform default weight-per-function and
// weight-per-variable used for the term's cached "standard weight"
// (spec.md §3.2 — distinct from the OCB's per-symbol KBO weight scheme).
func WithSymbolWeights(wFun, wVar int) Option {
	return func(b *Bank) { b.wFun, b.wVar = wFun, wVar }
}

// NewBank creates an empty term bank bound to a fresh variable bank.
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		table:   make(map[string]*Term),
		wFun:    1,
		wVar:    1,
		log:     obs.Nop(),
		roots:   make(map[RootSet]struct{}),
		minTerm: make(map[sig.Sort]*Term),
	}
	for _, o := range opts {
		o(b)
	}
	b.vars = newVariableBank(b)
	return b
}

// Variables returns the bank's owned variable pool.
func (b *Bank) Variables() *VariableBank { return b.vars }

// VarWeight and FunWeight expose the standard-weight constants so callers
// computing weights by hand (e.g. package formula's clause extraction)
// stay consistent with the bank's own cached weights.
func (b *Bank) VarWeight() int { return b.wVar }
func (b *Bank) FunWeight() int { return b.wFun }

func hashKey(fcode int, args []*Term) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", fcode)
	for _, a := range args {
		fmt.Fprintf(&sb, "|%p", a)
	}
	return sb.String()
}

// insertTop hash-conses a single cell whose Args are already-canonical
// pointers, per spec.md §4.1 insert_top. It is the only place new
// non-variable cells are created; variable cells come from the
// VariableBank.
func (b *Bank) insertTop(fcode int, args []*Term) *Term {
	key := hashKey(fcode, args)
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.table[key]; ok {
		return t
	}
	w := b.wFun
	for _, a := range args {
		w += a.Weight
	}
	t := &Term{FCode: fcode, Args: args, Weight: w}
	b.table[key] = t
	return t
}

// InsertTop is the exported form of insertTop for callers building a term
// bottom-up with already-canonical children.
func (b *Bank) InsertTop(fcode int, args []*Term) *Term {
	if fcode < 0 {
		obs.Fatal(b.log, coreerrors.CodeOutOfMemory, "InsertTop called with a variable code; use Variables().Get")
	}
	return b.insertTop(fcode, args)
}

// Insert returns the canonical shared reference for term t, recursively
// canonicalizing t's children first. t itself need not have come from
// this bank (e.g. it may be freshly allocated by a caller assembling a
// literal); the returned *Term always does.
func (b *Bank) Insert(t *Term) *Term {
	if t.IsVar() {
		return b.vars.canonical(t.FCode)
	}
	args := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = b.Insert(a)
	}
	return b.insertTop(t.FCode, args)
}

// InsertInstantiated behaves like Insert but follows variable Bindings
// (DerefAlways) transitively while inserting, collapsing bound variables
// into their substituted value (spec.md §4.1 insert_instantiated).
// Binding cycles cannot occur: bindings are only ever set during
// matching/unification and cleared before the next use (spec.md §4.1).
func (b *Bank) InsertInstantiated(t *Term) *Term {
	t = Deref(t, DerefAlways)
	if t.IsVar() {
		return b.vars.canonical(t.FCode)
	}
	args := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = b.InsertInstantiated(a)
	}
	return b.insertTop(t.FCode, args)
}

// MakeMinTerm returns the designated minimum constant term for sort,
// memoized per sort (spec.md §4.1). The first call for a sort fixes the
// result; later calls for that sort ignore constCode.
func (b *Bank) MakeMinTerm(sort sig.Sort, constCode int) *Term {
	b.mu.Lock()
	if t, ok := b.minTerm[sort]; ok {
		b.mu.Unlock()
		return t
	}
	b.mu.Unlock()
	t := b.insertTop(constCode, nil)
	b.mu.Lock()
	b.minTerm[sort] = t
	b.mu.Unlock()
	return t
}

// RegisterRoot and DeregisterRoot implement the weak-root discipline of
// spec.md §4.1/§9: an application must register a clause/formula set
// before inserting clauses referring to bank terms, and deregister it
// before the set is dropped.
func (b *Bank) RegisterRoot(rs RootSet) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roots[rs] = struct{}{}
}

func (b *Bank) DeregisterRoot(rs RootSet) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.roots, rs)
}

// GC performs mark-and-sweep: every term reachable from a currently
// registered root is kept; everything else is dropped from the hash-cons
// table so Go's own collector can reclaim it (spec.md §4.1). GC never
// runs concurrently with term construction in this single-threaded core
// (spec.md §5); callers must not hold partially-built terms outside a
// registered root across a GC call.
func (b *Bank) GC() (kept, dropped int) {
	b.mu.Lock()
	b.markGen++
	gen := b.markGen
	roots := make([]RootSet, 0, len(b.roots))
	for rs := range b.roots {
		roots = append(roots, rs)
	}
	b.mu.Unlock()

	var frontier []*Term
	for _, rs := range roots {
		frontier = rs.GCRoots(frontier)
	}
	// Also keep every interned variable and the per-sort minimum terms:
	// they are cheap, bank-owned, and referenced implicitly by any future
	// insertion rather than by a root's current contents.
	frontier = append(frontier, b.vars.allCells()...)
	for _, t := range b.minTerm {
		frontier = append(frontier, t)
	}

	for len(frontier) > 0 {
		t := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if t.mark == gen {
			continue
		}
		t.mark = gen
		frontier = append(frontier, t.Args...)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	newTable := make(map[string]*Term, len(b.table))
	for k, t := range b.table {
		if t.mark == gen {
			newTable[k] = t
			kept++
		} else {
			dropped++
		}
	}
	b.table = newTable
	b.log.Debug("term bank gc", zap.Int("kept", kept), zap.Int("dropped", dropped))
	return kept, dropped
}

// Size reports the number of distinct non-variable cells currently
// hash-consed.
func (b *Bank) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.table)
}
