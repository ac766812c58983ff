package term

import "github.com/eprover-go/eqcore/internal/sig"

// varKey identifies one canonical variable cell by sort and numeric index
// (spec.md §4.2: "a pool of variables keyed by sort and numeric index").
type varKey struct {
	sort sig.Sort
	idx  int
}

// VariableBank is the Bank's pool of canonical variable cells. Unlike
// function applications, a variable's identity is not structural — it is
// entirely determined by (sort, idx) — so the pool is its own hash-cons
// table, separate from Bank.table.
//
// Two counter disciplines share the same (sort, idx) space deliberately
// (spec.md §4.2):
//
//   - FreshVar issues a variable index strictly above anything the caller
//     has seen so far in the formula being processed, for use by the
//     rename pass ahead of Skolemization, so that no two overlapping
//     bound-variable scopes can ever alias (spec.md §4.4).
//   - NextClauseVar/ResetCounter issue a small dense local numbering
//     while extracting one clause's matrix (spec.md §4.8); the counter is
//     reset for every clause, so distinct clauses deliberately reuse the
//     same low-numbered variable cells. This is sound because a clause's
//     variables are only ever read back as part of that one clause's own
//     structure — cross-clause identity of a bound variable carries no
//     meaning.
//
// Callers that need the fresh-above-maximum precondition call SetCounter
// first.
type VariableBank struct {
	bank     *Bank
	cells    map[varKey]*Term
	byCode   map[int]varKey
	nextCode int
	counter  map[sig.Sort]int
}

func newVariableBank(b *Bank) *VariableBank {
	return &VariableBank{
		bank:     b,
		cells:    make(map[varKey]*Term),
		byCode:   make(map[int]varKey),
		nextCode: 1,
		counter:  make(map[sig.Sort]int),
	}
}

// Get returns the canonical variable cell for (sort, idx), creating it on
// first request.
func (vb *VariableBank) Get(sort sig.Sort, idx int) *Term {
	key := varKey{sort, idx}
	if t, ok := vb.cells[key]; ok {
		return t
	}
	code := -vb.nextCode
	vb.nextCode++
	t := &Term{FCode: code, Weight: vb.bank.wVar}
	t.SetProp(PropFreeVar)
	vb.cells[key] = t
	vb.byCode[code] = key
	return t
}

// canonical returns the cell already registered under code, used by
// Bank.Insert/InsertInstantiated when re-canonicalizing a variable that
// may not be this bank's own pointer (e.g. freshly built by a caller).
func (vb *VariableBank) canonical(code int) *Term {
	key, ok := vb.byCode[code]
	if !ok {
		// A variable code this bank has never minted: adopt it as-is,
		// indexed under the default sort, so round-tripping a term built
		// directly from codes (e.g. by package termtext) still hash-cons.
		return vb.Get(sig.DefaultSort, -code)
	}
	return vb.cells[key]
}

// IndexOf reports the numeric index a variable cell was issued under,
// used by package formula to compute the rename pass's "counter above
// the maximum variable code in the formula" precondition.
func (vb *VariableBank) IndexOf(t *Term) int {
	key, ok := vb.byCode[t.FCode]
	if !ok {
		return 0
	}
	return key.idx
}

// SortOf reports the sort a variable cell was issued under.
func (vb *VariableBank) SortOf(t *Term) sig.Sort {
	key, ok := vb.byCode[t.FCode]
	if !ok {
		return sig.DefaultSort
	}
	return key.sort
}

// FreshVar issues the variable of the given sort at the sort's counter
// and advances the counter; after ResetCounter it reissues cells from
// index 0 again.
func (vb *VariableBank) FreshVar(sort sig.Sort) *Term {
	idx := vb.counter[sort]
	vb.counter[sort]++
	return vb.Get(sort, idx)
}

// SetCounter forces the next FreshVar(sort) to start at idx or later,
// satisfying the rename pass's precondition that fresh variables be
// issued strictly above the maximum variable index already present in
// the formula being renamed (spec.md §4.4).
func (vb *VariableBank) SetCounter(sort sig.Sort, idx int) {
	if idx > vb.counter[sort] {
		vb.counter[sort] = idx
	}
}

// ResetCounter restarts the dense local numbering for sort, so the next
// clause extracted reuses variable cells 0, 1, 2, ... from the start
// (spec.md §4.8).
func (vb *VariableBank) ResetCounter(sort sig.Sort) {
	vb.counter[sort] = 0
}

// NextClauseVar issues the next variable in the current clause's dense
// local numbering for sort; equivalent to FreshVar but named separately
// to document the clause-extraction call site.
func (vb *VariableBank) NextClauseVar(sort sig.Sort) *Term {
	return vb.FreshVar(sort)
}

// allCells returns every variable cell ever minted, used by Bank.GC to
// keep the whole pool alive unconditionally (spec.md §4.1: variables are
// cheap and bank-owned, not subject to root-reachability pruning).
func (vb *VariableBank) allCells() []*Term {
	out := make([]*Term, 0, len(vb.cells))
	for _, t := range vb.cells {
		out = append(out, t)
	}
	return out
}
