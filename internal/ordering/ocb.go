package ordering

import (
	"go.uber.org/zap"

	coreerrors "github.com/eprover-go/eqcore/internal/errors"
	"github.com/eprover-go/eqcore/internal/obs"
	"github.com/eprover-go/eqcore/internal/sig"
)

// Type tags the kind of term ordering an OCB realizes. Only KBO6 is
// implemented; the others are kept as a closed enum so a caller's intent
// is explicit even though LPO/RPO are out of SPEC_FULL.md's scope.
type Type int

const (
	NoOrdering Type = iota
	KBO
	KBO6
)

// tuple is one precedence entry pushed to the backtrack stack: the pair
// of codes a precedence addition touched (spec.md §3.6 "pairs pushed on
// each addition").
type tuple struct {
	f1, f2 sig.FunCode
}

// OCB is the ordering control block: signature-indexed precedence (as a
// full relation matrix, or — when built with precByWeight — a
// weight-encoded total order), a per-symbol KBO weight table, a variable
// weight, a
// per-sort minimum-constant cache, and a reusable KBO-balance
// accumulator (spec.md §3.6). Grounded line-for-line on
// `original_source/ORDERINGS/cto_ocb.{c,h}`, adapted from fixed-size
// C arrays sized at creation to slices that grow on demand, since Go has
// no direct analogue of `cto_ocb.c`'s "sig_size at allocation time"
// snapshot and a signature may still be growing when the OCB is built.
type OCB struct {
	typ Type
	sg  *sig.Signature
	log *zap.Logger

	weights   []int // index by FunCode; default OCBFunDefaultWeight for codes beyond len
	varWeight int

	precByWeight bool
	precWeights  []int      // used when precByWeight
	precedence   [][]Result // used otherwise; precedence[f1][f2]

	stack []tuple

	minConst map[sig.Sort]*sig.FunCode

	balance kboBalance
}

// OCBFunDefaultWeight is the weight assigned to a symbol the OCB has
// never been told a weight for (spec.md §4.4 weight generation: "each
// sets the w_f array... "; unset entries keep the original's default).
const OCBFunDefaultWeight = 1

// NewOCB creates an order control block of the given type over sg. When
// precByWeight is true, precedence comparisons use a per-symbol integer
// weight (a total order) instead of the general relation matrix.
func NewOCB(typ Type, precByWeight bool, sg *sig.Signature, log *zap.Logger) *OCB {
	if log == nil {
		log = obs.Nop()
	}
	return &OCB{
		typ:          typ,
		sg:           sg,
		log:          log,
		varWeight:    1,
		precByWeight: precByWeight,
		minConst:     make(map[sig.Sort]*sig.FunCode),
	}
}

func (o *OCB) ensureSize(code sig.FunCode) {
	n := int(code) + 1
	if len(o.weights) < n {
		grown := make([]int, n)
		copy(grown, o.weights)
		for i := len(o.weights); i < n; i++ {
			grown[i] = OCBFunDefaultWeight
		}
		o.weights = grown
	}
	if o.precByWeight {
		if len(o.precWeights) < n {
			grown := make([]int, n)
			copy(grown, o.precWeights)
			o.precWeights = grown
		}
		return
	}
	if len(o.precedence) < n {
		grown := make([][]Result, n)
		for i := 0; i < n; i++ {
			row := make([]Result, n)
			for j := 0; j < n; j++ {
				row[j] = relDefault(sig.FunCode(i), sig.FunCode(j))
			}
			if i < len(o.precedence) {
				copy(row, o.precedence[i])
			}
			grown[i] = row
		}
		o.precedence = grown
	}
}

func relDefault(f1, f2 sig.FunCode) Result {
	if f1 == f2 {
		return Equal
	}
	return Uncomparable
}

// SetWeight sets the KBO weight of f, growing the internal table as
// needed.
func (o *OCB) SetWeight(f sig.FunCode, w int) {
	o.ensureSize(f)
	o.weights[f] = w
}

// SetVarWeight sets the uniform weight assigned to every variable
// occurrence (spec.md §4.4's w_var).
func (o *OCB) SetVarWeight(w int) { o.varWeight = w }

// FunWeight returns f's KBO weight, or OCBFunDefaultWeight if it was
// never assigned one.
func (o *OCB) FunWeight(f sig.FunCode) int {
	if int(f) < len(o.weights) {
		return o.weights[f]
	}
	return OCBFunDefaultWeight
}

// SetPrecedenceWeight sets f's position in a weight-encoded total
// precedence; only meaningful when the OCB was built with precByWeight.
func (o *OCB) SetPrecedenceWeight(f sig.FunCode, w int) {
	o.ensureSize(f)
	o.precWeights[f] = w
}

// FunCompare returns the precedence relation between f1 and f2 (spec.md
// §4.4 "Precedence"): equal codes compare Equal; $true is the global
// minimum; distinct-object symbols form a block above every non-distinct
// symbol; otherwise the weight-encoded total order or the relation
// matrix decides.
func (o *OCB) FunCompare(f1, f2 sig.FunCode) Result {
	if f1 == f2 {
		return Equal
	}
	if f1 == sig.CodeTrue {
		return Lesser
	}
	if f2 == sig.CodeTrue {
		return Greater
	}
	d1, d2 := o.sg.IsDistinctObject(f1), o.sg.IsDistinctObject(f2)
	if d2 && !d1 {
		return Lesser
	}
	if d1 && !d2 {
		return Greater
	}
	o.ensureSize(maxCode(f1, f2))
	if o.precByWeight {
		w1, w2 := o.precWeights[f1], o.precWeights[f2]
		switch {
		case w1 > w2:
			return Greater
		case w1 < w2:
			return Lesser
		default:
			return Equal
		}
	}
	return o.precedence[f1][f2]
}

func maxCode(f1, f2 sig.FunCode) sig.FunCode {
	if f1 > f2 {
		return f1
	}
	return f2
}

// transCompute applies the transitive-closure compatibility table
// (spec.md §4.4) to the pair (f1,f2) and (f2,f3), inferring and storing
// rel(f1,f3) when possible. Returns false if the inference would
// contradict an existing entry, signalling the caller to roll back.
func (o *OCB) transCompute(f1, f2, f3 sig.FunCode) bool {
	rel12 := o.FunCompare(f1, f2)
	rel23 := o.FunCompare(f2, f3)
	inferred := compose(rel12, rel23)
	if inferred == Uncomparable {
		return true
	}
	return o.addTupleRaw(f1, f3, inferred)
}

// addTupleRaw sets precedence[f1][f2]/[f2][f1] directly (no recursive
// closure walk) and records the pair on the backtrack stack, unless an
// identical entry is already present (no-op, no stack push) or a
// conflicting one is (failure).
func (o *OCB) addTupleRaw(f1, f2 sig.FunCode, rel Result) bool {
	if o.precByWeight {
		obs.Fatal(o.log, coreerrors.CodeOrderingInvariant, "addTupleRaw called on a weight-encoded OCB")
	}
	existing := o.FunCompare(f1, f2)
	if existing == rel {
		return true
	}
	if existing != Uncomparable {
		return false
	}
	o.ensureSize(maxCode(f1, f2))
	o.precedence[f1][f2] = rel
	o.precedence[f2][f1] = rel.Inverse()
	o.stack = append(o.stack, tuple{f1, f2})
	return true
}

// AddPrecedenceTuple adds rel(f1,f2) to the precedence, recomputing the
// transitive closure against every other known symbol (spec.md §4.4). On
// success it returns the backtrack-stack pointer to pass to Backtrack to
// undo this (and only this) addition, and true. On a contradiction,
// every change this call made is rolled back before it returns false.
func (o *OCB) AddPrecedenceTuple(f1, f2 sig.FunCode, rel Result) (int, bool) {
	if o.precByWeight {
		obs.Fatal(o.log, coreerrors.CodeOrderingInvariant, "AddPrecedenceTuple called on a weight-encoded OCB")
	}
	mark := len(o.stack)
	if o.FunCompare(f1, f2) == rel {
		return mark, true
	}
	if o.FunCompare(f1, f2) != Uncomparable {
		return 0, false
	}
	o.ensureSize(maxCode(f1, f2))
	o.precedence[f1][f2] = rel
	o.precedence[f2][f1] = rel.Inverse()
	o.stack = append(o.stack, tuple{f1, f2})

	maxC := sig.FunCode(len(o.precedence))
	ok := true
	for h := sig.FunCode(0); h < maxC && ok; h++ {
		ok = o.transCompute(f1, f2, h)
		if ok {
			ok = o.transCompute(h, f1, f2)
		}
	}
	if !ok {
		o.Backtrack(mark)
		return 0, false
	}
	return mark, true
}

// Backtrack undoes every precedence addition back to state (a value
// previously returned by AddPrecedenceTuple or State), restoring every
// touched pair to Uncomparable. Returns whether the stack is non-empty
// afterwards.
func (o *OCB) Backtrack(state int) bool {
	for len(o.stack) != state {
		top := o.stack[len(o.stack)-1]
		o.stack = o.stack[:len(o.stack)-1]
		o.precedence[top.f1][top.f2] = Uncomparable
		o.precedence[top.f2][top.f1] = Uncomparable
	}
	return len(o.stack) != 0
}

// State returns the current backtrack-stack depth, to be saved before a
// sequence of additions and passed to Backtrack to undo all of them.
func (o *OCB) State() int { return len(o.stack) }

// MinConstant returns the designated minimum constant for sort, choosing
// (and caching) the precedence-least declared constant of that sort on
// first request. Used by the rewriter's strong_rhs_inst completion
// (spec.md §4.4 "minimum-constant cache per sort").
func (o *OCB) MinConstant(sort sig.Sort, candidates []sig.FunCode) sig.FunCode {
	if c, ok := o.minConst[sort]; ok {
		return *c
	}
	var best sig.FunCode
	have := false
	for _, c := range candidates {
		if !have || o.FunCompare(c, best) == Lesser {
			best, have = c, true
		}
	}
	o.minConst[sort] = &best
	return best
}

// Signature returns the signature the OCB was built over.
func (o *OCB) Signature() *sig.Signature { return o.sg }
