package term

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/eprover-go/eqcore/internal/sig"
)

// shape is a symbolic term description independent of any particular
// Bank/Signature, so the same draw can be built twice and compared.
type shape struct {
	symIdx int
	args   []shape
}

var shapeSymbols = []struct {
	name  string
	arity int
}{
	{"a", 0},
	{"b", 0},
	{"f", 1},
	{"g", 2},
}

// genShape draws a random term shape up to maxDepth deep, forcing a
// nullary symbol once depth runs out so generation always terminates.
func genShape(t *rapid.T, maxDepth int) shape {
	top := len(shapeSymbols) - 1
	if maxDepth <= 0 {
		top = 1 // only a, b are arity 0
	}
	idx := rapid.IntRange(0, top).Draw(t, "sym")
	sym := shapeSymbols[idx]
	args := make([]shape, sym.arity)
	for i := range args {
		args[i] = genShape(t, maxDepth-1)
	}
	return shape{symIdx: idx, args: args}
}

func buildShape(sg *sig.Signature, bank *Bank, s shape) *Term {
	sym := shapeSymbols[s.symIdx]
	code := sg.Intern(sym.name, sym.arity, sig.DefaultSort)
	args := make([]*Term, len(s.args))
	for i, a := range s.args {
		args[i] = buildShape(sg, bank, a)
	}
	return bank.InsertTop(int(code), args)
}

// TestInsertTopHashConsingIsDeterministic checks, over many randomly
// generated term shapes, that building the same shape twice against the
// same bank always yields the same cell — the structural-sharing
// guarantee spec.md §3 calls "perfect sharing" holds for arbitrary
// (not just hand-picked) term shapes.
func TestInsertTopHashConsingIsDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genShape(rt, 3)
		sg := sig.New()
		bank := NewBank()

		first := buildShape(sg, bank, s)
		second := buildShape(sg, bank, s)
		if first != second {
			rt.Fatalf("rebuilding shape %+v produced a distinct cell", s)
		}
	})
}

// TestInsertTopHashConsingDistinguishesDifferentShapes draws two
// independent shapes and only asserts equality of the resulting cells
// when the shapes are actually identical, guarding against a
// hash-consing bug that collapses structurally different terms.
func TestInsertTopHashConsingDistinguishesDifferentShapes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s1 := genShape(rt, 2)
		s2 := genShape(rt, 2)
		sg := sig.New()
		bank := NewBank()

		t1 := buildShape(sg, bank, s1)
		t2 := buildShape(sg, bank, s2)
		if shapesEqual(s1, s2) {
			if t1 != t2 {
				rt.Fatalf("identical shapes %+v produced distinct cells", s1)
			}
		} else if t1 == t2 {
			rt.Fatalf("distinct shapes %+v, %+v collapsed to the same cell", s1, s2)
		}
	})
}

func shapesEqual(a, b shape) bool {
	if a.symIdx != b.symIdx || len(a.args) != len(b.args) {
		return false
	}
	for i := range a.args {
		if !shapesEqual(a.args[i], b.args[i]) {
			return false
		}
	}
	return true
}
