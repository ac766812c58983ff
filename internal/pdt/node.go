package pdt

import (
	"math"

	set "github.com/hashicorp/go-set/v3"

	"github.com/eprover-go/eqcore/internal/term"
)

// node is one cell of the tree (the original's PDTNodeCell): an
// alternative reached by either a function symbol or a variable index at
// one position of a term's LR-flattening. An interior node carries only
// children (funAlt/varAlt); a leaf, where an indexed term's traversal
// ends, carries only entries. The LR-flattenings of complete terms are
// prefix-free, so no indexed term's traversal ends at a node another
// indexed term passes through.
type node struct {
	funAlt map[int]*node // keyed by the term cell's positive FCode
	varAlt map[int]*node // keyed by variable index

	maxVar int // largest variable index with a live child

	sizeConstr int   // min standard weight of any term at/beyond this node
	ageConstr  int64 // max clause date at/beyond this node

	parent   *node
	refCount int

	entries *set.Set[*Entry] // non-nil only once this node is a leaf

	variable *term.Term // set iff this node is reached via a variable edge
	bound    bool       // did reaching this node bind `variable`?
	travCount int
}

func newNode() *node {
	return &node{
		funAlt:     make(map[int]*node),
		varAlt:     make(map[int]*node),
		sizeConstr: math.MaxInt,
	}
}

// initVal and closedVal implement PDT_NODE_INIT_VAL / PDT_NODE_CLOSED
// (ccl_pdtrees.h): traversal of a node's alternatives runs over
// {0 or maxVar+1 (function symbol), 1..maxVar (variables)}; prefer_general
// reverses which end the function-symbol slot sits at.
func initVal(preferGeneral bool) int {
	if preferGeneral {
		return 1
	}
	return 0
}

func closedVal(n *node, preferGeneral bool) int {
	if preferGeneral {
		return n.maxVar + 2
	}
	return n.maxVar + 1
}

// maxAge is SysDateMaximum.
func maxAge(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// minSize is MIN.
func minSize(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// recomputeConstraints recomputes n's size/age constraints from its
// entries (leaf) or its children (interior), and reports whether either
// bound changed (ccl_pdtrees.c recompute_node_constraints). Also
// refreshes maxVar to the largest variable index still present.
func recomputeConstraints(n *node) bool {
	newAge := int64(0)
	newSize := math.MaxInt

	if n.entries != nil {
		for _, e := range n.entries.Slice() {
			newAge = maxAge(newAge, e.Clause.Date)
		}
		// Leaf size is fixed by the term that was indexed here, not by
		// descendants (there are none).
		newSize = n.sizeConstr
	} else {
		for _, child := range n.funAlt {
			newAge = maxAge(newAge, child.ageConstr)
			newSize = minSize(newSize, child.sizeConstr)
		}
		maxVar := 0
		for idx, child := range n.varAlt {
			newAge = maxAge(newAge, child.ageConstr)
			newSize = minSize(newSize, child.sizeConstr)
			if idx > maxVar {
				maxVar = idx
			}
		}
		n.maxVar = maxVar
	}

	changed := false
	if newAge != n.ageConstr {
		changed = true
		n.ageConstr = newAge
	}
	if newSize != n.sizeConstr {
		changed = true
		n.sizeConstr = newSize
	}
	return changed
}
