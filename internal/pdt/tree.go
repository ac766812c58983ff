package pdt

import (
	"github.com/eprover-go/eqcore/internal/clause"
	"github.com/eprover-go/eqcore/internal/term"
)

// Tree is a perfect discrimination tree indexing demodulator positions
// (ccl_pdtrees.h's PDTreeCell). Like the original, a Tree is a machine
// with state: at most one search may be in progress at a time, bracketed
// by SearchInit/SearchExit.
type Tree struct {
	root *node

	termStack []*term.Term // remaining LR-traversal frontier of the query
	termProc  []*term.Term // consumed function-symbol frames, for backtrack
	pos       *node

	storeEntries []*Entry
	storeIdx     int

	queryTerm     *term.Term
	termDate      int64
	termWeight    int
	preferGeneral bool

	nodeCount, clauseCount   int
	matchCount, visitedCount uint64
}

// New creates an empty discrimination tree.
func New() *Tree {
	return &Tree{root: newNode()}
}

func lrTraverseInit(t *term.Term) []*term.Term {
	return []*term.Term{t}
}

// lrTraverseNext pops the next term in left-to-right, depth-first order
// off stack and pushes its children (TermLRTraverseNext).
func lrTraverseNext(stack *[]*term.Term) *term.Term {
	s := *stack
	if len(s) == 0 {
		return nil
	}
	t := s[len(s)-1]
	s = s[:len(s)-1]
	for i := len(t.Args) - 1; i >= 0; i-- {
		s = append(s, t.Args[i])
	}
	*stack = s
	return t
}

// lrTraversePrev undoes one lrTraverseNext(t) by popping t's children
// back off the stack and pushing t itself (TermLRTraversePrev).
func lrTraversePrev(stack *[]*term.Term, t *term.Term) {
	s := *stack
	s = s[:len(s)-len(t.Args)]
	s = append(s, t)
	*stack = s
}

// selectAlt returns the existing child of n reached by the term cell
// curr, or nil if none (pdt_select_alt_ref, without the pointer-to-slot
// indirection the C original needs for in-place allocation).
func selectAlt(n *node, curr *term.Term) *node {
	if curr.IsVar() {
		return n.varAlt[curr.VarIndex()]
	}
	return n.funAlt[curr.FCode]
}

// NodeCount, ClauseCount, MatchCount expose the tree's bookkeeping
// counters.
func (tr *Tree) NodeCount() int     { return tr.nodeCount }
func (tr *Tree) ClauseCount() int   { return tr.clauseCount }
func (tr *Tree) MatchCount() uint64 { return tr.matchCount }

// ---- Insertion / deletion ----

// Insert adds e (one side of one literal of one clause) to the tree
// (PDTreeInsert).
func (tr *Tree) Insert(e *Entry) {
	t := e.Term()
	w := t.Weight

	n := tr.root
	n.sizeConstr = minSize(w, n.sizeConstr)
	n.ageConstr = maxAge(e.Clause.Date, n.ageConstr)
	n.refCount++

	stack := lrTraverseInit(t)
	curr := lrTraverseNext(&stack)
	for curr != nil {
		next := selectAlt(n, curr)
		if next == nil {
			next = newNode()
			next.parent = n
			tr.nodeCount++
			if curr.IsVar() {
				next.variable = curr
				if curr.VarIndex() > n.maxVar {
					n.maxVar = curr.VarIndex()
				}
				n.varAlt[curr.VarIndex()] = next
			} else {
				n.funAlt[curr.FCode] = next
			}
		}
		n = next
		n.sizeConstr = minSize(w, n.sizeConstr)
		n.ageConstr = maxAge(e.Clause.Date, n.ageConstr)
		n.refCount++
		curr = lrTraverseNext(&stack)
	}

	if n.entries == nil {
		n.entries = newEntrySet()
	}
	n.entries.Insert(e)
	tr.clauseCount++
}

// Delete removes every entry of clause c indexed under t, returning the
// number removed (PDTreeDelete).
func (tr *Tree) Delete(t *term.Term, c *clause.Clause) int {
	type step struct {
		parent *node
		isVar  bool
		key    int
	}
	var steps []step

	n := tr.root
	stack := lrTraverseInit(t)
	curr := lrTraverseNext(&stack)
	for curr != nil {
		next := selectAlt(n, curr)
		if next == nil {
			return 0
		}
		if curr.IsVar() {
			steps = append(steps, step{n, true, curr.VarIndex()})
		} else {
			steps = append(steps, step{n, false, curr.FCode})
		}
		n = next
		curr = lrTraverseNext(&stack)
	}

	removed := 0
	if n.entries != nil {
		for _, e := range n.entries.Slice() {
			if e.Clause == c {
				n.entries.Remove(e)
				removed++
			}
		}
		if n.entries.Size() == 0 {
			n.entries = nil
		}
	}

	constrChange := true
	for n.parent != nil {
		prev := n.parent
		st := steps[len(steps)-1]
		steps = steps[:len(steps)-1]

		n.refCount -= removed
		if n.refCount == 0 {
			if st.isVar {
				delete(st.parent.varAlt, st.key)
			} else {
				delete(st.parent.funAlt, st.key)
			}
			tr.nodeCount--
		}
		n = prev
		if constrChange && removed != n.refCount {
			constrChange = recomputeConstraints(n)
		}
	}
	tr.clauseCount -= removed
	return removed
}

// ---- Search ----

// SearchInit readies the tree for a match search for term, using
// ageCutoff as the caller's normal-form-date bound and preferGeneral to
// choose whether function-symbol or variable alternatives are tried
// first at each node (PDTreeSearchInit).
func (tr *Tree) SearchInit(t *term.Term, ageCutoff int64, preferGeneral bool) {
	tr.termStack = lrTraverseInit(t)
	tr.termProc = tr.termProc[:0]
	tr.pos = tr.root
	tr.preferGeneral = preferGeneral
	tr.root.travCount = initVal(preferGeneral)
	tr.queryTerm = t
	tr.termDate = ageCutoff
	tr.termWeight = t.Weight
	tr.matchCount++
}

// SearchExit ends the current search, releasing any in-progress leaf
// iteration (PDTreeSearchExit). Unlike the original — which threads a
// separate Subst_p that the caller backtracks itself after instantiating
// an accepted match's replacement — this port binds matched variables
// directly on the tree's own node cells (pdtreeForward), so SearchExit
// is the one place that must undo every binding still live along the
// current path back to the root, not just the traversal bookkeeping.
func (tr *Tree) SearchExit() {
	for tr.pos != nil && tr.pos != tr.root {
		tr.pdtreeBacktrack()
	}
	tr.storeEntries = nil
	tr.storeIdx = 0
	tr.queryTerm = nil
}

func (tr *Tree) verifyNodeConstr() bool {
	if tr.termWeight < tr.pos.sizeConstr {
		return false
	}
	// A node is entered only if some clause at or below it is strictly
	// newer than the query's cutoff date (spec.md §4.5's normal-form-date
	// discipline); a cutoff at or after the newest clause's date closes it.
	return tr.termDate < tr.pos.ageConstr
}

// pdtreeForward finds the next open alternative from the current node
// and advances to it, or marks the node closed if none remains
// (pdtree_forward).
func (tr *Tree) pdtreeForward() {
	handle := tr.pos
	i := handle.travCount
	qterm := tr.termStack[len(tr.termStack)-1]
	closed := closedVal(handle, tr.preferGeneral)

	for i < closed {
		if (i == 0 || i > handle.maxVar) && !qterm.IsVar() {
			next := handle.funAlt[qterm.FCode]
			i++
			if next != nil {
				tr.termProc = append(tr.termProc, qterm)
				lrTraverseNext(&tr.termStack)
				next.travCount = initVal(tr.preferGeneral)
				next.bound = false
				tr.pos = next
				tr.visitedCount++
				break
			}
		} else {
			next := handle.varAlt[i]
			i++
			if next != nil {
				if next.variable.Binding == nil {
					tr.termStack = tr.termStack[:len(tr.termStack)-1]
					next.variable.Binding = qterm
					next.travCount = initVal(tr.preferGeneral)
					next.bound = true
					tr.pos = next
					tr.termWeight -= qterm.Weight - 1
					tr.visitedCount++
					break
				} else if next.variable.Binding == qterm {
					tr.termStack = tr.termStack[:len(tr.termStack)-1]
					next.travCount = initVal(tr.preferGeneral)
					next.bound = false
					tr.pos = next
					tr.termWeight -= qterm.Weight - 1
					tr.visitedCount++
					break
				}
			}
		}
	}
	handle.travCount = i
}

// pdtreeBacktrack undoes the step that reached the current node and
// moves to its parent (pdtree_backtrack).
func (tr *Tree) pdtreeBacktrack() {
	handle := tr.pos
	if handle.variable != nil {
		binding := handle.variable.Binding
		tr.termWeight += binding.Weight - 1
		tr.termStack = append(tr.termStack, binding)
		if handle.bound {
			handle.variable.Binding = nil
		}
	} else if handle.parent != nil {
		t := tr.termProc[len(tr.termProc)-1]
		tr.termProc = tr.termProc[:len(tr.termProc)-1]
		lrTraversePrev(&tr.termStack, t)
	}
	tr.pos = handle.parent
}

// FindNextIndexedLeaf advances the search to the next leaf whose
// constraints admit the query term, or returns false once the search is
// exhausted (PDTreeFindNextIndexedLeaf). Bindings made along the way are
// left in place on a true return; call again (or SearchExit) to continue
// or release them.
func (tr *Tree) FindNextIndexedLeaf() bool {
	for tr.pos != nil {
		if !tr.verifyNodeConstr() || tr.pos.travCount == closedVal(tr.pos, tr.preferGeneral) {
			tr.pdtreeBacktrack()
		} else if tr.pos.entries != nil {
			tr.pos.travCount = closedVal(tr.pos, tr.preferGeneral)
			break
		} else {
			tr.pdtreeForward()
		}
	}
	return tr.pos != nil
}

// FindNextDemodulator returns the next candidate demodulator entry in
// the current search, advancing through leaves as needed, or nil once
// exhausted (PDTreeFindNextDemodulator).
func (tr *Tree) FindNextDemodulator() *Entry {
	for tr.pos != nil {
		if tr.storeIdx < len(tr.storeEntries) {
			e := tr.storeEntries[tr.storeIdx]
			tr.storeIdx++
			return e
		}
		tr.storeEntries = nil
		tr.storeIdx = 0
		if !tr.FindNextIndexedLeaf() {
			break
		}
		tr.storeEntries = tr.pos.entries.Slice()
		tr.storeIdx = 0
	}
	return nil
}
