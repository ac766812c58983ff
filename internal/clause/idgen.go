package clause

import "sync/atomic"

// IDGen mints the two monotonic counters clause identity depends on:
// clause numeric identity and the creation-date tick PDT age constraints
// and rewrite-link generations key off (spec.md §5, §9: these must be
// scoped per prover instance rather than held as package globals, to
// allow several provers to run in one process).
type IDGen struct {
	nextID atomic.Int64
	tick   atomic.Int64
}

// NewIDGen creates a fresh, independent counter pair starting at 1.
func NewIDGen() *IDGen {
	return &IDGen{}
}

// NextID issues the next clause identity.
func (g *IDGen) NextID() int64 { return g.nextID.Add(1) }

// Tick advances and returns the next creation-date value. Distinct from
// NextID: many operations (rewrite-link generations, PDT age stamps)
// need a shared monotonic clock that clause creation is only one
// consumer of.
func (g *IDGen) Tick() int64 { return g.tick.Add(1) }
