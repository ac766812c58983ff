// Package stats holds the process-wide statistical counters named in
// spec.md §7: rewrite attempts/successes/unbound-var failures. They never
// affect control flow, only later reporting. Scoped to one *Counters
// value per prover rather than package globals, matching the per-prover
// scoping the spec's redesign notes recommend for other global state.
package stats

import "sync/atomic"

// Counters is a small set of atomic counters safe to share across a
// single-threaded core that nonetheless wants lock-free increments from
// hot paths like the rewriter.
type Counters struct {
	RewriteAttempts       atomic.Int64
	RewriteSuccesses      atomic.Int64
	RewriteUnboundVarFails atomic.Int64
	GCRuns                atomic.Int64
	PrecedenceRollbacks   atomic.Int64
}

// Snapshot is an immutable copy suitable for reporting.
type Snapshot struct {
	RewriteAttempts        int64
	RewriteSuccesses       int64
	RewriteUnboundVarFails int64
	GCRuns                 int64
	PrecedenceRollbacks    int64
}

// Snapshot reads all counters without synchronizing them against each
// other (a reporting-only operation; spec.md §7 says these never affect
// control flow).
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		RewriteAttempts:        c.RewriteAttempts.Load(),
		RewriteSuccesses:       c.RewriteSuccesses.Load(),
		RewriteUnboundVarFails: c.RewriteUnboundVarFails.Load(),
		GCRuns:                 c.GCRuns.Load(),
		PrecedenceRollbacks:    c.PrecedenceRollbacks.Load(),
	}
}
