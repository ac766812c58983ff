// Package rewrite implements leftmost-innermost term rewriting with
// demodulator sets indexed by package pdt (spec.md §3.7, §4.7). Grounded
// on original_source/CLAUSES/ccl_rewrite.{c,h}.
package rewrite

import "github.com/eprover-go/eqcore/internal/term"

// Level is the rewrite-level enum (ccl_rewrite.h's RewriteLevel): how
// many demodulator tiers to try, and which cached normal-form date a term
// consults.
type Level int

const (
	NoRewrite Level = iota
	RuleOnly
	RuleEq
)

// nfDate returns t's cached normal-form date at level (RuleNFDate for
// RuleOnly, FullNFDate for RuleEq).
func nfDate(t *term.Term, level Level) int64 {
	rd := t.RewriteDataPtr()
	if level == RuleEq {
		return rd.FullNFDate
	}
	return rd.RuleNFDate
}

// setNFDate stamps t's normal-form date at level, and at RuleOnly too
// when level is RuleEq — a term normal at the Rule+Eq level is also
// normal at the Rule-only level (ccl_rewrite.c's term_li_normalform: the
// rule-date field is always updated, the full-date field only when
// level==FullRewrite).
func setNFDate(t *term.Term, level Level, date int64) {
	rd := t.RewriteDataPtr()
	rd.RuleNFDate = date
	if level == RuleEq {
		rd.FullNFDate = date
	}
}
