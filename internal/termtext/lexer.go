// Package termtext is a test-only s-expression-flavored grammar for terms,
// equations, and clauses, so fixtures across the prover's packages can be
// written as source text ("f(a,b) = a | ~p(X)") instead of hand-built
// *term.Term/*clause.Clause graphs. Grounded on the teacher's grammar
// package (github.com/alecthomas/participle/v2 struct-tag grammar style,
// lexer.MustStateful rule table), re-purposed for a tiny first-order term
// syntax instead of the kanso language. This package is exercised only from
// _test.go files; it is never a CLI entry point.
package termtext

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes clause/term source text. Identifiers starting with an
// uppercase letter are variables (Prolog/TPTP convention, also the one
// spec.md's GLOSSARY uses for sample terms); everything else is a function
// or predicate symbol name.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Punct", `!=|[(),|=~]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
