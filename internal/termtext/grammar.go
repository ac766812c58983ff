package termtext

// ClauseSrc is "lit { | lit }": a disjunction of literals, E-prover's own
// clause display syntax stripped to what fixtures need.
type ClauseSrc struct {
	Literals []*LiteralSrc `@@ { "|" @@ }`
}

// LiteralSrc is ["~"] atom, where atom is either an equation (term "="
// term, or term "!=" term) or a bare predicate application.
type LiteralSrc struct {
	Negated bool     `[ @"~" ]`
	Left    *TermSrc `@@`
	Eq      *EqTail  `[ @@ ]`
}

// EqTail is the optional "= term" / "!= term" suffix that turns a bare
// term into an equational literal.
type EqTail struct {
	Op    string   `@("=" | "!=")`
	Right *TermSrc `@@`
}

// TermSrc is name [ "(" term { "," term } ")" ]: a variable (bare
// uppercase-leading name) or a function/predicate application.
type TermSrc struct {
	Name string     `@Ident`
	Args []*TermSrc `[ "(" @@ { "," @@ } ")" ]`
}
