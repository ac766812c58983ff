package termtext

import "github.com/alecthomas/participle/v2"

var (
	clauseParser = participle.MustBuild[ClauseSrc](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
	termParser = participle.MustBuild[TermSrc](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
	)
)

func parseClause(src string) (*ClauseSrc, error) {
	return clauseParser.ParseString("", src)
}

func parseTerm(src string) (*TermSrc, error) {
	return termParser.ParseString("", src)
}
