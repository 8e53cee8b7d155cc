package syntax

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Pattern is an alternation. The first branch is kept apart from the rest
// so that every alternative past it starts with a '|' token.
type Pattern struct {
	Pos   lexer.Position
	First []*Piece       `parser:"@@*"`
	Rest  []*Alternative `parser:"@@*"`
}

type Alternative struct {
	Pieces []*Piece `parser:"'|' @@*"`
}

// Piece is an atom followed by any number of quantifiers, applied left to
// right: a{2}* is (a{2})*.
type Piece struct {
	Pos         lexer.Position
	Atom        *Atom    `parser:"@@"`
	Quantifiers []string `parser:"@( '*' | '+' | '?' | Range )*"`
}

type Atom struct {
	Char    *string  `parser:"  @Char"`
	Escaped *string  `parser:"| @Escaped"`
	Group   *Pattern `parser:"| '(' @@ ')'"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Range", Pattern: `\{[0-9]+(,[0-9]*)?\}`},
	{Name: "Escaped", Pattern: `\\.`},
	{Name: "Operator", Pattern: `[|*+?()]`},
	{Name: "Char", Pattern: `[^|*+?()\\]`},
})

var parser = participle.MustBuild[Pattern](
	participle.Lexer(patternLexer),
)

// Parse returns the syntax tree of pattern without building an automaton.
func Parse(pattern string) (*Pattern, error) {
	return parser.ParseString("", pattern)
}
