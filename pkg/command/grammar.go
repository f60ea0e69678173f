// Package command implements the falconmap command language: the script
// grammar, the table of verbs, the typed commands they build and the
// Session that executes them against a model.
package command

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer tokenizes one script line.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Word", Pattern: `[^\s"#]+`},
})

// Statement is "verb arg...".
type Statement struct {
	Pos  lexer.Position
	Verb string   `@Word`
	Args []string `@(Word | String)*`
}

func (s *Statement) String() string {
	parts := append([]string{s.Verb}, s.Args...)
	return strings.Join(parts, " ")
}

var lineParser = participle.MustBuild[Statement](
	participle.Lexer(ScriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
)

// ParseScript parses every line of a script. name labels positions in
// errors. The first malformed line aborts parsing.
func ParseScript(name, input string) ([]*Statement, error) {
	var stmts []*Statement
	for i, text := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		st, err := lineParser.ParseString(name, text)
		if err != nil {
			return nil, &ScriptError{Phase: PhaseParse, Pos: position(name, i+1, 1), Err: fmt.Errorf("parse error: %w", err)}
		}
		st.Pos.Filename = name
		st.Pos.Line = i + 1
		stmts = append(stmts, st)
	}
	return stmts, nil
}

func position(name string, line, column int) lexer.Position {
	return lexer.Position{Filename: name, Line: line, Column: column}
}
