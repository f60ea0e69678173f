// Package sysfile reads and writes system description files and mapping
// files.
//
// A system file declares FPGAs, clusters, components, groups, connections
// and links:
//
//	# comment
//	fpga F1 "Board 1" arch virtex5 { LUT = 100, BRAM = 20 }
//	cluster K1 "Rack A" { F1, F2 }
//	component C1 "Filter" { LUT = 60 }
//	group G1 "Front end" { C1 } on F1
//	connection X1 "c1 to c2" C1 -> C2 density 5.0
//	link L1 "backplane" F1 <-> F2 speed 10.0
//
// A mapping file is an s-expression with a pre and a post section, each a
// list of (map unit fpga) entries.
package sysfile

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SystemLexer tokenizes system files.
var SystemLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Arrow", Pattern: `<->|->`},
	{Name: "Number", Pattern: `-?\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Punct", Pattern: `[{},=]`},
})

// SystemFile is the parsed form of a system file.
type SystemFile struct {
	Decls []*Decl `@@*`
}

// Decl is one top-level declaration.
type Decl struct {
	Pos lexer.Position

	FPGA       *FPGADecl       `  @@`
	Cluster    *ClusterDecl    `| @@`
	Component  *ComponentDecl  `| @@`
	Group      *GroupDecl      `| @@`
	Connection *ConnectionDecl `| @@`
	Link       *LinkDecl       `| @@`
}

// FPGADecl: fpga <id> "<name>" arch <arch> { res = n, ... }
type FPGADecl struct {
	ID           string      `"fpga" @(Ident | String)`
	Name         string      `@String`
	Architecture string      `"arch" @(Ident | String)`
	Capacity     []*Resource `"{" ( @@ ( "," @@ )* ","? )? "}"`
}

// ClusterDecl: cluster <id> "<name>" { fpga, ... }
type ClusterDecl struct {
	ID      string   `"cluster" @(Ident | String)`
	Name    string   `@String`
	Members []string `"{" ( @(Ident | String) ( "," @(Ident | String) )* ","? )? "}"`
}

// ComponentDecl: component <id> "<name>" { res = n, ... } [on <fpga>]
type ComponentDecl struct {
	ID        string      `"component" @(Ident | String)`
	Name      string      `@String`
	Resources []*Resource `"{" ( @@ ( "," @@ )* ","? )? "}"`
	Target    string      `( "on" @(Ident | String) )?`
}

// GroupDecl: group <id> "<name>" { component, ... } [on <fpga>]
type GroupDecl struct {
	ID      string   `"group" @(Ident | String)`
	Name    string   `@String`
	Members []string `"{" ( @(Ident | String) ( "," @(Ident | String) )* ","? )? "}"`
	Target  string   `( "on" @(Ident | String) )?`
}

// ConnectionDecl: connection <id> "<name>" <src> -> <sink> density <d>
type ConnectionDecl struct {
	ID      string  `"connection" @(Ident | String)`
	Name    string  `@String`
	Source  string  `@(Ident | String)`
	Sink    string  `"->" @(Ident | String)`
	Density float64 `"density" @Number`
}

// LinkDecl: link <id> "<name>" <src> (<->|->) <sink> speed <s>
type LinkDecl struct {
	ID        string  `"link" @(Ident | String)`
	Name      string  `@String`
	Source    string  `@(Ident | String)`
	Direction string  `@Arrow`
	Sink      string  `@(Ident | String)`
	Speed     float64 `"speed" @Number`
}

// Bidirectional reports whether the link was declared with <->.
func (l *LinkDecl) Bidirectional() bool { return l.Direction == "<->" }

// Resource is one "name = amount" entry.
type Resource struct {
	Name   string `@(Ident | String)`
	Amount int64  `"=" @Number`
}

// Parser parses system files.
type Parser struct {
	parser *participle.Parser[SystemFile]
}

// NewParser builds a system file parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[SystemFile](
		participle.Lexer(SystemLexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a system file from r. name is used in positions.
func (p *Parser) Parse(name string, r io.Reader) (*SystemFile, error) {
	sf, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return sf, nil
}

// ParseString parses a system file from a string.
func (p *Parser) ParseString(input string) (*SystemFile, error) {
	sf, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return sf, nil
}

// ParseFile parses the system file at path.
func (p *Parser) ParseFile(path string) (*SystemFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(path, file)
}
