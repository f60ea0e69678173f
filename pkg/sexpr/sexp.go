// Package sexpr reads and writes the s-expression documents used for
// mapping files and routing output.
//
// Atoms are kept as text; a quoted atom remembers that it was quoted so that
// it is written back the same way.
package sexpr

import (
	"io"
	"strconv"
	"strings"
)

// Sexp is an s-expression node: an Atom or a *List.
type Sexp interface {
	// IsLeaf reports whether the node is an atom.
	IsLeaf() bool
	// String renders the node on one line.
	String() string
}

// Atom is a symbol, number or string.
type Atom struct {
	Text   string
	Quoted bool
}

// Sym makes a bare atom.
func Sym(text string) Atom { return Atom{Text: text} }

// Str makes a quoted atom.
func Str(text string) Atom { return Atom{Text: text, Quoted: true} }

func (a Atom) IsLeaf() bool { return true }

func (a Atom) String() string {
	if a.Quoted || needsQuote(a.Text) {
		return strconv.Quote(a.Text)
	}
	return a.Text
}

func needsQuote(s string) bool {
	return s == "" || strings.ContainsAny(s, " \t\r\n()\";#")
}

// List is a parenthesised sequence of nodes.
type List struct {
	Items []Sexp
	Line  int // line of the opening parenthesis, 0 when built in memory
}

// L builds a list from its items.
func L(items ...Sexp) *List { return &List{Items: items} }

// Syms builds a list whose items are all bare atoms.
func Syms(texts ...string) *List {
	l := &List{Items: make([]Sexp, len(texts))}
	for i, t := range texts {
		l.Items[i] = Sym(t)
	}
	return l
}

func (l *List) IsLeaf() bool { return false }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.Items) }

// Head returns the text of the first item when it is an atom, or "".
func (l *List) Head() string {
	if len(l.Items) == 0 {
		return ""
	}
	if a, ok := l.Items[0].(Atom); ok {
		return a.Text
	}
	return ""
}

// Atom returns the text of item i when it is an atom.
func (l *List) Atom(i int) (string, bool) {
	if i < 0 || i >= len(l.Items) {
		return "", false
	}
	a, ok := l.Items[i].(Atom)
	return a.Text, ok
}

// Find returns the first child list whose head is key.
func (l *List) Find(key string) (*List, bool) {
	for _, item := range l.Items {
		if sub, ok := item.(*List); ok && sub.Head() == key {
			return sub, true
		}
	}
	return nil, false
}

// FindAll returns every child list whose head is key.
func (l *List) FindAll(key string) []*List {
	var out []*List
	for _, item := range l.Items {
		if sub, ok := item.(*List); ok && sub.Head() == key {
			out = append(out, sub)
		}
	}
	return out
}

// Has reports whether a child list consists of just the atom key, as in
// (final).
func (l *List) Has(key string) bool {
	sub, ok := l.Find(key)
	return ok && sub.Len() == 1
}

// Replace swaps the first child list headed by key for repl, or appends repl
// when there is none.
func (l *List) Replace(key string, repl *List) {
	for i, item := range l.Items {
		if sub, ok := item.(*List); ok && sub.Head() == key {
			l.Items[i] = repl
			return
		}
	}
	l.Items = append(l.Items, repl)
}

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]Sexp, error) {
	return newParser(r).parseAll()
}

// ParseString reads every top-level expression from s.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
