package sexpr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenOpen
	tokenClose
	tokenSymbol
	tokenString
)

type token struct {
	typ   tokenType
	value string
	line  int
}

// lexer splits input into parentheses, bare symbols and quoted strings.
// Comments run from ';' or '#' to the end of the line.
type lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r), line: 1}
}

func (l *lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		if ch, _, err = l.reader.ReadRune(); err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

func (l *lexer) next() (token, error) {
	for {
		ch, err := l.peek()
		if err == io.EOF {
			return token{typ: tokenEOF, line: l.line}, nil
		}
		if err != nil {
			return token{}, err
		}
		switch {
		case unicode.IsSpace(ch):
			l.read()
		case ch == ';' || ch == '#':
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
		default:
			return l.token(ch)
		}
	}
}

func (l *lexer) token(ch rune) (token, error) {
	line := l.line
	switch ch {
	case '(':
		l.read()
		return token{typ: tokenOpen, line: line}, nil
	case ')':
		l.read()
		return token{typ: tokenClose, line: line}, nil
	case '"':
		s, err := l.readString()
		return token{typ: tokenString, value: s, line: line}, err
	}
	var b strings.Builder
	for {
		c, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if unicode.IsSpace(c) || c == '(' || c == ')' || c == '"' || c == ';' {
			break
		}
		l.read()
		b.WriteRune(c)
	}
	return token{typ: tokenSymbol, value: b.String(), line: line}, nil
}

func (l *lexer) readString() (string, error) {
	start := l.line
	l.read()
	var b strings.Builder
	for {
		ch, err := l.read()
		if err == io.EOF {
			return "", fmt.Errorf("sexpr: line %d: unterminated string", start)
		}
		if err != nil {
			return "", err
		}
		switch ch {
		case '"':
			return b.String(), nil
		case '\\':
			esc, err := l.read()
			if err != nil {
				return "", fmt.Errorf("sexpr: line %d: unterminated escape", l.line)
			}
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteRune(esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

type parser struct {
	lex *lexer
	cur token
}

func newParser(r io.Reader) *parser {
	return &parser{lex: newLexer(r)}
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *parser) parseAll() ([]Sexp, error) {
	var out []Sexp
	if err := p.advance(); err != nil {
		return nil, err
	}
	for p.cur.typ != tokenEOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *parser) parseExpr() (Sexp, error) {
	switch p.cur.typ {
	case tokenOpen:
		return p.parseList()
	case tokenSymbol:
		return Atom{Text: p.cur.value}, nil
	case tokenString:
		return Atom{Text: p.cur.value, Quoted: true}, nil
	case tokenClose:
		return nil, fmt.Errorf("sexpr: line %d: unexpected ')'", p.cur.line)
	default:
		return nil, fmt.Errorf("sexpr: line %d: unexpected end of input", p.cur.line)
	}
}

func (p *parser) parseList() (Sexp, error) {
	list := &List{Line: p.cur.line}
	for {
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch p.cur.typ {
		case tokenClose:
			return list, nil
		case tokenEOF:
			return nil, fmt.Errorf("sexpr: line %d: list is never closed", list.Line)
		}
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
}
