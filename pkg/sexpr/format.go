package sexpr

import (
	"io"
	"strings"
)

// Format renders s with one nested list per line. Lists that hold only
// atoms stay on a single line.
func Format(s Sexp) string {
	var b strings.Builder
	format(&b, s, 0)
	b.WriteByte('\n')
	return b.String()
}

func format(b *strings.Builder, s Sexp, depth int) {
	l, ok := s.(*List)
	if !ok || flat(l) {
		b.WriteString(s.String())
		return
	}
	b.WriteByte('(')
	for i, item := range l.Items {
		if _, isList := item.(*List); isList && i > 0 {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("  ", depth+1))
		} else if i > 0 {
			b.WriteByte(' ')
		}
		format(b, item, depth+1)
	}
	b.WriteByte(')')
}

func flat(l *List) bool {
	for _, item := range l.Items {
		if !item.IsLeaf() {
			return false
		}
	}
	return true
}

// Write formats s to w.
func Write(w io.Writer, s Sexp) error {
	_, err := io.WriteString(w, Format(s))
	return err
}
