package viteconfig

import "strings"

// scanner walks TypeScript source tracking string literals, comments and
// bracket depth. It understands just enough syntax to find top-level
// separators inside an object or array literal.
type scanner struct {
	src   string
	quote byte // active string delimiter, 0 outside strings
	line  bool
	block bool
	depth int
}

// step consumes src[i] and returns how many bytes it covered and whether the
// byte is code at depth zero (outside strings and comments).
func (s *scanner) step(i int) (n int, top bool) {
	c := s.src[i]
	var next byte
	if i+1 < len(s.src) {
		next = s.src[i+1]
	}

	switch {
	case s.line:
		if c == '\n' {
			s.line = false
		}
		return 1, false
	case s.block:
		if c == '*' && next == '/' {
			s.block = false
			return 2, false
		}
		return 1, false
	case s.quote != 0:
		if c == '\\' {
			return 2, false
		}
		if c == s.quote {
			s.quote = 0
		}
		return 1, false
	}

	switch c {
	case '/':
		if next == '/' {
			s.line = true
			return 2, false
		}
		if next == '*' {
			s.block = true
			return 2, false
		}
	case '\'', '"', '`':
		s.quote = c
		return 1, false
	case '(', '[', '{':
		s.depth++
		return 1, false
	case ')', ']', '}':
		s.depth--
		return 1, false
	}
	return 1, s.depth == 0
}

// splitTopLevel splits src at top-level occurrences of sep.
func splitTopLevel(src string, sep byte) []string {
	var parts []string
	s := &scanner{src: src}
	start := 0
	for i := 0; i < len(src); {
		n, top := s.step(i)
		if top && src[i] == sep {
			parts = append(parts, src[start:i])
			start = i + 1
		}
		i += n
	}
	return append(parts, src[start:])
}

// cutTopLevel splits src at the first top-level sep.
func cutTopLevel(src string, sep byte) (before, after string, found bool) {
	s := &scanner{src: src}
	for i := 0; i < len(src); {
		n, top := s.step(i)
		if top && src[i] == sep {
			return src[:i], src[i+1:], true
		}
		i += n
	}
	return src, "", false
}

// stripComments removes // and /* */ comments outside string literals.
func stripComments(src string) string {
	var b strings.Builder
	s := &scanner{src: src}
	for i := 0; i < len(src); {
		wasComment := s.line || s.block
		n, _ := s.step(i)
		if end := i + n; end > len(src) {
			n = len(src) - i
		}
		inComment := s.line || s.block
		switch {
		case wasComment || inComment:
			// A line comment keeps its terminating newline.
			if wasComment && !inComment && src[i] == '\n' {
				b.WriteByte('\n')
			}
		default:
			b.WriteString(src[i : i+n])
		}
		i += n
	}
	return b.String()
}

// balanced takes src starting at an opening bracket and returns the text
// between it and its matching close.
func balanced(src string) (string, bool) {
	s := &scanner{src: src}
	for i := 0; i < len(src); {
		n, _ := s.step(i)
		i += n
		if s.depth == 0 && s.quote == 0 && !s.line && !s.block {
			if i > len(src) || src[i-1] != ')' && src[i-1] != ']' && src[i-1] != '}' {
				return "", false
			}
			return src[1 : i-1], true
		}
	}
	return "", false
}

// enclosed reports whether s is wrapped in open/close, and returns the inner
// text. The closing bracket must match the opening one.
func enclosed(s string, open, close byte) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return "", false
	}
	sc := &scanner{src: s}
	for i := 0; i < len(s); {
		n, _ := sc.step(i)
		i += n
		if sc.depth == 0 && sc.quote == 0 && !sc.line && !sc.block && i < len(s) {
			return "", false
		}
	}
	return s[1 : len(s)-1], true
}

// unquote strips matching outer quotes of any JS string delimiter.
func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"' && q != '`') || s[len(s)-1] != q {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if q == '`' && strings.Contains(inner, "${") {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == q {
			// Unescaped delimiter inside means this was not one literal.
			return "", false
		}
		if c == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), true
}
