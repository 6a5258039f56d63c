package viteconfig

import (
	"fmt"
	"regexp"
	"strings"
)

// RewriteParam is the parameter name used in generated rewrite functions.
const RewriteParam = "path"

var (
	arrowRe    = regexp.MustCompile(`(?s)^(?:async\s+)?(?:\(\s*([A-Za-z_$][\w$]*)\s*(?::\s*[\w$.]+\s*)?\)|([A-Za-z_$][\w$]*))\s*(?::\s*[\w$.]+\s*)?=>\s*(.*)$`)
	functionRe = regexp.MustCompile(`(?s)^(?:async\s+)?function\s*[\w$]*\s*\(\s*([A-Za-z_$][\w$]*)\s*(?::\s*[\w$.]+\s*)?\)\s*(?::\s*[\w$.]+\s*)?\{(.*)\}$`)
	returnRe   = regexp.MustCompile(`^return\b\s*`)
)

// RewriteFunc converts the source of a one-parameter function into a raw
// arrow function of the form (path) => <body>. Arrow functions with or
// without parentheses and function expressions are accepted. Block bodies
// must consist of a single return statement.
func RewriteFunc(src string) (Value, error) {
	src = strings.TrimSpace(src)

	var param, body string
	switch {
	case functionRe.MatchString(src):
		m := functionRe.FindStringSubmatch(src)
		param = m[1]
		b, err := blockBody(m[2])
		if err != nil {
			return Value{}, fmt.Errorf("rewrite function %q: %w", src, err)
		}
		body = b
	case arrowRe.MatchString(src):
		m := arrowRe.FindStringSubmatch(src)
		param = m[1]
		if param == "" {
			param = m[2]
		}
		body = strings.TrimSpace(m[3])
		if inner, ok := enclosed(body, '{', '}'); ok {
			b, err := blockBody(inner)
			if err != nil {
				return Value{}, fmt.Errorf("rewrite function %q: %w", src, err)
			}
			body = b
		} else {
			body = strings.TrimSuffix(body, ";")
		}
	default:
		return Value{}, fmt.Errorf("unrecognized rewrite function %q", src)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return Value{}, fmt.Errorf("rewrite function %q has an empty body", src)
	}
	if param != RewriteParam {
		body = replaceWord(body, param, RewriteParam)
	}
	return Raw("(" + RewriteParam + ") => " + body), nil
}

// blockBody returns the expression of a block that is a single return
// statement.
func blockBody(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if !returnRe.MatchString(s) {
		return "", fmt.Errorf("block body must be a single return statement")
	}
	s = strings.TrimSpace(strings.TrimSuffix(returnRe.ReplaceAllString(s, ""), ";"))
	if len(splitTopLevel(s, ';')) > 1 {
		return "", fmt.Errorf("block body must be a single return statement")
	}
	return s, nil
}

// replaceWord substitutes whole-word occurrences of old outside string
// literals. Property names after a dot are left alone.
func replaceWord(src, old, repl string) string {
	var b strings.Builder
	s := &scanner{src: src}
	for i := 0; i < len(src); {
		n, _ := s.step(i)
		code := s.quote == 0 && !s.line && !s.block && n == 1 && !isQuote(src[i])
		if code && strings.HasPrefix(src[i:], old) &&
			!isIdentByte(before(src, i)) && before(src, i) != '.' &&
			!isIdentByte(at(src, i+len(old))) {
			b.WriteString(repl)
			i += len(old)
			continue
		}
		end := i + n
		if end > len(src) {
			end = len(src)
		}
		b.WriteString(src[i:end])
		i = end
	}
	return b.String()
}

func isQuote(c byte) bool { return c == '\'' || c == '"' || c == '`' }

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func before(s string, i int) byte {
	if i == 0 {
		return 0
	}
	return s[i-1]
}

func at(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}
