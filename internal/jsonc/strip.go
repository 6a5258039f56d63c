package jsonc

// Strip removes // line comments and /* */ block comments from src and then
// drops trailing commas before a closing } or ]. String literals, delimited
// by either quote character, are copied verbatim. The newline ending a line
// comment is kept.
func Strip(src []byte) []byte {
	return dropTrailingCommas(stripComments(src))
}

func stripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))

	var (
		inString bool
		inLine   bool
		inBlock  bool
		quote    byte
	)

	for i := 0; i < len(src); i++ {
		c := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		if !inLine && !inBlock && (c == '"' || c == '\'') && !escaped(src, i) {
			if !inString {
				inString = true
				quote = c
			} else if c == quote {
				inString = false
				quote = 0
			}
		}

		if inString {
			out = append(out, c)
			continue
		}

		if !inLine && !inBlock {
			if c == '/' && next == '/' {
				inLine = true
				i++
				continue
			}
			if c == '/' && next == '*' {
				inBlock = true
				i++
				continue
			}
		}

		if inLine && c == '\n' {
			inLine = false
			out = append(out, c)
			continue
		}

		if inBlock && c == '*' && next == '/' {
			inBlock = false
			i++
			continue
		}

		if !inLine && !inBlock {
			out = append(out, c)
		}
	}

	return out
}

// escaped reports whether src[i] is preceded by an odd run of backslashes.
func escaped(src []byte, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && src[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// dropTrailingCommas removes commas that are followed only by whitespace and
// a closing bracket. Commas inside string literals are left alone.
func dropTrailingCommas(src []byte) []byte {
	out := make([]byte, 0, len(src))

	var (
		inString bool
		quote    byte
	)

	for i := 0; i < len(src); i++ {
		c := src[i]

		if (c == '"' || c == '\'') && !escaped(src, i) {
			if !inString {
				inString = true
				quote = c
			} else if c == quote {
				inString = false
			}
		}

		if !inString && c == ',' {
			j := i + 1
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
		}

		out = append(out, c)
	}

	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
