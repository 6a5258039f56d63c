package viteconfig

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultImport is written when a config has no imports of its own.
const DefaultImport = "import { defineConfig } from 'vite'"

var (
	defineCallRe = regexp.MustCompile(`defineConfig\s*\(`)
	numberRe     = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
	identRe      = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Top-level fields decoded as string literals.
var stringFields = map[string]bool{
	"root": true, "base": true, "mode": true,
	"publicDir": true, "cacheDir": true, "envDir": true,
}

// Sections decoded one level deep.
var sectionFields = map[string]bool{
	"server": true, "build": true, "preview": true, "resolve": true,
	"css": true, "optimizeDeps": true, "ssr": true, "worker": true,
}

// Typed keys recognized directly inside a section.
var (
	sectionStrings = map[string]bool{"host": true, "outDir": true, "assetsDir": true, "target": true, "format": true}
	sectionNumbers = map[string]bool{"port": true}
	sectionBools   = map[string]bool{"open": true, "strictPort": true, "emptyOutDir": true, "sourcemap": true}
)

// Document is the model of one vite.config.ts.
type Document struct {
	// Imports are trimmed import lines in file order.
	Imports []string
	// Comments are the comment and blank lines between the imports and the
	// export statement, untrimmed.
	Comments []string
	// Config is the object passed to defineConfig.
	Config *Object
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Config: NewObject()}
}

// Parse extracts a Document from source text. Parts it cannot recognize are
// left out rather than reported.
func Parse(src string) *Document {
	return &Document{
		Imports:  parseImports(src),
		Comments: extractComments(src),
		Config:   parseConfig(src),
	}
}

func parseImports(src string) []string {
	var imports []string
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") && !strings.Contains(trimmed, "//") {
			imports = append(imports, trimmed)
		}
	}
	return imports
}

// extractComments collects comment-looking and blank lines after the import
// block has ended and before the export default statement.
func extractComments(src string) []string {
	var (
		comments    []string
		inImports   bool
		importsDone bool
	)
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "export default") {
			break
		}
		if strings.HasPrefix(trimmed, "import ") {
			inImports = true
			continue
		}
		if inImports && trimmed != "" {
			importsDone = true
		}
		if !importsDone {
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
			comments = append(comments, line)
		}
	}
	return comments
}

// configBody returns the inside of the object literal passed to the first
// defineConfig call whose argument is one.
func configBody(src string) (string, bool) {
	for _, loc := range defineCallRe.FindAllStringIndex(src, -1) {
		open := loc[1] - 1
		arg, ok := balanced(src[open:])
		if !ok {
			continue
		}
		if body, ok := enclosed(arg, '{', '}'); ok {
			return body, true
		}
	}
	return "", false
}

func parseConfig(src string) *Object {
	body, ok := configBody(src)
	if !ok {
		return NewObject()
	}

	config := NewObject()
	for _, e := range splitEntries(body) {
		switch {
		case stringFields[e.key]:
			config.Set(e.key, decodeString(e.value))
		case e.key == "envPrefix":
			config.Set(e.key, decodeStringArray(e.value))
		case e.key == "clearScreen":
			config.Set(e.key, decodeBool(e.value))
		case sectionFields[e.key]:
			if v, ok := decodeSection(e.value); ok {
				config.Set(e.key, v)
			}
		case e.key == "plugins":
			config.Set(e.key, decodePlugins(e.value))
		case e.key == "define":
			config.Set(e.key, decodeDefine(e.value))
		default:
			config.Set(e.key, Raw(e.value))
		}
	}
	return config
}

type entry struct {
	key   string
	value string
}

// splitEntries breaks the inside of an object literal into key/value pairs.
// Shorthand properties become key: key; spreads and computed keys are
// dropped.
func splitEntries(body string) []entry {
	var entries []entry
	for _, part := range splitTopLevel(stripComments(body), ',') {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "...") || strings.HasPrefix(part, "[") {
			continue
		}

		key, value, found := cutTopLevel(part, ':')
		key = strings.TrimSpace(key)
		if !found {
			if identRe.MatchString(key) {
				entries = append(entries, entry{key: key, value: key})
			}
			continue
		}

		if k, ok := unquote(key); ok {
			key = k
		} else if !identRe.MatchString(key) && !numberRe.MatchString(key) {
			continue
		}
		entries = append(entries, entry{key: key, value: strings.TrimSpace(value)})
	}
	return entries
}

func decodeString(src string) Value {
	if s, ok := unquote(src); ok {
		return String(s)
	}
	return Raw(src)
}

func decodeBool(src string) Value {
	switch src {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return Raw(src)
}

func decodeNumber(src string) Value {
	if numberRe.MatchString(src) {
		if f, err := strconv.ParseFloat(src, 64); err == nil {
			return Number(f)
		}
	}
	return Raw(src)
}

func decodeStringArray(src string) Value {
	inner, ok := enclosed(src, '[', ']')
	if !ok {
		return decodeString(src)
	}
	var items []Value
	for _, part := range splitTopLevel(inner, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, decodeString(part))
	}
	return Array(items...)
}

// decodeSection reads the direct entries of a nested section. Keys outside
// the recognized sub-schema are kept as raw text.
func decodeSection(src string) (Value, bool) {
	inner, ok := enclosed(src, '{', '}')
	if !ok {
		return Raw(src), true
	}
	obj := NewObject()
	for _, e := range splitEntries(inner) {
		switch {
		case sectionStrings[e.key]:
			obj.Set(e.key, decodeString(e.value))
		case sectionNumbers[e.key]:
			obj.Set(e.key, decodeNumber(e.value))
		case sectionBools[e.key]:
			obj.Set(e.key, decodeBool(e.value))
		default:
			obj.Set(e.key, Raw(e.value))
		}
	}
	if obj.Len() == 0 {
		return Value{}, false
	}
	return ObjectValue(obj), true
}

func decodePlugins(src string) Value {
	inner, ok := enclosed(src, '[', ']')
	if !ok {
		return Raw(src)
	}
	var items []Value
	for _, part := range splitTopLevel(inner, ',') {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, Raw(part))
		}
	}
	return Array(items...)
}

func decodeDefine(src string) Value {
	inner, ok := enclosed(src, '{', '}')
	if !ok {
		return Raw(src)
	}
	obj := NewObject()
	for _, e := range splitEntries(inner) {
		obj.Set(e.key, decodeString(e.value))
	}
	return ObjectValue(obj)
}

// objectFromRaw turns raw object-literal text into an Object whose entries
// are raw values. It is used when an edit needs to add to a field that was
// carried through as text.
func objectFromRaw(v Value) (*Object, bool) {
	switch v.Kind() {
	case KindObject:
		return v.Object(), true
	case KindUndefined:
		return NewObject(), true
	case KindRaw:
		inner, ok := enclosed(v.Text(), '{', '}')
		if !ok {
			return nil, false
		}
		obj := NewObject()
		for _, e := range splitEntries(inner) {
			obj.Set(e.key, Raw(e.value))
		}
		return obj, true
	}
	return nil, false
}
