package viteconfig

import (
	"strconv"
	"strings"
)

// Render produces the full source text of doc.
func Render(doc *Document) string {
	var b strings.Builder

	imports := doc.Imports
	if len(imports) == 0 {
		imports = []string{DefaultImport}
	}
	b.WriteString(strings.Join(imports, "\n"))
	b.WriteString("\n\n")

	if len(doc.Comments) > 0 {
		b.WriteString(strings.Join(doc.Comments, "\n"))
		b.WriteString("\n")
	}

	config := doc.Config
	if config == nil {
		config = NewObject()
	}
	b.WriteString("export default defineConfig(")
	b.WriteString(RenderValue(ObjectValue(config), 0, ""))
	b.WriteString(")\n")
	return b.String()
}

// RenderValue renders v as a TypeScript expression. indent is the column of
// the line v starts on; parentKey is the key v is stored under.
func RenderValue(v Value, indent int, parentKey string) string {
	switch v.Kind() {
	case KindString:
		if parentKey == "plugins" && strings.Contains(v.Text(), "(") && strings.Contains(v.Text(), ")") {
			return v.Text()
		}
		return quote(v.Text())
	case KindRaw:
		return v.Text()
	case KindNumber:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Truth())
	case KindArray:
		return renderArray(v.Items(), indent, parentKey)
	case KindObject:
		return renderObject(v.Object(), indent)
	default:
		return "undefined"
	}
}

func renderArray(items []Value, indent int, parentKey string) string {
	if len(items) == 0 {
		return "[]"
	}
	pad := strings.Repeat(" ", indent+2)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = RenderValue(item, indent+2, parentKey)
	}
	return "[\n" + pad + strings.Join(parts, ",\n"+pad) + "\n" + strings.Repeat(" ", indent) + "]"
}

func renderObject(o *Object, indent int) string {
	pad := strings.Repeat(" ", indent+2)
	var lines []string
	for _, key := range o.Keys() {
		v, _ := o.Get(key)
		if v.IsUndefined() {
			continue
		}
		lines = append(lines, pad+renderKey(key)+": "+RenderValue(v, indent+2, key))
	}
	if len(lines) == 0 {
		return "{}"
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n" + strings.Repeat(" ", indent) + "}"
}

func renderKey(key string) string {
	if identRe.MatchString(key) || numberRe.MatchString(key) {
		return key
	}
	return quote(key)
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
