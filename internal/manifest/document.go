package manifest

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/kickstart-labs/kickstart/internal/jsonc"
)

// Field names with special handling.
const (
	FieldDependencies         = "dependencies"
	FieldDevDependencies      = "devDependencies"
	FieldPeerDependencies     = "peerDependencies"
	FieldOptionalDependencies = "optionalDependencies"
	FieldScripts              = "scripts"
)

// dependencyFields are the maps whose keys are always written sorted.
var dependencyFields = []string{
	FieldDependencies,
	FieldDevDependencies,
	FieldPeerDependencies,
	FieldOptionalDependencies,
}

// FieldOrder is the canonical order of top-level package.json fields.
// Fields not listed here follow in the order they were first seen.
var FieldOrder = []string{
	"name",
	"version",
	"private",
	"description",
	"keywords",
	"homepage",
	"bugs",
	"repository",
	"license",
	"author",
	"contributors",
	"funding",
	"type",
	"main",
	"module",
	"types",
	"typings",
	"exports",
	"files",
	"bin",
	"workspaces",
	"scripts",
	"dependencies",
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
	"bundledDependencies",
	"engines",
	"packageManager",
	"publishConfig",
}

// Script is a named npm script.
type Script struct {
	Name    string
	Command string
}

// Document is an in-memory package.json. Unknown fields are kept as raw
// JSON and written back unchanged.
type Document struct {
	fields  *jsonc.Object
	deps    map[string]map[string]string
	scripts *jsonc.Object
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		fields: jsonc.NewObject(),
		deps:   make(map[string]map[string]string),
	}
}

// ParseDocument decodes package.json bytes.
func ParseDocument(data []byte) (*Document, error) {
	doc := NewDocument()
	if err := json.Unmarshal(data, doc.fields); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}

	for _, field := range dependencyFields {
		m := make(map[string]string)
		found, err := doc.fields.Get(field, &m)
		if err != nil {
			return nil, err
		}
		if found {
			doc.deps[field] = m
		}
	}

	if raw, ok := doc.fields.Raw(FieldScripts); ok {
		scripts := jsonc.NewObject()
		if err := json.Unmarshal(raw, scripts); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", FieldScripts, err)
		}
		for _, name := range scripts.Keys() {
			var cmd string
			if _, err := scripts.Get(name, &cmd); err != nil {
				return nil, fmt.Errorf("decoding script %q: %w", name, err)
			}
		}
		doc.scripts = scripts
	}

	return doc, nil
}

// Name returns the package name, or "" when unset.
func (d *Document) Name() string {
	var name string
	_, _ = d.fields.Get("name", &name)
	return name
}

// Field decodes a top-level field into v.
func (d *Document) Field(key string, v any) (bool, error) {
	return d.fields.Get(key, v)
}

// Has reports whether a top-level field is present.
func (d *Document) Has(key string) bool {
	return d.fields.Has(key)
}

// Dependencies returns a copy of the runtime dependency map.
func (d *Document) Dependencies() map[string]string {
	return d.depsCopy(FieldDependencies)
}

// DevDependencies returns a copy of the development dependency map.
func (d *Document) DevDependencies() map[string]string {
	return d.depsCopy(FieldDevDependencies)
}

// Scripts returns the scripts in file order.
func (d *Document) Scripts() []Script {
	if d.scripts == nil {
		return nil
	}
	out := make([]Script, 0, d.scripts.Len())
	for _, name := range d.scripts.Keys() {
		var cmd string
		_, _ = d.scripts.Get(name, &cmd)
		out = append(out, Script{Name: name, Command: cmd})
	}
	return out
}

func (d *Document) depsCopy(field string) map[string]string {
	out := make(map[string]string, len(d.deps[field]))
	for k, v := range d.deps[field] {
		out[k] = v
	}
	return out
}

// setField replaces a top-level field. Dependency maps and scripts are
// decoded into their models so Marshal writes the new value.
func (d *Document) setField(key string, v any) error {
	if err := d.fields.Set(key, v); err != nil {
		return err
	}
	raw, _ := d.fields.Raw(key)

	switch {
	case slices.Contains(dependencyFields, key):
		m := make(map[string]string)
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		d.deps[key] = m
	case key == FieldScripts:
		scripts := jsonc.NewObject()
		if err := json.Unmarshal(raw, scripts); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		d.scripts = scripts
	}
	return nil
}

func (d *Document) mergeDeps(field string, add map[string]string) {
	m, ok := d.deps[field]
	if !ok {
		m = make(map[string]string, len(add))
		d.deps[field] = m
		// Reserve the key so it appears in the output even before Marshal.
		d.fields.SetRaw(field, json.RawMessage("{}"))
	}
	for _, name := range sortedKeys(add) {
		m[name] = add[name]
	}
}

func (d *Document) setScript(name, cmd string) error {
	if d.scripts == nil {
		d.scripts = jsonc.NewObject()
		d.fields.SetRaw(FieldScripts, json.RawMessage("{}"))
	}
	return d.scripts.Set(name, cmd)
}

// Marshal renders the document with known fields in canonical order, sorted
// dependency maps and a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	out := jsonc.NewObject()
	for _, key := range d.fields.Keys() {
		raw, _ := d.fields.Raw(key)
		out.SetRaw(key, raw)
	}

	for field, m := range d.deps {
		// encoding/json writes map keys in sorted order.
		if err := out.Set(field, m); err != nil {
			return nil, err
		}
	}
	if d.scripts != nil {
		if err := out.Set(FieldScripts, d.scripts); err != nil {
			return nil, err
		}
	}

	out.Reorder(FieldOrder)

	data, err := jsonc.Marshal(out, "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding package.json: %w", err)
	}
	return append(data, '\n'), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
