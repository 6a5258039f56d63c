package viteconfig

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kickstart-labs/kickstart/internal/fileops"
)

// ErrUnsupported is returned by Load when the file has content but no
// defineConfig({...}) call the editor can model.
var ErrUnsupported = errors.New("unsupported vite config shape")

// Proxy is one server.proxy rule.
type Proxy struct {
	// Prefix is the route prefix, e.g. "/api".
	Prefix string
	// Target is the upstream URL.
	Target       string
	ChangeOrigin bool
	// Rewrite is the source of a one-parameter path rewrite function.
	Rewrite string
	Headers map[string]string
}

// Editor loads, mutates and saves one vite config file. Mutators are
// chainable; the first failure is kept and returned by Err and Save.
type Editor struct {
	path string
	doc  *Document
	err  error
}

// New returns an editor for the config at path.
func New(path string) *Editor {
	return &Editor{path: path}
}

func (e *Editor) Path() string { return e.path }

// Exists reports whether the config file is present.
func (e *Editor) Exists() bool { return fileops.PathExists(e.path) }

// Load reads and parses the config. The file must exist.
func (e *Editor) Load() error {
	src, err := fileops.ReadTextFile(e.path)
	if err != nil {
		return fmt.Errorf("loading vite config %s: %w", e.path, err)
	}
	if _, ok := configBody(src); strings.TrimSpace(src) != "" && !ok {
		return fmt.Errorf("loading vite config %s: %w", e.path, ErrUnsupported)
	}
	e.doc = Parse(src)
	return nil
}

// Document returns the loaded model, or nil before Load.
func (e *Editor) Document() *Document { return e.doc }

// Err returns the first error recorded by a mutator.
func (e *Editor) Err() error { return e.err }

// AddImport appends an import statement unless an identical one, ignoring
// a trailing semicolon, is already present.
func (e *Editor) AddImport(stmt string) *Editor {
	if !e.ready() {
		return e
	}
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return e
	}
	want := strings.TrimSuffix(stmt, ";")
	for _, existing := range e.doc.Imports {
		if strings.TrimSuffix(existing, ";") == want {
			return e
		}
	}
	e.doc.Imports = append(e.doc.Imports, stmt)
	return e
}

// AddImports calls AddImport for each statement.
func (e *Editor) AddImports(stmts ...string) *Editor {
	for _, s := range stmts {
		e.AddImport(s)
	}
	return e
}

// AddPlugin appends a plugin call such as "vue()" unless it is already
// listed.
func (e *Editor) AddPlugin(call string) *Editor {
	if !e.ready() {
		return e
	}
	call = strings.TrimSpace(call)

	var items []Value
	if v, ok := e.doc.Config.Get("plugins"); ok {
		if v.Kind() != KindArray {
			e.fail(fmt.Errorf("adding plugin %s: plugins is %s, not an array", call, v.Kind()))
			return e
		}
		items = v.Items()
	}
	for _, item := range items {
		if strings.TrimSpace(item.Text()) == call {
			return e
		}
	}
	e.doc.Config.Set("plugins", Array(append(items, Raw(call))...))
	return e
}

// AddAlias sets resolve.alias[alias] to target. Targets are always code,
// e.g. "path.resolve(__dirname, './src')". A later call for the same alias
// replaces the earlier target.
func (e *Editor) AddAlias(alias, target string) *Editor {
	if !e.ready() {
		return e
	}
	aliases, err := e.objectAt("resolve", "alias")
	if err != nil {
		e.fail(fmt.Errorf("adding alias %s: %w", alias, err))
		return e
	}
	aliases.Set(alias, Raw(target))
	return e
}

// AddAliases adds every alias in sorted key order.
func (e *Editor) AddAliases(aliases map[string]string) *Editor {
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.AddAlias(k, aliases[k])
	}
	return e
}

// AddProxy sets server.proxy[p.Prefix]. A later rule for the same prefix
// replaces the earlier one.
func (e *Editor) AddProxy(p Proxy) *Editor {
	if !e.ready() {
		return e
	}
	if p.Prefix == "" || p.Target == "" {
		e.fail(fmt.Errorf("adding proxy: prefix and target are required"))
		return e
	}

	rule := NewObject().Set("target", String(p.Target))
	if p.ChangeOrigin {
		rule.Set("changeOrigin", Bool(true))
	}
	if p.Rewrite != "" {
		fn, err := RewriteFunc(p.Rewrite)
		if err != nil {
			e.fail(fmt.Errorf("adding proxy %s: %w", p.Prefix, err))
			return e
		}
		rule.Set("rewrite", fn)
	}
	if len(p.Headers) > 0 {
		headers := NewObject()
		names := make([]string, 0, len(p.Headers))
		for name := range p.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			headers.Set(name, String(p.Headers[name]))
		}
		rule.Set("headers", ObjectValue(headers))
	}

	proxies, err := e.objectAt("server", "proxy")
	if err != nil {
		e.fail(fmt.Errorf("adding proxy %s: %w", p.Prefix, err))
		return e
	}
	proxies.Set(p.Prefix, ObjectValue(rule))
	return e
}

// Set stores v at a dotted path such as "build.outDir", creating
// intermediate objects.
func (e *Editor) Set(path string, v Value) *Editor {
	if !e.ready() {
		return e
	}
	parts := strings.Split(path, ".")
	parent, err := e.objectAt(parts[:len(parts)-1]...)
	if err != nil {
		e.fail(fmt.Errorf("setting %s: %w", path, err))
		return e
	}
	parent.Set(parts[len(parts)-1], v)
	return e
}

// Content renders the current document without writing it.
func (e *Editor) Content() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if e.doc == nil {
		return "", fmt.Errorf("rendering vite config %s: %w", e.path, fileops.ErrNotLoaded)
	}
	return Render(e.doc), nil
}

// Save writes the rendered document.
func (e *Editor) Save() error {
	content, err := e.Content()
	if err != nil {
		return err
	}
	if err := fileops.WriteTextFile(e.path, content); err != nil {
		return fmt.Errorf("saving vite config %s: %w", e.path, err)
	}
	return nil
}

// Verify parses the rendered document as TypeScript.
func (e *Editor) Verify(ctx context.Context) error {
	content, err := e.Content()
	if err != nil {
		return err
	}
	if err := CheckSyntax(ctx, []byte(content)); err != nil {
		return fmt.Errorf("vite config %s: %w", e.path, err)
	}
	return nil
}

// objectAt walks keys from the config root, creating missing objects and
// converting raw object literals into structured ones along the way.
func (e *Editor) objectAt(keys ...string) (*Object, error) {
	cur := e.doc.Config
	for i, key := range keys {
		v, _ := cur.Get(key)
		obj, ok := objectFromRaw(v)
		if !ok {
			return nil, fmt.Errorf("%s is %s, not an object", strings.Join(keys[:i+1], "."), v.Kind())
		}
		cur.Set(key, ObjectValue(obj))
		cur = obj
	}
	return cur, nil
}

func (e *Editor) ready() bool {
	if e.err != nil {
		return false
	}
	if e.doc == nil {
		e.fail(fmt.Errorf("editing vite config %s: %w", e.path, fileops.ErrNotLoaded))
		return false
	}
	return true
}

func (e *Editor) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
