package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/kickstart-labs/kickstart/internal/fileops"
)

// Requirements groups the packages a tool needs.
type Requirements struct {
	Dependencies    map[string]string `yaml:"dependencies,omitempty"`
	DevDependencies map[string]string `yaml:"devDependencies,omitempty"`
}

// Editor loads, mutates and saves one package.json file. Mutators are
// chainable; the first failure is kept and returned by Err and Save.
type Editor struct {
	path     string
	doc      *Document
	err      error
	warnings []string
}

// New returns an editor for the manifest at path.
func New(path string) *Editor {
	return &Editor{path: path}
}

// Path returns the manifest path.
func (e *Editor) Path() string { return e.path }

// Exists reports whether the manifest file is present.
func (e *Editor) Exists() bool { return fileops.PathExists(e.path) }

// Load reads and parses the manifest. The file must exist.
func (e *Editor) Load() error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", e.path, fileops.ErrNotFound)
		}
		return fmt.Errorf("loading %s: %w", e.path, err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return fmt.Errorf("loading %s: %w", e.path, err)
	}

	warnings, err := SchemaWarnings(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", e.path, err)
	}
	for _, w := range warnings {
		e.warn("package.json: %s", w)
	}

	e.doc = doc
	return nil
}

// Document returns the loaded document, or nil before Load.
func (e *Editor) Document() *Document { return e.doc }

// Err returns the first error recorded by a mutator.
func (e *Editor) Err() error { return e.err }

// Warnings returns non-fatal findings gathered during load and edits.
func (e *Editor) Warnings() []string {
	return append([]string(nil), e.warnings...)
}

// SetField sets a top-level field, replacing any existing value.
func (e *Editor) SetField(key string, value any) *Editor {
	if !e.ready() {
		return e
	}
	if err := e.doc.setField(key, value); err != nil {
		e.fail(fmt.Errorf("setting %s: %w", key, err))
	}
	return e
}

// AddDependency merges deps into dependencies. New versions replace old ones.
func (e *Editor) AddDependency(deps map[string]string) *Editor {
	return e.addDeps(FieldDependencies, deps)
}

// AddDevDependency merges deps into devDependencies.
func (e *Editor) AddDevDependency(deps map[string]string) *Editor {
	return e.addDeps(FieldDevDependencies, deps)
}

// AddBothDependencies merges both groups of r.
func (e *Editor) AddBothDependencies(r Requirements) *Editor {
	return e.AddDependency(r.Dependencies).AddDevDependency(r.DevDependencies)
}

// AddScript merges scripts. Existing names keep their position and take the
// new command; new names are appended in sorted order.
func (e *Editor) AddScript(scripts map[string]string) *Editor {
	if !e.ready() {
		return e
	}
	for _, name := range sortedKeys(scripts) {
		cmd := scripts[name]
		if err := e.doc.setScript(name, cmd); err != nil {
			e.fail(fmt.Errorf("adding script %s: %w", name, err))
			return e
		}
		if err := checkScript(name, cmd); err != nil {
			e.warn("script %q: %v", name, err)
		}
	}
	return e
}

// Save writes the manifest. Saving twice without edits yields the same bytes.
func (e *Editor) Save() error {
	if e.err != nil {
		return e.err
	}
	if e.doc == nil {
		return fmt.Errorf("saving %s: %w", e.path, fileops.ErrNotLoaded)
	}

	data, err := e.doc.Marshal()
	if err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	if err := fileops.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	return nil
}

func (e *Editor) addDeps(field string, deps map[string]string) *Editor {
	if !e.ready() || len(deps) == 0 {
		return e
	}
	e.doc.mergeDeps(field, deps)
	for _, name := range sortedKeys(deps) {
		if err := checkRange(deps[name]); err != nil {
			e.warn("%s %s@%s: %v", field, name, deps[name], err)
		}
	}
	return e
}

func (e *Editor) ready() bool {
	if e.err != nil {
		return false
	}
	if e.doc == nil {
		e.fail(fmt.Errorf("editing %s: %w", e.path, fileops.ErrNotLoaded))
		return false
	}
	return true
}

func (e *Editor) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Editor) warn(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}
