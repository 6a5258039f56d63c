package tsconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/kickstart-labs/kickstart/internal/fileops"
	"github.com/kickstart-labs/kickstart/internal/jsonc"
)

const (
	keyCompilerOptions = "compilerOptions"
	keyTypes           = "types"
	keyPaths           = "paths"
	keyBaseURL         = "baseUrl"
)

// Editor loads, mutates and saves one tsconfig file. All mutations are
// additive: types are deduplicated, and existing compiler options and path
// aliases are never overwritten.
type Editor struct {
	path   string
	root   *jsonc.Object
	loaded bool
	err    error
}

// New returns an editor for the config at path.
func New(path string) *Editor {
	return &Editor{path: path}
}

// Path returns the config path.
func (e *Editor) Path() string { return e.path }

// Exists reports whether the config file is present.
func (e *Editor) Exists() bool { return fileops.PathExists(e.path) }

// Load reads the file, strips comments and trailing commas, and parses it.
func (e *Editor) Load() error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading tsconfig %s: %w", e.path, fileops.ErrNotFound)
		}
		return fmt.Errorf("loading tsconfig %s: %w", e.path, err)
	}

	root := jsonc.NewObject()
	if err := json.Unmarshal(jsonc.Strip(data), root); err != nil {
		return fmt.Errorf("parsing tsconfig %s: %w", e.path, err)
	}

	e.root = root
	e.loaded = true
	return nil
}

// Err returns the first error recorded by a mutator.
func (e *Editor) Err() error { return e.err }

// CompilerOption decodes compilerOptions[key] into v.
func (e *Editor) CompilerOption(key string, v any) (bool, error) {
	if !e.loaded {
		return false, fileops.ErrNotLoaded
	}
	opts, err := e.compilerOptions()
	if err != nil {
		return false, err
	}
	return opts.Get(key, v)
}

// AppendTypes adds entries to compilerOptions.types, skipping ones already
// listed.
func (e *Editor) AppendTypes(types ...string) *Editor {
	e.edit(func(opts *jsonc.Object) error {
		var current []string
		if _, err := opts.Get(keyTypes, &current); err != nil {
			return err
		}
		seen := make(map[string]bool, len(current))
		for _, t := range current {
			seen[t] = true
		}
		for _, t := range types {
			if !seen[t] {
				seen[t] = true
				current = append(current, t)
			}
		}
		if current == nil {
			current = []string{}
		}
		return opts.Set(keyTypes, current)
	})
	return e
}

// AppendCompilerOptions sets options that are not already present.
func (e *Editor) AppendCompilerOptions(options map[string]any) *Editor {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	e.edit(func(opts *jsonc.Object) error {
		for _, k := range keys {
			if opts.Has(k) {
				continue
			}
			if err := opts.Set(k, options[k]); err != nil {
				return err
			}
		}
		return nil
	})
	return e
}

// SetBaseURL sets compilerOptions.baseUrl unless it is already set.
func (e *Editor) SetBaseURL(baseURL string) *Editor {
	return e.AppendCompilerOptions(map[string]any{keyBaseURL: baseURL})
}

// SetPaths adds path aliases. Aliases that already exist keep their targets.
func (e *Editor) SetPaths(paths map[string][]string) *Editor {
	aliases := make([]string, 0, len(paths))
	for alias := range paths {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		e.AddPaths(alias, paths[alias])
	}
	return e
}

// AddPaths adds a single path alias unless it already exists.
func (e *Editor) AddPaths(alias string, targets []string) *Editor {
	e.edit(func(opts *jsonc.Object) error {
		paths := jsonc.NewObject()
		if raw, ok := opts.Raw(keyPaths); ok {
			if err := json.Unmarshal(raw, paths); err != nil {
				return fmt.Errorf("decoding %s: %w", keyPaths, err)
			}
		}
		if paths.Has(alias) {
			return nil
		}
		if err := paths.Set(alias, targets); err != nil {
			return err
		}
		return opts.Set(keyPaths, paths)
	})
	return e
}

// Save writes the config as plain JSON.
func (e *Editor) Save() error {
	if e.err != nil {
		return e.err
	}
	if !e.loaded {
		return fmt.Errorf("saving tsconfig %s: %w", e.path, fileops.ErrNotLoaded)
	}

	data, err := jsonc.Marshal(e.root, "   ")
	if err != nil {
		return fmt.Errorf("saving tsconfig %s: %w", e.path, err)
	}
	if err := fileops.WriteFile(e.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("saving tsconfig %s: %w", e.path, err)
	}
	return nil
}

// edit applies fn to compilerOptions, creating the object when absent.
func (e *Editor) edit(fn func(opts *jsonc.Object) error) {
	if e.err != nil {
		return
	}
	if !e.loaded {
		e.err = fmt.Errorf("editing tsconfig %s: %w", e.path, fileops.ErrNotLoaded)
		return
	}

	opts, err := e.compilerOptions()
	if err == nil {
		err = fn(opts)
	}
	if err == nil {
		err = e.root.Set(keyCompilerOptions, opts)
	}
	if err != nil {
		e.err = fmt.Errorf("editing tsconfig %s: %w", e.path, err)
	}
}

func (e *Editor) compilerOptions() (*jsonc.Object, error) {
	opts := jsonc.NewObject()
	raw, ok := e.root.Raw(keyCompilerOptions)
	if !ok {
		return opts, nil
	}
	if err := json.Unmarshal(raw, opts); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", keyCompilerOptions, err)
	}
	return opts, nil
}
