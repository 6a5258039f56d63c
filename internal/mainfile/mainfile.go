package mainfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kickstart-labs/kickstart/internal/fileops"
)

const (
	// CreateStatement is the first setup statement of every entry file.
	CreateStatement = "const app = createApp(App);"
	// MountStatement always ends the file.
	MountStatement = "app.mount('#app')"
)

var commentStart = regexp.MustCompile(`^\s*(//|/\*)`)

// Editor holds the import block and setup statements of an entry file.
type Editor struct {
	path     string
	imports  []string
	setup    []string
	initDone bool
	err      error
}

// New returns an editor for the entry file at path.
func New(path string) *Editor {
	return &Editor{path: path}
}

func (e *Editor) Path() string { return e.path }

// Exists reports whether the entry file is present.
func (e *Editor) Exists() bool { return fileops.PathExists(e.path) }

// Init reads the file, creating it empty when missing, and records its
// import lines.
func (e *Editor) Init() error {
	if err := fileops.EnsureFile(e.path); err != nil {
		return fmt.Errorf("initializing %s: %w", e.path, err)
	}
	src, err := fileops.ReadTextFile(e.path)
	if err != nil {
		return fmt.Errorf("initializing %s: %w", e.path, err)
	}

	e.imports = nil
	for _, line := range strings.Split(src, "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "import ") {
			e.imports = append(e.imports, trimmed)
		}
	}
	e.setup = []string{CreateStatement}
	e.initDone = true
	return nil
}

// Err returns the first error recorded by a mutator.
func (e *Editor) Err() error { return e.err }

// Imports returns the current import lines.
func (e *Editor) Imports() []string { return append([]string(nil), e.imports...) }

// SetupCode returns the current setup statements.
func (e *Editor) SetupCode() []string { return append([]string(nil), e.setup...) }

// AddImports appends import lines. Duplicates are not removed.
func (e *Editor) AddImports(lines ...string) *Editor {
	if !e.ready() {
		return e
	}
	for _, l := range lines {
		e.imports = append(e.imports, strings.TrimSpace(l))
	}
	return e
}

// AddSetupCodes appends setup statements, optionally preceded by a blank
// line.
func (e *Editor) AddSetupCodes(lines []string, leadingBlankLine bool) *Editor {
	if !e.ready() {
		return e
	}
	if leadingBlankLine && len(lines) > 0 {
		e.setup = append(e.setup, "")
	}
	for _, l := range lines {
		e.setup = append(e.setup, strings.TrimRight(l, "\r\n"))
	}
	return e
}

// Content renders the entry file.
func (e *Editor) Content() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if !e.initDone {
		return "", fmt.Errorf("rendering %s: %w", e.path, fileops.ErrNotLoaded)
	}

	parts := append([]string(nil), e.imports...)
	parts = append(parts, "")
	for i, code := range e.setup {
		parts = append(parts, code)
		if i+1 < len(e.setup) && isStatement(code) && commentStart.MatchString(e.setup[i+1]) {
			parts = append(parts, "")
		}
	}
	parts = append(parts, "", MountStatement)
	return strings.Join(parts, "\n") + "\n", nil
}

// Save writes the rendered entry file.
func (e *Editor) Save() error {
	content, err := e.Content()
	if err != nil {
		return err
	}
	if err := fileops.WriteTextFile(e.path, content); err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	return nil
}

// isStatement reports whether code is neither blank nor a comment.
func isStatement(code string) bool {
	return strings.TrimSpace(code) != "" && !commentStart.MatchString(code)
}

func (e *Editor) ready() bool {
	if e.err != nil {
		return false
	}
	if !e.initDone {
		e.err = fmt.Errorf("editing %s: %w", e.path, fileops.ErrNotLoaded)
		return false
	}
	return true
}
