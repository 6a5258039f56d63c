package gitignore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kickstart-labs/kickstart/internal/fileops"
)

// DefaultSeparator labels sections added by AppendLines.
const DefaultSeparator = "Added by CLI"

// Option configures an Editor.
type Option func(*Editor)

// WithSeparator sets the comment written above AppendLines sections.
func WithSeparator(text string) Option {
	return func(e *Editor) {
		if text != "" {
			e.separator = text
		}
	}
}

// Editor holds the content of one .gitignore. A missing file loads as empty.
// After any append the content ends in exactly one newline.
type Editor struct {
	path      string
	separator string
	content   string
	loaded    bool
	err       error
}

// New returns an editor for the ignore file at path.
func New(path string, opts ...Option) *Editor {
	e := &Editor{path: path, separator: DefaultSeparator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) Path() string { return e.path }

// Exists reports whether the ignore file is present.
func (e *Editor) Exists() bool { return fileops.PathExists(e.path) }

// Load reads the file and terminates the last line. A missing file is not an
// error.
func (e *Editor) Load() error {
	data, err := os.ReadFile(e.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.content = ""
	case err != nil:
		return fmt.Errorf("loading %s: %w", e.path, err)
	default:
		e.content = string(data)
	}
	if e.content != "" && !strings.HasSuffix(e.content, "\n") {
		e.content += "\n"
	}
	e.loaded = true
	return nil
}

// Read returns the loaded content, or the file content when not loaded.
func (e *Editor) Read() (string, error) {
	if e.loaded {
		return e.content, nil
	}
	data, err := os.ReadFile(e.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", e.path, err)
	}
	return string(data), nil
}

// Write replaces the file content on disk and in the editor.
func (e *Editor) Write(content string) error {
	if err := fileops.WriteTextFile(e.path, content); err != nil {
		return fmt.Errorf("writing %s: %w", e.path, err)
	}
	e.content = content
	e.loaded = true
	return nil
}

// Err returns the first error recorded by a mutator.
func (e *Editor) Err() error { return e.err }

// Contains reports whether pattern occurs anywhere in the content.
func (e *Editor) Contains(pattern string) (bool, error) {
	if !e.loaded {
		return false, fmt.Errorf("checking %s: %w", e.path, fileops.ErrNotLoaded)
	}
	return strings.Contains(e.content, pattern), nil
}

// Append adds text to the end of the file. A single line that is already
// present is skipped.
func (e *Editor) Append(text string) *Editor {
	if !e.ready() {
		return e
	}
	line := strings.TrimSpace(text)
	if line != "" && !strings.Contains(line, "\n") && e.hasLine(line) {
		return e
	}
	e.appendText(text)
	return e
}

// AppendLines adds lines as a section under the configured separator
// comment.
func (e *Editor) AppendLines(lines ...string) *Editor {
	return e.AppendSection(e.separator, lines...)
}

// AppendSection adds lines under a "# comment" header. Lines already present
// are dropped; if none remain, nothing is written, header included. An empty
// comment writes the lines without a header.
func (e *Editor) AppendSection(comment string, lines ...string) *Editor {
	if !e.ready() {
		return e
	}

	seen := make(map[string]bool)
	var fresh []string
	for _, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" || seen[t] || e.hasLine(t) {
			continue
		}
		seen[t] = true
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return e
	}

	var b strings.Builder
	if comment != "" {
		if strings.TrimSpace(e.content) != "" {
			b.WriteString("\n")
		}
		b.WriteString("# " + strings.TrimSpace(strings.TrimPrefix(comment, "#")) + "\n")
	}
	b.WriteString(strings.Join(fresh, "\n"))
	e.appendText(b.String())
	return e
}

// Content returns the current content.
func (e *Editor) Content() string { return e.content }

// Save writes the content to disk.
func (e *Editor) Save() error {
	if e.err != nil {
		return e.err
	}
	if !e.loaded {
		return fmt.Errorf("saving %s: %w", e.path, fileops.ErrNotLoaded)
	}
	if err := fileops.WriteTextFile(e.path, e.content); err != nil {
		return fmt.Errorf("saving %s: %w", e.path, err)
	}
	return nil
}

func (e *Editor) appendText(text string) {
	text = strings.TrimRight(text, "\r\n")
	if e.content != "" && !strings.HasSuffix(e.content, "\n") {
		e.content += "\n"
	}
	if text == "" {
		return
	}
	e.content += text + "\n"
}

func (e *Editor) hasLine(line string) bool {
	for _, l := range strings.Split(e.content, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}

func (e *Editor) ready() bool {
	if e.err != nil {
		return false
	}
	if !e.loaded {
		e.err = fmt.Errorf("editing %s: %w", e.path, fileops.ErrNotLoaded)
		return false
	}
	return true
}
