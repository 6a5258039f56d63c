package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/kickstart-labs/kickstart/internal/fileops"
	"github.com/kickstart-labs/kickstart/internal/manifest"
)

// Data holds the variables available to .tmpl files.
type Data struct {
	Name           string // directory name as typed by the user
	PackageName    string // derived: npm-safe form of Name
	PackageManager string
}

// NewData derives the template variables for a project name.
func NewData(name, packageManager string) Data {
	if packageManager == "" {
		packageManager = "npm"
	}
	return Data{
		Name:           name,
		PackageName:    fileops.ToValidPackageName(name),
		PackageManager: packageManager,
	}
}

// Result holds the outcome of materializing a template.
type Result struct {
	OutputDir string
	Files     []string // slash-separated, relative to OutputDir, sorted
	Warnings  []string
}

// Materialize writes template t into outputDir, which must be missing or
// empty. Local templates are rendered from the embedded file tree; remote
// ones are cloned.
func Materialize(ctx context.Context, t Template, outputDir string, data Data) (*Result, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if entries, err := os.ReadDir(outputDir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	if t.IsRemote() {
		if err := Download(ctx, t.Source, outputDir); err != nil {
			return nil, err
		}
	} else if err := renderLocal(ctx, t, outputDir, data, result); err != nil {
		return nil, err
	}

	files, err := listFiles(outputDir)
	if err != nil {
		return nil, err
	}
	result.Files = files

	// Validate the generated package.json against JSON Schema.
	manifestFile := filepath.Join(outputDir, "package.json")
	if raw, err := os.ReadFile(manifestFile); err == nil {
		warnings, err := manifest.SchemaWarnings(raw)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not validate package.json: %v", err))
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, "package.json: "+w)
		}
	}

	return result, nil
}

func renderLocal(ctx context.Context, t Template, outputDir string, data Data, result *Result) error {
	root := path.Join("scaffolds", t.Source)
	if _, err := fs.Stat(scaffoldFS, root); err != nil {
		return fmt.Errorf("template set %q not found: %w", t.Source, err)
	}

	return fs.WalkDir(scaffoldFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, root+"/")
		body, err := fs.ReadFile(scaffoldFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", rel, err)
		}

		if strings.HasSuffix(rel, ".tmpl") {
			rel = strings.TrimSuffix(rel, ".tmpl")
			tmpl, err := template.New(rel).Parse(string(body))
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", rel, err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("executing template %s: %w", rel, err)
			}
			body = buf.Bytes()
		}

		return fileops.WriteFile(filepath.Join(outputDir, filepath.FromSlash(rel)), body, 0644)
	})
}

func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
