package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kickstart-labs/kickstart/internal/fileops"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadEditor(t *testing.T, content string) *Editor {
	t.Helper()
	e := New(writeManifest(t, content))
	if err := e.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return e
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLoadMissingFile(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "package.json"))
	err := e.Load()
	if !errors.Is(err, fileops.ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestMutatorBeforeLoad(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "package.json"))
	e.AddDependency(map[string]string{"vue": "^3.5.0"}).AddScript(map[string]string{"dev": "vite"})

	if !errors.Is(e.Err(), fileops.ErrNotLoaded) {
		t.Fatalf("Err() = %v, want ErrNotLoaded", e.Err())
	}
	if err := e.Save(); !errors.Is(err, fileops.ErrNotLoaded) {
		t.Fatalf("Save() = %v, want ErrNotLoaded", err)
	}
}

func TestAddDependencySortsKeys(t *testing.T) {
	e := loadEditor(t, `{"dependencies":{"vue":"^3.0.0"}}`)
	e.AddDependency(map[string]string{"axios": "^1.10.0"})
	if err := e.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	want := "{\n  \"dependencies\": {\n    \"axios\": \"^1.10.0\",\n    \"vue\": \"^3.0.0\"\n  }\n}\n"
	if got := readBack(t, e.Path()); got != want {
		t.Errorf("saved manifest:\n%s\nwant:\n%s", got, want)
	}
}

func TestDependencyUnion(t *testing.T) {
	e := loadEditor(t, `{"devDependencies":{"vite":"^6.0.0","typescript":"~5.6.0"}}`)
	e.AddDevDependency(map[string]string{"vite": "^7.0.0", "sass": "^1.94.0"})

	got := e.Document().DevDependencies()
	want := map[string]string{"vite": "^7.0.0", "typescript": "~5.6.0", "sass": "^1.94.0"}
	if len(got) != len(want) {
		t.Fatalf("devDependencies = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("devDependencies[%s] = %q, want %q", k, got[k], v)
		}
	}
}

func TestSavedDependenciesAreSorted(t *testing.T) {
	e := loadEditor(t, `{"name":"demo","dependencies":{"zod":"^3.0.0","vue":"^3.5.0"}}`)
	e.AddDependency(map[string]string{"pinia": "^3.0.3", "axios": "^1.10.0", "qs": "^6.14.0"})
	if err := e.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	saved := readBack(t, e.Path())
	order := []string{"axios", "pinia", "qs", "vue", "zod"}
	last := -1
	for _, name := range order {
		idx := strings.Index(saved, `"`+name+`"`)
		if idx < last {
			t.Fatalf("%s out of order in:\n%s", name, saved)
		}
		last = idx
	}
}

func TestCanonicalFieldOrder(t *testing.T) {
	e := loadEditor(t, `{
  "custom": true,
  "devDependencies": {"vite": "^7.0.0"},
  "scripts": {"dev": "vite"},
  "version": "0.0.0",
  "name": "demo",
  "private": true,
  "type": "module"
}`)
	if err := e.Save(); err != nil {
		t.Fatal(err)
	}

	saved := readBack(t, e.Path())
	order := []string{`"name"`, `"version"`, `"private"`, `"type"`, `"scripts"`, `"devDependencies"`, `"custom"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(saved, key)
		if idx < 0 || idx < last {
			t.Fatalf("field %s out of canonical order in:\n%s", key, saved)
		}
		last = idx
	}
}

func TestSetFieldReplacesStructuredFields(t *testing.T) {
	e := loadEditor(t, `{"scripts":{"dev":"vite"},"dependencies":{"vue":"^3.0.0"}}`)
	e.SetField("dependencies", map[string]string{"react": "^19.0.0"}).
		SetField("scripts", map[string]string{"start": "node ."})
	if err := e.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	saved := readBack(t, e.Path())
	for _, want := range []string{`"react": "^19.0.0"`, `"start": "node ."`} {
		if !strings.Contains(saved, want) {
			t.Errorf("saved manifest missing %s:\n%s", want, saved)
		}
	}
	for _, gone := range []string{`"vue"`, `"dev"`} {
		if strings.Contains(saved, gone) {
			t.Errorf("saved manifest still has %s:\n%s", gone, saved)
		}
	}

	e.SetField("devDependencies", []string{"not", "a", "map"})
	if e.Err() == nil {
		t.Error("SetField() should reject a non-map dependency field")
	}
}

func TestScriptsKeepInsertionOrder(t *testing.T) {
	e := loadEditor(t, `{"scripts":{"dev":"vite","build":"vue-tsc -b && vite build"}}`)
	e.AddScript(map[string]string{"lint": "eslint .", "dev": "vite --host"})

	got := e.Document().Scripts()
	want := []Script{
		{Name: "dev", Command: "vite --host"},
		{Name: "build", Command: "vue-tsc -b && vite build"},
		{Name: "lint", Command: "eslint ."},
	}
	if len(got) != len(want) {
		t.Fatalf("Scripts() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scripts()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if err := e.Save(); err != nil {
		t.Fatal(err)
	}
	if saved := readBack(t, e.Path()); !strings.Contains(saved, "vue-tsc -b && vite build") {
		t.Errorf("ampersands were escaped:\n%s", saved)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	e := loadEditor(t, `{"name":"demo","dependencies":{"vue":"^3.5.0"},"extra":{"nested":[1,2]}}`)
	e.SetField("name", "renamed").AddDevDependency(map[string]string{"vite": "^7.0.0"})

	if err := e.Save(); err != nil {
		t.Fatal(err)
	}
	first := readBack(t, e.Path())
	if err := e.Save(); err != nil {
		t.Fatal(err)
	}
	if second := readBack(t, e.Path()); first != second {
		t.Errorf("second save differs:\n%s\nvs\n%s", first, second)
	}
}

func TestUnknownFieldsPassThrough(t *testing.T) {
	e := loadEditor(t, `{"name":"demo","browserslist":["> 1%","last 2 versions"],"volta":{"node":"20.11.0"}}`)
	if err := e.Save(); err != nil {
		t.Fatal(err)
	}
	saved := readBack(t, e.Path())
	for _, want := range []string{`"> 1%"`, `"volta"`, `"node": "20.11.0"`} {
		if !strings.Contains(saved, want) {
			t.Errorf("saved manifest missing %s:\n%s", want, saved)
		}
	}
}

func TestAddBothDependencies(t *testing.T) {
	e := loadEditor(t, `{"name":"demo"}`)
	e.AddBothDependencies(Requirements{
		Dependencies:    map[string]string{"axios": "^1.10.0"},
		DevDependencies: map[string]string{"@types/qs": "^6.14.0"},
	})
	if e.Err() != nil {
		t.Fatal(e.Err())
	}
	if e.Document().Dependencies()["axios"] != "^1.10.0" {
		t.Error("axios not added to dependencies")
	}
	if e.Document().DevDependencies()["@types/qs"] != "^6.14.0" {
		t.Error("@types/qs not added to devDependencies")
	}
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edit    func(*Editor)
		want    string
	}{
		{
			name:    "schema violation",
			content: `{"name":"Not Valid"}`,
			edit:    func(*Editor) {},
			want:    "/name",
		},
		{
			name:    "bad range",
			content: `{"name":"demo"}`,
			edit: func(e *Editor) {
				e.AddDependency(map[string]string{"vue": "not-a-range!!"})
			},
			want: "vue@not-a-range!!",
		},
		{
			name:    "bad script",
			content: `{"name":"demo"}`,
			edit: func(e *Editor) {
				e.AddScript(map[string]string{"broken": "echo 'unterminated"})
			},
			want: `script "broken"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := loadEditor(t, tt.content)
			tt.edit(e)
			found := false
			for _, w := range e.Warnings() {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("Warnings() = %v, want one containing %q", e.Warnings(), tt.want)
			}
		})
	}
}

func TestNoWarningsForCleanEdits(t *testing.T) {
	e := loadEditor(t, `{"name":"demo","private":true,"type":"module"}`)
	e.AddDependency(map[string]string{"vue-router": "^4.5.1", "local": "workspace:*"}).
		AddScript(map[string]string{"lint:fix": "eslint . --fix && prettier --write src/"})
	if w := e.Warnings(); len(w) != 0 {
		t.Errorf("Warnings() = %v, want none", w)
	}
}

func TestSchemaWarnings(t *testing.T) {
	clean, err := SchemaWarnings([]byte(`{"name":"demo","version":"1.0.0","private":true}`))
	if err != nil || len(clean) != 0 {
		t.Fatalf("SchemaWarnings(clean) = %v, %v", clean, err)
	}

	warnings, err := SchemaWarnings([]byte(`{"name":"Not Valid"}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) == 0 || !strings.HasPrefix(warnings[0], "/name: ") {
		t.Errorf("SchemaWarnings() = %q, want a /name warning", warnings)
	}
	seen := make(map[string]bool)
	for _, w := range warnings {
		if seen[w] {
			t.Errorf("duplicate warning %q", w)
		}
		seen[w] = true
	}

	if _, err := SchemaWarnings([]byte(`{"name":`)); err == nil {
		t.Error("SchemaWarnings() should fail on malformed JSON")
	}
}
