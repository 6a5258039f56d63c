package fileops

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestWriteTextFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c.txt")

	if err := WriteTextFile(target, "hello"); err != nil {
		t.Fatalf("WriteTextFile() error: %v", err)
	}
	if got := readFile(t, target); got != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestReadTextFileMissing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCopyDirExcludes(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "index.ts"), "export {}")
	writeFile(t, filepath.Join(src, "nested", "a.ts"), "a")
	writeFile(t, filepath.Join(src, "node_modules", "x", "index.js"), "x")
	writeFile(t, filepath.Join(src, ".git", "HEAD"), "ref")
	writeFile(t, filepath.Join(src, ".gitignore"), "dist\n")

	dst := filepath.Join(t.TempDir(), "out")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error: %v", err)
	}

	for _, want := range []string{"index.ts", "nested/a.ts", ".gitignore"} {
		if !PathExists(filepath.Join(dst, want)) {
			t.Errorf("expected %s to be copied", want)
		}
	}
	for _, skip := range []string{"node_modules", ".git"} {
		if PathExists(filepath.Join(dst, skip)) {
			t.Errorf("%s should have been excluded", skip)
		}
	}
}

func TestCopyDirWithSelfAndRename(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "store")
	writeFile(t, filepath.Join(src, "index.ts"), "store")

	dest := filepath.Join(base, "project", "src")
	if err := CopyDirWithSelf(src, dest); err != nil {
		t.Fatalf("CopyDirWithSelf() error: %v", err)
	}
	if got := readFile(t, filepath.Join(dest, "store", "index.ts")); got != "store" {
		t.Errorf("content = %q", got)
	}

	if err := CopyDirWithRename(src, dest, "state"); err != nil {
		t.Fatalf("CopyDirWithRename() error: %v", err)
	}
	if !PathExists(filepath.Join(dest, "state", "index.ts")) {
		t.Error("renamed copy missing")
	}

	if err := CopyDirWithRename(src, dest, "a/b"); err == nil {
		t.Error("expected error for name containing a separator")
	}
	if err := CopyDirWithRename(filepath.Join(base, "missing"), dest, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCopyFS(t *testing.T) {
	fsys := fstest.MapFS{
		"res/router/index.ts":       {Data: []byte("router")},
		"res/router/guard/index.ts": {Data: []byte("guard")},
	}
	dst := filepath.Join(t.TempDir(), "router")
	if err := CopyFS(fsys, "res/router", dst); err != nil {
		t.Fatalf("CopyFS() error: %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "guard", "index.ts")); got != "guard" {
		t.Errorf("content = %q, want %q", got, "guard")
	}
}

func TestEmptyDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "b")

	if err := EmptyDir(dir); err != nil {
		t.Fatalf("EmptyDir() error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("dir has %d entries after EmptyDir", len(entries))
	}
	if err := EmptyDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("EmptyDir on missing dir: %v", err)
	}
}

func TestPackageNames(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		fixed string
	}{
		{"my-app", true, "my-app"},
		{"My App", false, "my-app"},
		{"--weird@@name--", false, "weird--name"},
		{"snake_case", true, "snake_case"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsValidPackageName(tc.in); got != tc.valid {
				t.Errorf("IsValidPackageName(%q) = %v, want %v", tc.in, got, tc.valid)
			}
			if got := ToValidPackageName(tc.in); got != tc.fixed {
				t.Errorf("ToValidPackageName(%q) = %q, want %q", tc.in, got, tc.fixed)
			}
		})
	}
}

func TestSetHTMLTitle(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "replace existing",
			content: "<head>\n  <title>Vite App</title>\n</head>",
			want:    "<title>my-app</title>",
		},
		{
			name:    "insert before head close",
			content: "<head>\n  <meta charset=\"UTF-8\">\n</head>",
			want:    "<title>my-app</title>\n</head>",
		},
		{
			name:    "insert after head open",
			content: "<html><head lang=\"en\"><body></body></html>",
			want:    "<head lang=\"en\">\n  <title>my-app</title>",
		},
		{
			name:    "prepend",
			content: "<body></body>",
			want:    "<title>my-app</title>\n<body>",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SetHTMLTitle(tc.content, "my-app")
			if !strings.Contains(got, tc.want) {
				t.Errorf("SetHTMLTitle() = %q, want it to contain %q", got, tc.want)
			}
		})
	}

	if got := SetHTMLTitle("<title>x</title>", "a<b"); !strings.Contains(got, "a&lt;b") {
		t.Errorf("title not escaped: %q", got)
	}
}
