package pkgmanager

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	for _, pm := range []string{"npm", "yarn", "pnpm"} {
		if err := Validate(pm); err != nil {
			t.Errorf("Validate(%q) error: %v", pm, err)
		}
	}
	for _, pm := range []string{"", "bun", "PNPM"} {
		if err := Validate(pm); err == nil {
			t.Errorf("Validate(%q) should fail", pm)
		}
	}
}

// fakeBin puts an executable shell script named name on an isolated PATH.
func fakeBin(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts as executables need a unix system")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
}

func TestInstallRunsPackageManager(t *testing.T) {
	fakeBin(t, "pnpm", `echo "ran $1 in $(pwd)"`+"\n")

	dir := t.TempDir()
	var out bytes.Buffer
	if err := Install(context.Background(), dir, "pnpm", &out, &out); err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if !strings.Contains(out.String(), "ran install") {
		t.Errorf("output = %q", out.String())
	}
}

func TestInstallFailure(t *testing.T) {
	fakeBin(t, "npm", "exit 3\n")

	err := Install(context.Background(), t.TempDir(), "npm", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "npm") {
		t.Fatalf("Install() error = %v, want npm failure", err)
	}
}

func TestInstallMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if err := Install(context.Background(), t.TempDir(), "yarn", nil, nil); err == nil {
		t.Fatal("Install() should fail when yarn is missing")
	}
}

func TestDetect(t *testing.T) {
	fakeBin(t, "yarn", "exit 0\n")
	if got := Detect(); got != "yarn" {
		t.Errorf("Detect() = %q, want yarn", got)
	}
	if Available("pnpm") {
		t.Error("pnpm should not be available on the isolated PATH")
	}
}

func TestInitGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# demo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitGit(context.Background(), dir); err != nil {
		t.Fatalf("InitGit() error: %v", err)
	}

	cmd := exec.Command("git", "log", "--oneline")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git log: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "Initial commit") {
		t.Errorf("git log = %q", out)
	}
}
