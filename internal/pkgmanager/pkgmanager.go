// Package pkgmanager runs the external processes that finish a generated
// project: dependency installation and the initial git commit.
package pkgmanager

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
)

// Supported returns the package managers create accepts, in detection order.
func Supported() []string {
	return []string{"pnpm", "yarn", "npm"}
}

// Validate reports whether pm is a supported package manager.
func Validate(pm string) error {
	if !slices.Contains(Supported(), pm) {
		return fmt.Errorf("unsupported package manager %q (want one of %s)", pm, strings.Join(Supported(), ", "))
	}
	return nil
}

// Available reports whether pm is on PATH.
func Available(pm string) bool {
	_, err := exec.LookPath(pm)
	return err == nil
}

// Detect returns the first supported package manager found on PATH, falling
// back to npm.
func Detect() string {
	for _, pm := range Supported() {
		if Available(pm) {
			return pm
		}
	}
	return "npm"
}

// Install runs "<pm> install" in dir, streaming the tool's output.
func Install(ctx context.Context, dir, pm string, stdout, stderr io.Writer) error {
	if err := Validate(pm); err != nil {
		return err
	}
	if _, err := exec.LookPath(pm); err != nil {
		return fmt.Errorf("%s is required but not found in PATH", pm)
	}

	cmd := exec.CommandContext(ctx, pm, "install")
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("installing dependencies with %s: %w", pm, err)
	}
	return nil
}

// InitGit creates a repository in dir and records an initial commit.
func InitGit(ctx context.Context, dir string) error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}

	steps := [][]string{
		{"init", "-q"},
		{"add", "."},
		{"commit", "-q", "-m", "Initial commit"},
	}
	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
		}
	}
	return nil
}
