package scaffold

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// tmpSuffix is appended to the target dir while a clone is in flight.
const tmpSuffix = ".tmp"

// githubBaseURL is the clone prefix for GitHub sources. Tests point it at a
// local directory.
var githubBaseURL = "https://github.com/"

// Source is a parsed remote template location.
type Source struct {
	Owner  string
	Repo   string
	Branch string // empty means the remote's default branch
}

// CloneURL returns the URL handed to git clone.
func (s Source) CloneURL() string {
	return githubBaseURL + s.Owner + "/" + s.Repo
}

func (s Source) String() string {
	out := "github:" + s.Owner + "/" + s.Repo
	if s.Branch != "" {
		out += "#" + s.Branch
	}
	return out
}

var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/([^/]+)/([^/#]+)(?:/tree/([^/]+))?/?$`),
	regexp.MustCompile(`^github:([^/]+)/([^/#]+)(?:#(.+))?$`),
	regexp.MustCompile(`^([^/:\s]+)/([^/#\s]+)(?:#(.+))?$`),
}

// ParseSource parses "github:owner/repo[#branch]", a github.com URL
// (optionally with /tree/<branch>), or a bare "owner/repo[#branch]".
func ParseSource(src string) (Source, error) {
	src = strings.TrimSpace(src)
	for _, re := range sourcePatterns {
		m := re.FindStringSubmatch(src)
		if m == nil {
			continue
		}
		return Source{
			Owner:  m[1],
			Repo:   strings.TrimSuffix(m[2], ".git"),
			Branch: m[3],
		}, nil
	}
	return Source{}, fmt.Errorf("invalid GitHub source %q (want github:owner/repo[#branch])", src)
}

// IsGitHubSource reports whether src parses as a GitHub location.
func IsGitHubSource(src string) bool {
	_, err := ParseSource(src)
	return err == nil
}

// Download shallow-clones src into targetDir and drops its .git directory.
//
// The clone is atomic: it lands in a .tmp sibling first and replaces
// targetDir only on success.
func Download(ctx context.Context, src, targetDir string) error {
	source, err := ParseSource(src)
	if err != nil {
		return err
	}
	if err := ensureGit(); err != nil {
		return err
	}

	tmpDir := targetDir + tmpSuffix
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := shallowClone(ctx, source, tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("downloading template %s: %w", source, err)
	}
	if err := os.RemoveAll(filepath.Join(tmpDir, ".git")); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing template git metadata: %w", err)
	}

	if err := moveInto(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing template download: %w", err)
	}
	return nil
}

// moveInto renames src to dst, or moves src's entries into dst when dst
// already exists. The existing dst directory itself is kept, since it may be
// the working directory.
func moveInto(src, dst string) error {
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		return os.Rename(src, dst)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		target := filepath.Join(dst, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return err
		}
		if err := os.Rename(filepath.Join(src, entry.Name()), target); err != nil {
			return err
		}
	}
	return os.RemoveAll(src)
}

func shallowClone(ctx context.Context, source Source, dir string) error {
	args := []string{"clone", "--depth=1"}
	if source.Branch != "" {
		args = append(args, "--branch", source.Branch)
	}
	args = append(args, source.CloneURL(), dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
