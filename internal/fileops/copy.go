package fileops

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// excludedNames are directories skipped by every copy helper.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// PathExists reports whether path exists. Errors other than "not exist"
// are treated as existing so callers do not silently overwrite.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// EnsureDir creates dir and any parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// EmptyDir removes every entry inside dir, keeping dir itself.
// A missing dir is a no-op.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// CopyDir recursively copies the contents of src into dst.
func CopyDir(src, dst string) error {
	if err := copyDir(os.DirFS(src), ".", dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// CopyDirWithSelf copies src, including the directory itself, into destParent.
// CopyDirWithSelf("res/store", "app/src") produces app/src/store.
func CopyDirWithSelf(src, destParent string) error {
	return CopyDirWithRename(src, destParent, filepath.Base(src))
}

// CopyDirWithRename copies src into destParent under the name newName.
func CopyDirWithRename(src, destParent, newName string) error {
	if !PathExists(src) {
		return fmt.Errorf("source directory %s: %w", src, ErrNotFound)
	}
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return fmt.Errorf("invalid directory name %q", newName)
	}
	return CopyDir(src, filepath.Join(destParent, newName))
}

// CopyFS copies root of fsys into dst. It is used to materialize embedded
// templates and resources.
func CopyFS(fsys fs.FS, root, dst string) error {
	if err := copyDir(fsys, root, dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", root, dst, err)
	}
	return nil
}

// CopyFileToProject copies one file to dst, creating parent directories and
// overwriting an existing file.
func CopyFileToProject(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source file %s: %w", src, ErrNotFound)
		}
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a file", src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	return WriteFile(dst, data, info.Mode().Perm())
}

// copyDir walks root inside fsys and mirrors it under dst, excluding
// entries in excludedNames.
func copyDir(fsys fs.FS, root, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := fsJoin(root, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(fsys, srcPath, dstPath); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			data, err := fs.ReadFile(fsys, srcPath)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dstPath, data, 0644); err != nil {
				return err
			}
		}
		// Symlinks and special files are skipped.
	}

	return nil
}

// fsJoin joins fs.FS path elements, which always use forward slashes.
func fsJoin(root, name string) string {
	if root == "." || root == "" {
		return name
	}
	return root + "/" + name
}
