package relocate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bladeengine/bladegen/internal/platform"
)

var (
	// ErrSourceMissing is returned when the path to move does not exist.
	ErrSourceMissing = errors.New("source path does not exist")
	// ErrDestinationParentMissing is returned when the destination's parent
	// directory does not exist.
	ErrDestinationParentMissing = errors.New("destination parent directory does not exist")
)

// excludedNames are stripped from relocated trees.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
}

// Move relocates src to dst. dst must not exist and its parent must.
func Move(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", src, ErrSourceMissing)
		}
		return fmt.Errorf("inspecting %s: %w", src, err)
	}

	parent := filepath.Dir(dst)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", parent, ErrDestinationParentMissing)
	}

	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s: %w", dst, fs.ErrExist)
	}

	err = os.Rename(src, dst)
	if err != nil && !platform.IsCrossDevice(err) {
		return fmt.Errorf("moving %s to %s: %w", src, dst, err)
	}
	if err != nil {
		if err := copyEntry(src, dst, srcInfo); err != nil {
			_ = os.RemoveAll(dst)
			return fmt.Errorf("copying %s to %s: %w", src, dst, err)
		}
		if err := os.RemoveAll(src); err != nil {
			return fmt.Errorf("removing %s after copy: %w", src, err)
		}
		return nil
	}

	if srcInfo.IsDir() {
		if err := stripExcluded(dst); err != nil {
			return fmt.Errorf("cleaning %s: %w", dst, err)
		}
	}
	return nil
}

// RemoveTree deletes path and everything below it.
func RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// stripExcluded removes excluded entries anywhere below root.
func stripExcluded(root string) error {
	var doomed []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && shouldExclude(d.Name()) {
			doomed = append(doomed, path)
			if d.IsDir() {
				return filepath.SkipDir
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, p := range doomed {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(src, dst string, info fs.FileInfo) error {
	switch {
	case info.IsDir():
		return copyDir(src, dst)
	case info.Mode()&fs.ModeSymlink != 0:
		return platform.CopySymlink(src, dst)
	default:
		return copyFile(src, dst)
	}
}

// copyDir recursively copies src to dst, excluding entries in excludedNames.
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if shouldExclude(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type()&fs.ModeSymlink != 0:
			if err := platform.CopySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are skipped.
	}

	return platform.Chmod(dst, srcInfo.Mode().Perm())
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode().Perm()); err != nil {
		return err
	}
	return platform.Chmod(dst, srcInfo.Mode().Perm())
}

func shouldExclude(name string) bool {
	return excludedNames[name]
}
