package relocate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMoveDirectory(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "clone", "shaders")
	writeFile(t, filepath.Join(src, "default.vert"), "void main() {}")
	writeFile(t, filepath.Join(src, "nested", "text.frag"), "void main() {}")

	dst := filepath.Join(tmp, "project", "shaders")
	mkdir(t, filepath.Dir(dst))

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}

	assertExists(t, filepath.Join(dst, "default.vert"))
	assertExists(t, filepath.Join(dst, "nested", "text.frag"))
	assertNotExists(t, src)
}

func TestMoveFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "tex_DebugUVTiles.png")
	writeFile(t, src, "png")

	dst := filepath.Join(tmp, "sprites", "tex_DebugUVTiles.png")
	mkdir(t, filepath.Dir(dst))

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}
	assertExists(t, dst)
	assertNotExists(t, src)
}

func TestMoveStripsGitMetadata(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "BladeEngine")
	writeFile(t, filepath.Join(src, "src", "Core", "Game.hpp"), "#pragma once")
	writeFile(t, filepath.Join(src, "vendor", "glm", ".git"), "gitdir: ../../.git/modules/glm")
	writeFile(t, filepath.Join(src, ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(src, ".DS_Store"), "")

	dst := filepath.Join(tmp, "project", "BladeEngine")
	mkdir(t, filepath.Dir(dst))

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move: %v", err)
	}

	assertExists(t, filepath.Join(dst, "src", "Core", "Game.hpp"))
	assertNotExists(t, filepath.Join(dst, "vendor", "glm", ".git"))
	assertNotExists(t, filepath.Join(dst, ".git"))
	assertNotExists(t, filepath.Join(dst, ".DS_Store"))
}

func TestMoveMissingSource(t *testing.T) {
	tmp := t.TempDir()
	err := Move(filepath.Join(tmp, "nope"), filepath.Join(tmp, "dst"))
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("err = %v, want ErrSourceMissing", err)
	}
}

func TestMoveMissingDestinationParent(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "file.txt")
	writeFile(t, src, "x")

	err := Move(src, filepath.Join(tmp, "missing", "file.txt"))
	if !errors.Is(err, ErrDestinationParentMissing) {
		t.Fatalf("err = %v, want ErrDestinationParentMissing", err)
	}
	assertExists(t, src)
}

func TestMoveRefusesExistingDestination(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.txt")
	dst := filepath.Join(tmp, "b.txt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := Move(src, dst)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("err = %v, want fs.ErrExist", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "old" {
		t.Errorf("destination was overwritten: %q", data)
	}
}

func TestCopyDirPreservesModesAndLinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits and symlinks differ on Windows")
	}
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	writeFile(t, filepath.Join(src, "build.sh"), "#!/bin/sh")
	if err := os.Chmod(filepath.Join(src, "build.sh"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("build.sh", filepath.Join(src, "run.sh")); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(src, ".git", "config"), "[core]")

	dst := filepath.Join(tmp, "dst")
	if err := copyDir(src, dst); err != nil {
		t.Fatalf("copyDir: %v", err)
	}

	info, err := os.Stat(filepath.Join(dst, "build.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0755 {
		t.Errorf("build.sh perm = %o, want 755", perm)
	}
	if target, err := os.Readlink(filepath.Join(dst, "run.sh")); err != nil || target != "build.sh" {
		t.Errorf("run.sh link = %q, %v", target, err)
	}
	assertNotExists(t, filepath.Join(dst, ".git"))
}

func TestRemoveTree(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "clone")
	writeFile(t, filepath.Join(root, "a", "b.txt"), "x")

	if err := RemoveTree(root); err != nil {
		t.Fatalf("RemoveTree: %v", err)
	}
	assertNotExists(t, root)
}

// ─── Helpers ───────────────────────────────────────────────────────

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected %s to not exist", path)
	}
}
