package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// fakeGit records invocations and answers from a table keyed by the first arg.
type fakeGit struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (g *fakeGit) run(_ context.Context, _ string, args ...string) ([]byte, error) {
	g.calls = append(g.calls, args)
	return []byte(g.outputs[args[0]]), g.errs[args[0]]
}

func (g *fakeGit) call(name string) []string {
	for _, c := range g.calls {
		if c[0] == name {
			return c
		}
	}
	return nil
}

func newFake(version string) *fakeGit {
	return &fakeGit{
		outputs: map[string]string{"--version": version},
		errs:    map[string]error{},
	}
}

func TestFetchBuildsCloneCommand(t *testing.T) {
	g := newFake("git version 2.43.0\n")
	f := &GitFetcher{run: g.run}
	dest := filepath.Join(t.TempDir(), "tmp", "engine")

	err := f.Fetch(context.Background(), Request{RepoURL: "https://example.com/engine.git", Ref: "main", Dest: dest})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	got := strings.Join(g.call("clone"), " ")
	want := "clone --recurse-submodules --depth=1 --shallow-submodules --branch main -- https://example.com/engine.git " + dest
	if got != want {
		t.Errorf("clone args:\n got  %s\n want %s", got, want)
	}
	if g.call("ls-remote") != nil {
		t.Error("branch refs should not list remote tags")
	}
	if _, err := os.Stat(filepath.Dir(dest)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestFetchOldGitSkipsShallowSubmodules(t *testing.T) {
	g := newFake("git version 2.7.4\n")
	f := &GitFetcher{run: g.run}

	if err := f.Fetch(context.Background(), Request{RepoURL: "repo", Dest: filepath.Join(t.TempDir(), "c")}); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	clone := strings.Join(g.call("clone"), " ")
	if strings.Contains(clone, "--shallow-submodules") || strings.Contains(clone, "--depth") {
		t.Errorf("old git should clone without shallow flags: %s", clone)
	}
	if strings.Contains(clone, "--branch") {
		t.Errorf("empty ref should not pass --branch: %s", clone)
	}
}

func TestFetchResolvesConstraint(t *testing.T) {
	g := newFake("git version 2.43.0\n")
	g.outputs["ls-remote"] = "aaa\trefs/tags/v1.0.0\nbbb\trefs/tags/v1.4.2\nccc\trefs/tags/v2.0.0\nddd\trefs/tags/nightly\n"
	f := &GitFetcher{run: g.run}

	if err := f.Fetch(context.Background(), Request{RepoURL: "repo", Ref: "^1.2", Dest: filepath.Join(t.TempDir(), "c")}); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	clone := strings.Join(g.call("clone"), " ")
	if !strings.Contains(clone, "--branch v1.4.2") {
		t.Errorf("expected constraint to resolve to v1.4.2: %s", clone)
	}
}

func TestFetchNoMatchingTag(t *testing.T) {
	g := newFake("git version 2.43.0\n")
	g.outputs["ls-remote"] = "aaa\trefs/tags/v1.0.0\n"
	f := &GitFetcher{run: g.run}

	err := f.Fetch(context.Background(), Request{RepoURL: "repo", Ref: ">=3", Dest: filepath.Join(t.TempDir(), "c")})
	if !errors.Is(err, ErrNoMatchingTag) {
		t.Fatalf("err = %v, want ErrNoMatchingTag", err)
	}
	if g.call("clone") != nil {
		t.Error("clone should not run when no tag matches")
	}
}

func TestFetchVersionLikeBranch(t *testing.T) {
	for _, ref := range []string{"1.x", "2", "1.0", "release/2.1"} {
		t.Run(ref, func(t *testing.T) {
			g := newFake("git version 2.43.0\n")
			g.outputs["ls-remote"] = "aaa\trefs/tags/v0.1.0\n"
			f := &GitFetcher{run: g.run}

			err := f.Fetch(context.Background(), Request{RepoURL: "repo", Ref: ref, Dest: filepath.Join(t.TempDir(), "c")})
			if err != nil {
				t.Fatalf("Fetch() error: %v", err)
			}
			clone := strings.Join(g.call("clone"), " ")
			if !strings.Contains(clone, "--branch "+ref+" ") {
				t.Errorf("expected %q to be cloned as a branch: %s", ref, clone)
			}
		})
	}
}

func TestFetchDestinationExists(t *testing.T) {
	g := newFake("git version 2.43.0\n")
	f := &GitFetcher{run: g.run}
	dest := t.TempDir()

	err := f.Fetch(context.Background(), Request{RepoURL: "repo", Dest: dest})
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("err = %v, want ErrDestinationExists", err)
	}
	if len(g.calls) != 0 {
		t.Errorf("git should not run, got %v", g.calls)
	}
}

func TestFetchCloneFailure(t *testing.T) {
	g := newFake("git version 2.43.0\n")
	g.outputs["clone"] = "fatal: unable to access 'https://example.com/': Could not resolve host"
	g.errs["clone"] = errors.New("exit status 128")
	f := &GitFetcher{run: g.run}

	err := f.Fetch(context.Background(), Request{RepoURL: "https://example.com/engine.git", Dest: filepath.Join(t.TempDir(), "c")})
	if !errors.Is(err, ErrCloneFailed) {
		t.Fatalf("err = %v, want ErrCloneFailed", err)
	}
	if !strings.Contains(err.Error(), "Could not resolve host") {
		t.Errorf("error should carry git output: %v", err)
	}
}

func TestFetchGitMissing(t *testing.T) {
	g := newFake("")
	g.errs["--version"] = ErrGitNotFound
	f := &GitFetcher{run: g.run}

	err := f.Fetch(context.Background(), Request{RepoURL: "repo", Dest: filepath.Join(t.TempDir(), "c")})
	if !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("err = %v, want ErrGitNotFound", err)
	}
}

// TestFetchLocalRepository clones a real repository with a submodule.
func TestFetchLocalRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	tmp := t.TempDir()
	sub := initRepo(t, filepath.Join(tmp, "glm"), map[string]string{"glm.hpp": "// glm"})
	origin := initRepo(t, filepath.Join(tmp, "origin"), map[string]string{"BladeEngine/src/Core/Game.hpp": "#pragma once"})
	git(t, origin, "-c", "protocol.file.allow=always", "submodule", "add", "file://"+sub, "BladeEngine/vendor/glm")
	git(t, origin, "commit", "-q", "-m", "add glm")

	// Local clones of submodules are blocked by default since git 2.38.1.
	t.Setenv("GIT_CONFIG_COUNT", "1")
	t.Setenv("GIT_CONFIG_KEY_0", "protocol.file.allow")
	t.Setenv("GIT_CONFIG_VALUE_0", "always")

	dest := filepath.Join(tmp, "clone")
	if err := NewGitFetcher().Fetch(context.Background(), Request{RepoURL: "file://" + origin, Dest: dest}); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	for _, p := range []string{"BladeEngine/src/Core/Game.hpp", "BladeEngine/vendor/glm/glm.hpp"} {
		if _, err := os.Stat(filepath.Join(dest, p)); err != nil {
			t.Errorf("expected %s in clone: %v", p, err)
		}
	}
}

func initRepo(t *testing.T, dir string, files map[string]string) string {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	git(t, dir, "init", "-q")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	full := append([]string{"-c", "user.name=test", "-c", "user.email=test@example.com", "-c", "commit.gpgsign=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}
