package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bladeengine/bladegen/internal/platform"
)

var (
	// ErrGitNotFound is returned when git is not on PATH.
	ErrGitNotFound = errors.New("git is required but not found in PATH")
	// ErrDestinationExists is returned when the clone path is already present.
	ErrDestinationExists = errors.New("clone destination already exists")
	// ErrCloneFailed wraps any failure reported by git while cloning.
	ErrCloneFailed = errors.New("clone failed")
)

// Request describes one clone.
type Request struct {
	RepoURL string // remote URL or local path
	Ref     string // branch, tag or semver constraint; empty for the remote default
	Dest    string // clone destination; must not exist
}

// Fetcher clones the engine repository.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) error
}

// runFunc executes git with args in dir and returns combined output.
type runFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitFetcher implements Fetcher with the git command-line client.
type GitFetcher struct {
	run runFunc
}

// NewGitFetcher returns a Fetcher backed by the git binary on PATH.
func NewGitFetcher() *GitFetcher {
	return &GitFetcher{run: execGit}
}

// Fetch clones req.RepoURL into req.Dest, including submodules. It does not
// retry and does not remove a partially written destination on failure.
func (f *GitFetcher) Fetch(ctx context.Context, req Request) error {
	if _, err := os.Lstat(req.Dest); err == nil {
		return fmt.Errorf("%s: %w", req.Dest, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("inspecting %s: %w", req.Dest, err)
	}

	version, err := f.gitVersion(ctx)
	if err != nil {
		return err
	}

	ref := req.Ref
	if ref != "" && isConstraint(ref) {
		tag, err := f.resolveTag(ctx, req.RepoURL, ref)
		switch {
		case err == nil:
			ref = tag
		case errors.Is(err, ErrNoMatchingTag) && branchPattern.MatchString(ref):
			// "1.x" or "2" may be a branch rather than a version range.
		default:
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(req.Dest), platform.DirPerm); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	args := cloneArgs(req.RepoURL, ref, req.Dest, SupportsShallowSubmodules(version))
	if output, err := f.run(ctx, "", args...); err != nil {
		return fmt.Errorf("cloning %s: %w: %v\n%s", req.RepoURL, ErrCloneFailed, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// cloneArgs builds the git clone command line.
func cloneArgs(repoURL, ref, dest string, shallow bool) []string {
	args := []string{"clone", "--recurse-submodules"}
	if shallow {
		args = append(args, "--depth=1", "--shallow-submodules")
	}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	return append(args, "--", repoURL, dest)
}

func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, ErrGitNotFound
	}
	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	// Never block on a credential prompt.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.CombinedOutput()
}
