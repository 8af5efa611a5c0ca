package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// shallowSubmodules is the first git release with --shallow-submodules.
var shallowSubmodules = semver.MustParse("2.9.0")

var gitVersionPattern = regexp.MustCompile(`git version (\d+)\.(\d+)(?:\.(\d+))?`)

// ErrNoMatchingTag is returned when no remote tag satisfies a ref constraint.
var ErrNoMatchingTag = errors.New("no tag satisfies constraint")

// ParseGitVersion extracts the version from `git --version` output such as
// "git version 2.39.2 (Apple Git-143)" or "git version 2.41.0.windows.1".
func ParseGitVersion(output string) (*semver.Version, error) {
	m := gitVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognised git version output %q", strings.TrimSpace(output))
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return semver.NewVersion(m[1] + "." + m[2] + "." + patch)
}

// SupportsShallowSubmodules reports whether v understands --shallow-submodules.
func SupportsShallowSubmodules(v *semver.Version) bool {
	return v != nil && !v.LessThan(shallowSubmodules)
}

func (f *GitFetcher) gitVersion(ctx context.Context) (*semver.Version, error) {
	out, err := f.run(ctx, "", "--version")
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("running git --version: %w", err)
	}
	return ParseGitVersion(string(out))
}

// branchPattern matches refs that are also valid branch names. A constraint
// of this shape with no matching tag is cloned as a branch.
var branchPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

// isConstraint reports whether ref reads as a semver constraint ("^1.2",
// ">= 1.0, < 2", "v1.3.0") rather than a branch name.
func isConstraint(ref string) bool {
	_, err := semver.NewConstraint(ref)
	return err == nil
}

// resolveTag lists the remote's tags and returns the highest one that
// satisfies constraint.
func (f *GitFetcher) resolveTag(ctx context.Context, repoURL, constraint string) (string, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return "", fmt.Errorf("parsing ref constraint %q: %w", constraint, err)
	}

	out, err := f.run(ctx, "", "ls-remote", "--tags", "--refs", repoURL)
	if err != nil {
		return "", fmt.Errorf("listing tags of %s: %w: %v\n%s", repoURL, ErrCloneFailed, err, strings.TrimSpace(string(out)))
	}

	tag, ok := HighestMatchingTag(ParseTagList(string(out)), c)
	if !ok {
		return "", fmt.Errorf("%s in %s: %w", constraint, repoURL, ErrNoMatchingTag)
	}
	return tag, nil
}

// ParseTagList extracts tag names from `git ls-remote --tags --refs` output.
func ParseTagList(output string) []string {
	var tags []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		if name, ok := strings.CutPrefix(fields[1], "refs/tags/"); ok {
			tags = append(tags, name)
		}
	}
	return tags
}

// HighestMatchingTag returns the tag with the greatest version satisfying c.
// Tags that are not semantic versions are ignored.
func HighestMatchingTag(tags []string, c *semver.Constraints) (string, bool) {
	type candidate struct {
		tag string
		v   *semver.Version
	}
	var matches []candidate
	for _, tag := range tags {
		v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		if c.Check(v) {
			matches = append(matches, candidate{tag: tag, v: v})
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].v.GreaterThan(matches[j].v) })
	return matches[0].tag, true
}
