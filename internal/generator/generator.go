package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bladeengine/bladegen/internal/branding"
	"github.com/bladeengine/bladegen/internal/engine"
	"github.com/bladeengine/bladegen/internal/scaffold"
	"go.uber.org/zap"
)

// QuitSelector is the menu value that exits without generating anything.
const QuitSelector = "0"

// Options configures a generation run.
type Options struct {
	Selection  string // menu selector of the template ("1" for Empty Project)
	Name       string // project name; becomes the root directory and class name
	BaseDir    string // directory the project root is created in; default "."
	TempDir    string // temporary clone path; default <BaseDir>/<branding.TempDirName()>
	EngineRepo string // default branding.EngineRepoURL()
	EngineRef  string // branch, tag or semver constraint; empty for the remote default
	SkipEngine bool   // do not vendor the engine tree into the project
	NoRollback bool   // leave partial results on failure

	Fetcher engine.Fetcher // default engine.NewGitFetcher()
	Logger  *zap.Logger    // default zap.NewNop()
}

// ProjectPaths lists what a successful run produced.
type ProjectPaths struct {
	Template  string
	Title     string
	Root      string
	BuildFile string
	Header    string
	Source    string
	Files     []string // every emitted file, in write order
	Dirs      []string // skeleton directories, root excluded
	Assets    []string // relocated destinations
	EngineDir string   // empty when the engine is not vendored
	TempDir   string
	Warnings  []string
}

// Plan is the ordered list of steps for one run, plus the paths it will
// produce.
type Plan struct {
	Steps []Step
	Paths *ProjectPaths
}

// Run generates a project. It returns ErrQuit, without touching the
// filesystem, when Selection is the quit selector or names no template.
func Run(ctx context.Context, opts Options) (*ProjectPaths, error) {
	plan, err := BuildPlan(opts)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("generating project",
		zap.String("name", opts.Name),
		zap.String("template", plan.Paths.Template),
		zap.String("root", plan.Paths.Root),
		zap.Int("steps", len(plan.Steps)))

	runner := &Runner{Logger: log, NoRollback: opts.NoRollback}
	outcome, err := runner.Execute(ctx, plan.Steps)
	if err != nil {
		return nil, err
	}

	plan.Paths.Warnings = outcome.Warnings
	log.Info("project generated", zap.String("root", plan.Paths.Root))
	return plan.Paths, nil
}

// BuildPlan validates opts and returns the steps Run would execute. It
// performs no filesystem mutation.
func BuildPlan(opts Options) (*Plan, error) {
	selection := strings.TrimSpace(opts.Selection)
	if selection == QuitSelector {
		return nil, ErrQuit
	}
	tmpl, ok, err := scaffold.BySelector(selection)
	if err != nil {
		return nil, newError(KindIOFailure, fmt.Errorf("loading templates: %w", err))
	}
	if !ok {
		return nil, ErrQuit
	}

	if err := scaffold.ValidateProjectName(opts.Name); err != nil {
		return nil, newError(KindInvalidInput, err)
	}

	opts = withDefaults(opts)
	root := filepath.Join(opts.BaseDir, opts.Name)

	if err := preflight(opts.BaseDir, root, opts.TempDir); err != nil {
		return nil, err
	}

	vendorEngine := !opts.SkipEngine
	rendered, err := tmpl.Render(scaffold.NewProjectData(opts.Name, vendorEngine))
	if err != nil {
		return nil, newError(KindIOFailure, fmt.Errorf("rendering template %s: %w", tmpl.Manifest.Name, err))
	}

	paths := &ProjectPaths{
		Template: tmpl.Manifest.Name,
		Title:    tmpl.Manifest.Title,
		Root:     root,
		TempDir:  opts.TempDir,
	}
	steps := []Step{&CreateDir{Path: root}}

	for _, dir := range tmpl.Directories() {
		p := filepath.Join(root, filepath.FromSlash(dir))
		steps = append(steps, &CreateDir{Path: p})
		paths.Dirs = append(paths.Dirs, p)
	}

	for _, f := range rendered {
		p := filepath.Join(root, filepath.FromSlash(f.Path))
		steps = append(steps, &WriteFile{Path: p, Content: f.Content})
		paths.Files = append(paths.Files, p)
		switch {
		case filepath.Base(f.Path) == "CMakeLists.txt":
			paths.BuildFile = p
		case strings.HasSuffix(f.Path, ".hpp"):
			paths.Header = p
		case strings.HasSuffix(f.Path, ".cpp"):
			paths.Source = p
		}
	}

	assets := tmpl.Assets(vendorEngine)
	if len(assets) > 0 {
		steps = append(steps, &CloneEngine{
			Fetcher: opts.Fetcher,
			Request: engine.Request{RepoURL: opts.EngineRepo, Ref: opts.EngineRef, Dest: opts.TempDir},
		})
		for _, a := range assets {
			to := filepath.Join(root, filepath.FromSlash(a.To))
			steps = append(steps, &MoveAsset{
				From: filepath.Join(opts.TempDir, filepath.FromSlash(a.From)),
				To:   to,
			})
			paths.Assets = append(paths.Assets, to)
			if a.Engine {
				paths.EngineDir = to
			}
		}
		steps = append(steps, &RemoveTemp{Path: opts.TempDir})
	}

	return &Plan{Steps: steps, Paths: paths}, nil
}

func withDefaults(opts Options) Options {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.TempDir == "" {
		opts.TempDir = filepath.Join(opts.BaseDir, branding.TempDirName())
	}
	if opts.EngineRepo == "" {
		opts.EngineRepo = branding.EngineRepoURL()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = engine.NewGitFetcher()
	}
	return opts
}

// preflight rejects runs that would fail on their first mutation, so the
// common conflicts are reported before anything is created.
func preflight(baseDir, root, tempDir string) error {
	info, err := os.Stat(baseDir)
	if err != nil {
		return newError(KindIOFailure, fmt.Errorf("output directory %s: %w", baseDir, err))
	}
	if !info.IsDir() {
		return newError(KindIOFailure, fmt.Errorf("output directory %s is not a directory", baseDir))
	}

	for _, p := range []string{root, tempDir} {
		if _, err := os.Lstat(p); err == nil {
			return newError(KindAlreadyExists, fmt.Errorf("%s: %w", p, fs.ErrExist))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return newError(KindIOFailure, fmt.Errorf("inspecting %s: %w", p, err))
		}
	}
	return nil
}
