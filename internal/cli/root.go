package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bladeengine/bladegen/internal/branding"
	"github.com/bladeengine/bladegen/internal/config"
	"github.com/bladeengine/bladegen/internal/engine"
	"github.com/bladeengine/bladegen/internal/generator"
	"github.com/bladeengine/bladegen/internal/logger"
	"github.com/bladeengine/bladegen/internal/menu"
	"github.com/bladeengine/bladegen/internal/scaffold"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	verbose   bool
	logFormat string
)

// log is built in PersistentPreRunE once config is loaded.
var log = zap.NewNop()

// newFetcher returns the engine fetcher used by generation commands.
var newFetcher = func() engine.Fetcher { return engine.NewGitFetcher() }

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds new Blade Engine game projects.

Run without a subcommand to pick a template from the interactive menu, or use
'` + branding.CLIName() + ` new <name>' to generate a project non-interactively.`,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		level := config.LogLevel()
		if verbose {
			level = "debug"
		}
		format := logFormat
		if format == "" {
			format = config.LogFormat()
		}
		if format != "text" && format != "json" {
			return usageErrorf("--log-format must be 'text' or 'json', got %q", format)
		}

		l, err := logger.New(logger.Config{Level: level, Format: format})
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(ctx)
}

// runInteractive shows the banner and menu, reads a selector and project
// name, and generates the project in the current directory.
func runInteractive(cmd *cobra.Command, args []string) error {
	templates, err := scaffold.Templates()
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	out := cmd.OutOrStdout()
	entries := menu.Entries(templates)
	menu.Render(out, entries)

	res, err := menu.Prompt(cmd.InOrStdin(), out, entries)
	if err != nil {
		return err
	}
	if res.Quit {
		fmt.Fprintln(out, menu.QuitMessage)
		return nil
	}

	opts := generationOptions(res.Selection, res.Name, ".")
	paths, err := generator.Run(cmd.Context(), opts)
	if errors.Is(err, generator.ErrQuit) {
		fmt.Fprintln(out, menu.QuitMessage)
		return nil
	}
	if err != nil {
		return err
	}

	printResult(out, paths)
	return nil
}

// generationOptions fills in everything the user did not type from config.
func generationOptions(selection, name, baseDir string) generator.Options {
	return generator.Options{
		Selection:  selection,
		Name:       name,
		BaseDir:    baseDir,
		TempDir:    config.TempDir(baseDir),
		EngineRepo: config.EngineRepo(),
		EngineRef:  config.EngineRef(),
		Fetcher:    newFetcher(),
		Logger:     log,
	}
}
