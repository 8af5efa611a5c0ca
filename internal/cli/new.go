package cli

import (
	"fmt"

	"github.com/bladeengine/bladegen/internal/branding"
	"github.com/bladeengine/bladegen/internal/generator"
	"github.com/bladeengine/bladegen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newTemplate   string
	newOutputDir  string
	newEngineRepo string
	newEngineRef  string
	newTempDir    string
	newSkipEngine bool
	newNoRollback bool
)

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "empty", "Template to generate from (see 'templates')")
	newCmd.Flags().StringVarP(&newOutputDir, "output-dir", "o", ".", "Directory the project root is created in")
	newCmd.Flags().StringVar(&newEngineRepo, "engine-repo", "", "Engine repository URL (default from config)")
	newCmd.Flags().StringVar(&newEngineRef, "engine-ref", "", "Engine branch, tag or semver range such as ^1.2; a version-like name with no matching tag is cloned as a branch")
	newCmd.Flags().StringVar(&newTempDir, "temp-dir", "", "Temporary clone path (default <output-dir>/"+branding.TempDirName()+")")
	newCmd.Flags().BoolVar(&newSkipEngine, "skip-engine", false, "Do not vendor the engine source tree into the project")
	newCmd.Flags().BoolVar(&newNoRollback, "no-rollback", false, "Leave partially generated files in place on failure")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Generate a new project without the interactive menu",
	Long: `Generate a new Blade Engine project named <name>.

The name becomes the project directory, the executable and the game class, so
it must be a valid C++ identifier.

On failure, everything created so far is removed unless --no-rollback is set.
Failing to delete the temporary engine clone once the project is complete is
only reported as a warning; the clone is left for you to remove.

Examples:
  ` + branding.CLIName() + ` new Demo
  ` + branding.CLIName() + ` new Demo --output-dir ~/games --engine-ref v0.3.0
  ` + branding.CLIName() + ` new Demo --skip-engine`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, err := scaffold.Lookup(newTemplate)
		if err != nil {
			return usageErrorf("%v", err)
		}

		opts := generationOptions(tmpl.Manifest.Selector, args[0], newOutputDir)
		if newEngineRepo != "" {
			opts.EngineRepo = newEngineRepo
		}
		if newEngineRef != "" {
			opts.EngineRef = newEngineRef
		}
		if newTempDir != "" {
			opts.TempDir = newTempDir
		}
		opts.SkipEngine = newSkipEngine
		opts.NoRollback = newNoRollback

		paths, err := generator.Run(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("generating %s: %w", args[0], err)
		}

		printResult(cmd.OutOrStdout(), paths)
		return nil
	},
}
