// Package cli defines the Cobra command tree for the bladegen CLI. Running
// the root command with no subcommand starts the interactive menu; each other
// file registers one subcommand (new, templates, config, version) with the
// root. Commands only handle flags, prompts and output, and delegate the
// actual generation to the generator package.
package cli
