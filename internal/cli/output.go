package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bladeengine/bladegen/internal/generator"
)

func printResult(w io.Writer, paths *generator.ProjectPaths) {
	fmt.Fprintf(w, "%s Generation\n\n", paths.Title)
	fmt.Fprintf(w, "Created %s/\n", paths.Root)
	for _, f := range paths.Files {
		fmt.Fprintf(w, "  %s\n", rel(paths.Root, f))
	}
	for _, a := range paths.Assets {
		fmt.Fprintf(w, "  %s\n", rel(paths.Root, a))
	}
	if len(paths.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range paths.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	build := filepath.Join(paths.Root, "build")
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. cmake -S %s -B %s\n", paths.Root, build)
	fmt.Fprintf(w, "  2. cmake --build %s\n", build)
	if paths.EngineDir == "" {
		fmt.Fprintln(w, "  The engine was not vendored; add it with add_subdirectory before building.")
	}
}

func rel(root, p string) string {
	if r, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(r)
	}
	return p
}
