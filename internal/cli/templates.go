package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/bladeengine/bladegen/internal/scaffold"
	"github.com/spf13/cobra"
)

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(templatesCmd)
}

type templateEntry struct {
	Selector    string   `json:"selector"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Directories []string `json:"directories"`
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in project templates",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := scaffold.Templates()
		if err != nil {
			return fmt.Errorf("loading templates: %w", err)
		}

		entries := make([]templateEntry, 0, len(templates))
		for _, t := range templates {
			entries = append(entries, templateEntry{
				Selector:    t.Manifest.Selector,
				Name:        t.Manifest.Name,
				Title:       t.Manifest.Title,
				Description: t.Manifest.Description,
				Directories: t.Directories(),
			})
		}

		out := cmd.OutOrStdout()
		if templatesJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling templates: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SELECTOR\tNAME\tTITLE\tDESCRIPTION")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Selector, e.Name, e.Title, e.Description)
		}
		return w.Flush()
	},
}
