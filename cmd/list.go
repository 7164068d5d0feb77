package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/killallgit/promptkit/pkg/config"
	"github.com/killallgit/promptkit/pkg/prompt"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long:  `List registered built-in templates and template files in the configured directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Registered templates:")
		for _, name := range prompt.DefaultRegistry.List() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		dir := config.Get().Templates.Directory
		entries, err := os.ReadDir(dir)
		if err != nil {
			// A missing template directory is not an error for listing
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("failed to read template directory: %w", err)
		}

		fmt.Fprintf(out, "\nTemplate files in %s:\n", dir)
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".yaml", ".yml", ".json", ".txt", ".tmpl":
				fmt.Fprintf(out, "  %s\n", entry.Name())
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
