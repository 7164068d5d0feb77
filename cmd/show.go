package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"

	"github.com/killallgit/promptkit/pkg/config"
)

var showCmd = &cobra.Command{
	Use:   "show <template-file>",
	Short: "Print a template file with syntax highlighting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !filepath.IsAbs(path) {
			path = filepath.Join(config.Get().Templates.Directory, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}

		lexer := ""
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			lexer = "yaml"
		case ".json":
			lexer = "json"
		}

		if lexer == "" {
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		}

		if err := quick.Highlight(cmd.OutOrStdout(), string(data), lexer, "terminal", "monokai"); err != nil {
			// Highlighting is cosmetic; fall back to plain output
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
