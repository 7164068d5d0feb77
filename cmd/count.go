package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/promptkit/pkg/prompt"
	"github.com/killallgit/promptkit/pkg/tokens"
)

var (
	countVars  []string
	countModel string
)

var countCmd = &cobra.Command{
	Use:   "count <template>",
	Short: "Count the tokens a rendered template will consume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseVars(countVars)
		if err != nil {
			return err
		}

		template, err := resolveTemplate(args[0])
		if err != nil {
			return err
		}

		counter, err := tokens.NewCounter(countModel)
		if err != nil {
			return err
		}

		if chat, ok := template.(prompt.ChatTemplate); ok {
			messages, err := chat.FormatMessages(values)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), counter.CountMessages(messages))
			return nil
		}

		result, err := template.Format(values)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), counter.Count(result))
		return nil
	},
}

func init() {
	countCmd.Flags().StringArrayVar(&countVars, "var", nil, "template variable as key=value (repeatable)")
	countCmd.Flags().StringVar(&countModel, "model", "gpt-4", "model whose tokenizer to use")
	rootCmd.AddCommand(countCmd)
}
