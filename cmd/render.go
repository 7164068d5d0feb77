package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/promptkit/pkg/config"
	"github.com/killallgit/promptkit/pkg/logger"
	"github.com/killallgit/promptkit/pkg/message"
	"github.com/killallgit/promptkit/pkg/prompt"
	"github.com/killallgit/promptkit/pkg/render"
)

var (
	renderVars []string
	renderChat bool
)

var roleStyles = map[message.ChatMessageType]lipgloss.Style{
	message.ChatMessageTypeSystem: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	message.ChatMessageTypeHuman:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
	message.ChatMessageTypeAI:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
}

var fallbackRoleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a template with the given variables",
	Long: `Render a prompt template against --var values. The argument is a
template file (resolved against the configured templates directory) or the
name of a registered built-in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseVars(renderVars)
		if err != nil {
			return err
		}

		template, err := resolveTemplate(args[0])
		if err != nil {
			return err
		}

		logger.Debug("rendering template %s with %d variables", args[0], len(values))

		if chat, ok := template.(prompt.ChatTemplate); ok && renderChat {
			messages, err := chat.FormatMessages(values)
			if err != nil {
				return err
			}
			printMessages(cmd, messages)
			return nil
		}

		result, err := template.Format(values)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

// resolveTemplate looks up a registered template by name, falling back to
// the file loader for paths.
func resolveTemplate(name string) (prompt.Template, error) {
	if template, err := prompt.DefaultRegistry.Get(name); err == nil {
		return template, nil
	}

	settings := config.Get()
	loader := prompt.NewFileLoaderWithConfig(settings.Templates.Directory, &prompt.Config{
		Format:     render.TemplateFormat(settings.Templates.Format),
		StrictMode: settings.Templates.Strict,
	})

	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".json") {
		// Structured specs may be chat templates; try that first
		if chat, err := loader.LoadChat(name); err == nil {
			return chat, nil
		}
	}

	return loader.Load(name)
}

func printMessages(cmd *cobra.Command, messages []message.ChatMessage) {
	out := cmd.OutOrStdout()

	for _, msg := range messages {
		style, ok := roleStyles[msg.GetType()]
		if !ok {
			style = fallbackRoleStyle
		}
		fmt.Fprintf(out, "%s %s\n", style.Render(string(msg.GetType())+":"), msg.GetContent())
	}
}

// parseVars converts repeated --var key=value flags into a values map.
func parseVars(pairs []string) (map[string]any, error) {
	values := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", pair)
		}
		values[key] = value
	}

	return values, nil
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderVars, "var", nil, "template variable as key=value (repeatable)")
	renderCmd.Flags().BoolVar(&renderChat, "chat", false, "print chat templates as role-tagged messages")

	renderCmd.Flags().String("format", "", "template syntax for raw template files (fstring, gotemplate, jinja2)")
	viper.BindPFlag("templates.format", renderCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(renderCmd)
}
