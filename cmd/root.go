package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/promptkit/pkg/config"
	"github.com/killallgit/promptkit/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "promptkit",
	Short: "Prompt template toolkit",
	Long:  `Create, inspect and render prompt templates for language models.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(cfgFile); err != nil {
			return err
		}
		return logger.Init()
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .promptkit/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("templates", "t", "", "directory containing prompt templates")
	viper.BindPFlag("templates.directory", rootCmd.PersistentFlags().Lookup("templates"))
}
