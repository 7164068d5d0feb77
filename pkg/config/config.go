package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Selector  SelectorConfig  `mapstructure:"selector"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// TemplatesConfig holds template loading configuration
type TemplatesConfig struct {
	// Directory is where the file loader and CLI look for templates
	Directory string `mapstructure:"directory"`

	// Format is the default template syntax for raw template files
	Format string `mapstructure:"format"`

	// Strict enables validation of templates at load time
	Strict bool `mapstructure:"strict"`
}

// SelectorConfig holds few-shot example selection configuration
type SelectorConfig struct {
	// Encoding is the tiktoken encoding for token-based length selection.
	// Empty means word-count lengths.
	Encoding string `mapstructure:"encoding"`

	// MaxLength is the default length budget for length-based selection
	MaxLength int `mapstructure:"max_length"`
}

// Global config instance
var cfg *Config

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		viper.AddConfigPath("./.promptkit") // Check project directory first
		viper.AddConfigPath(filepath.Join(xdgConfigHome, "promptkit"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("PROMPTKIT")
	viper.AutomaticEnv()
	bindEnvironmentVariables()

	// Config file is optional; defaults apply when absent
	_ = viper.ReadInConfig()

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("logging.log_file", "./.promptkit/system.log")
	viper.SetDefault("logging.preserve", false)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("templates.directory", "./prompts")
	viper.SetDefault("templates.format", "fstring")
	viper.SetDefault("templates.strict", false)

	viper.SetDefault("selector.encoding", "")
	viper.SetDefault("selector.max_length", 2048)
}

// bindEnvironmentVariables binds specific environment variables to Viper keys
func bindEnvironmentVariables() {
	viper.BindEnv("logging.log_file", "PROMPTKIT_LOG_FILE")
	viper.BindEnv("logging.level", "PROMPTKIT_LOG_LEVEL")
	viper.BindEnv("logging.preserve", "PROMPTKIT_LOG_PRESERVE")
	viper.BindEnv("templates.directory", "PROMPTKIT_TEMPLATES_DIR")
	viper.BindEnv("templates.format", "PROMPTKIT_TEMPLATES_FORMAT")
	viper.BindEnv("templates.strict", "PROMPTKIT_TEMPLATES_STRICT")
	viper.BindEnv("selector.encoding", "PROMPTKIT_SELECTOR_ENCODING")
	viper.BindEnv("selector.max_length", "PROMPTKIT_SELECTOR_MAX_LENGTH")
}

// GetConfigFileUsed returns the path to the config file being used
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
