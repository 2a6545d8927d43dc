package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	API         string `json:"api,omitempty"         mapstructure:"api"         yaml:"api,omitempty"`
	Token       string `json:"token,omitempty"       mapstructure:"token"       yaml:"token,omitempty"`
	Space       string `json:"space,omitempty"       mapstructure:"space"       yaml:"space,omitempty"`
	Environment string `json:"environment,omitempty" mapstructure:"environment" yaml:"environment,omitempty"`
	Output      string `json:"output,omitempty"      mapstructure:"output"      yaml:"output,omitempty"`
	RetryMax    int    `json:"retryMax,omitempty"    mapstructure:"retry_max"   yaml:"retry_max,omitempty"`

	ClientID     string `json:"clientId,omitempty"     mapstructure:"client_id"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty" mapstructure:"client_secret" yaml:"client_secret,omitempty"`
	TokenURL     string `json:"tokenUrl,omitempty"     mapstructure:"token_url"     yaml:"token_url,omitempty"`
	TokenExpiry  string `json:"tokenExpiry,omitempty"  mapstructure:"token_expiry"  yaml:"token_expiry,omitempty"`
}

// ConfigKeys lists the keys accepted by 'config set'.
var ConfigKeys = []string{"api", "token", "space", "environment", "output", "client_id", "client_secret", "token_url"}

// LoadConfig reads the effective configuration from v: flags, CMA_*
// environment variables and the config file, in that order of precedence.
func LoadConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if config.API == "" {
		config.API = constants.DefaultAPIEndpoint
	}

	if config.Environment == "" {
		config.Environment = constants.DefaultEnvironment
	}

	return config, nil
}

// SetValue assigns value to the configuration key.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "api":
		c.API = value
	case "token":
		c.Token = value
		c.TokenExpiry = ""
	case "space":
		c.Space = value
	case "environment":
		c.Environment = value
	case "client_id":
		c.ClientID = value
	case "client_secret":
		c.ClientSecret = value
	case "token_url":
		c.TokenURL = value
	case "output":
		if !slices.Contains([]string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML}, value) {
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, value)
		}

		c.Output = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// ConfigFilePath returns the config file in use, or the default location
// under the home directory.
func ConfigFilePath(v *viper.Viper) (string, error) {
	if file := v.ConfigFileUsed(); file != "" {
		return file, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".cma", "config.yml"), nil
}

// SaveConfig writes config to path with owner-only permissions.
func SaveConfig(path string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// updateConfig loads the configuration, applies fn and saves it back.
func updateConfig(fn func(*Config) error) (string, error) {
	config, err := LoadConfig(viper.GetViper())
	if err != nil {
		return "", err
	}

	err = fn(config)
	if err != nil {
		return "", err
	}

	path, err := ConfigFilePath(viper.GetViper())
	if err != nil {
		return "", err
	}

	return path, SaveConfig(path, config)
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the CLI configuration stored in ~/.cma/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(viper.GetViper())
			if err != nil {
				return err
			}

			masked := *config
			masked.Token = MaskToken(config.Token)
			masked.ClientSecret = MaskToken(config.ClientSecret)

			return Render(cmd.OutOrStdout(), OutputFormat(), masked, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("API", masked.API)
				_ = table.Append("Token", masked.Token)
				_ = table.Append("Space", OrNA(masked.Space))
				_ = table.Append("Environment", masked.Environment)
				_ = table.Append("Output", OrNA(masked.Output))
				_ = table.Append("Client ID", OrNA(masked.ClientID))
				_ = table.Append("Token Expiry", OrNA(masked.TokenExpiry))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Set a configuration value",
		Long:      "Set one of: api, token, space, environment, output, client_id, client_secret, token_url",
		Args:      cobra.ExactArgs(2),
		ValidArgs: ConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := updateConfig(func(config *Config) error {
				return config.SetValue(args[0], args[1])
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], path)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Clear a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := updateConfig(func(config *Config) error {
				if args[0] == "output" {
					config.Output = ""

					return nil
				}

				return config.SetValue(args[0], "")
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s in %s\n", args[0], path)

			return nil
		},
	}
}
