package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/cma/cmd/cma/commands"
	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cma",
	Short: "Content management API CLI",
	Long: `A command-line interface for the content management API.

Inspect spaces, organizations, teams and the content model, and change
editor interfaces and entry publication state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.cma/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL")
	flags.StringP("token", "t", "", "access token")
	flags.StringP("space", "s", "", "space ID")
	flags.StringP("environment", "e", "", "environment ID (default master)")
	flags.String("output", constants.FormatTable, "output format (table, json, yaml)")
	flags.Int("retry-max", 0, "retries for rate-limited and failed requests")
	flags.BoolP("verbose", "v", false, "verbose output")

	for key, flag := range map[string]string{
		"config":      "config",
		"api":         "api",
		"token":       "token",
		"space":       "space",
		"environment": "environment",
		"output":      "output",
		"retry_max":   "retry-max",
		"verbose":     "verbose",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewSpacesCommand())
	rootCmd.AddCommand(commands.NewOrgsCommand())
	rootCmd.AddCommand(commands.NewTeamsCommand())
	rootCmd.AddCommand(commands.NewContentTypesCommand())
	rootCmd.AddCommand(commands.NewEditorInterfaceCommand())
	rootCmd.AddCommand(commands.NewEntriesCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".cma"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CMA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger := commands.NewLogger(viper.GetBool("verbose"))
		logger.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
