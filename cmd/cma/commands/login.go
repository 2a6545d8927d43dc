package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cmaclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// readToken reads a token from the terminal without echo, or a line from in
// when it is not a terminal.
func readToken(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Access token: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		raw, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint  string
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials",
		Long: `Verify a personal access token, or OAuth2 client credentials, against the
API and store them in the CLI configuration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(viper.GetViper())
			if err != nil {
				return err
			}

			if apiEndpoint != "" {
				config.API = apiEndpoint
			}

			config.API = cmaclient.NormalizeEndpoint(config.API)

			if clientID != "" || clientSecret != "" {
				config.ClientID = clientID
				config.ClientSecret = clientSecret
				config.Token = ""
				config.TokenExpiry = ""
			} else if config.Token == "" {
				config.Token, err = readToken(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}

				if config.Token == "" {
					return constants.ErrEmptyToken
				}
			}

			path, err := ConfigFilePath(viper.GetViper())
			if err != nil {
				return err
			}

			client, err := NewClient(config, path, viper.GetBool("verbose"))
			if err != nil {
				return err
			}

			user, err := client.GetCurrentUser(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			err = SaveConfig(path, config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", config.API, OrNA(user.Email))

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "api-endpoint", "", "API endpoint to log in to")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := updateConfig(func(config *Config) error {
				config.Token = ""
				config.TokenExpiry = ""

				return nil
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out, token removed from %s\n", path)

			return nil
		},
	}
}
