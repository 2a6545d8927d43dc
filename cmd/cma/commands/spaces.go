package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewSpacesCommand creates the spaces command group.
func NewSpacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space"},
		Short:   "Manage spaces",
		Long:    "List and inspect spaces and their environments",
	}

	cmd.AddCommand(newSpacesListCommand())
	cmd.AddCommand(newSpacesGetCommand())
	cmd.AddCommand(newSpacesCreateCommand())
	cmd.AddCommand(newEnvironmentsListCommand())

	return cmd
}

func newSpacesListCommand() *cobra.Command {
	var (
		allPages bool
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			query := cma.NewQueryParams().WithLimit(perPage)

			var spaces []*cma.Space
			if allPages {
				spaces, err = cma.FetchAll(cmd.Context(), client.GetSpaces, query)
			} else {
				var page *cma.Collection[*cma.Space]

				page, err = client.GetSpaces(cmd.Context(), query)
				if page != nil {
					spaces = page.Items
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list spaces: %w", err)
			}

			return renderSpaces(cmd, spaces)
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.DefaultPageLimit, "results per page")

	return cmd
}

func renderSpaces(cmd *cobra.Command, spaces []*cma.Space) error {
	plain := make([]cma.SpaceProps, 0, len(spaces))
	for _, space := range spaces {
		plain = append(plain, space.ToPlainObject())
	}

	return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
		table.Header("ID", "Name", "Default Locale", "Organization")

		for _, space := range spaces {
			_ = table.Append(space.ID(), space.Name, OrNA(space.DefaultLocale), OrNA(space.Sys().Organization.ID()))
		}
	})
}

func newSpacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SPACE_ID",
		Short: "Get space details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			space, err := client.GetSpace(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), space.ToPlainObject(), func(table *tablewriter.Table) {
				sys := space.Sys()

				table.Header("Property", "Value")
				_ = table.Append("ID", space.ID())
				_ = table.Append("Name", space.Name)
				_ = table.Append("Version", strconv.Itoa(space.Version()))
				_ = table.Append("Organization", OrNA(sys.Organization.ID()))
				_ = table.Append("Created", OrNA(sys.CreatedAt))
				_ = table.Append("Updated", OrNA(sys.UpdatedAt))
			})
		},
	}
}

func newSpacesCreateCommand() *cobra.Command {
	var (
		organizationID string
		defaultLocale  string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			space, err := client.CreateSpace(cmd.Context(), organizationID, cma.SpaceFields{
				Name:          args[0],
				DefaultLocale: defaultLocale,
			})
			if err != nil {
				return fmt.Errorf("failed to create space: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created space %s (%s)\n", space.Name, space.ID())

			return nil
		},
	}

	cmd.Flags().StringVar(&organizationID, "org", "", "organization that owns the space")
	cmd.Flags().StringVar(&defaultLocale, "default-locale", "", "default locale code")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func newEnvironmentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "environments SPACE_ID",
		Short: "List the environments of a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			space, err := client.GetSpace(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			environments, err := cma.FetchAll(cmd.Context(), space.GetEnvironments, cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list environments: %w", err)
			}

			plain := make([]cma.EnvironmentProps, 0, len(environments))
			for _, env := range environments {
				plain = append(plain, env.ToPlainObject())
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Status")

				for _, env := range environments {
					_ = table.Append(env.ID(), env.Name, TitleCase(OrNA(env.Sys().Status)))
				}
			})
		},
	}
}
