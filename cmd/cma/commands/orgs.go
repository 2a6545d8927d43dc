package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org", "organizations"},
		Short:   "Manage organizations",
		Long:    "List organizations and their members",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsUsersCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			orgs, err := cma.FetchAll(cmd.Context(), client.GetOrganizations, cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list organizations: %w", err)
			}

			plain := make([]cma.OrganizationProps, 0, len(orgs))
			for _, org := range orgs {
				plain = append(plain, org.ToPlainObject())
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Created")

				for _, org := range orgs {
					_ = table.Append(org.ID(), org.Name, OrNA(org.Sys().CreatedAt))
				}
			})
		},
	}
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_ID",
		Short: "Get organization details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			org, err := client.GetOrganization(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), org.ToPlainObject(), func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("ID", org.ID())
				_ = table.Append("Name", org.Name)
				_ = table.Append("Version", strconv.Itoa(org.Version()))
				_ = table.Append("Created", OrNA(org.Sys().CreatedAt))
			})
		},
	}
}

func newOrgsUsersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "users ORG_ID",
		Short: "List the users of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := CreateClient()
			if err != nil {
				return err
			}

			org, err := client.GetOrganization(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			users, err := cma.FetchAll(cmd.Context(), org.GetUsers, cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			plain := make([]cma.UserProps, 0, len(users))
			for _, user := range users {
				plain = append(plain, user.ToPlainObject())
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
				table.Header("ID", "Email", "Name", "Activated")

				for _, user := range users {
					_ = table.Append(user.ID(), OrNA(user.Email), user.FirstName+" "+user.LastName, strconv.FormatBool(user.Activated))
				}
			})
		},
	}
}
