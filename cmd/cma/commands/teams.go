package commands

import (
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewTeamsCommand creates the teams command group.
func NewTeamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teams",
		Aliases: []string{"team"},
		Short:   "Manage teams",
		Long:    "List teams, their members and their space memberships",
	}

	cmd.AddCommand(newTeamsListCommand())
	cmd.AddCommand(newTeamsMembersCommand())
	cmd.AddCommand(newTeamsSpacesCommand())

	return cmd
}

func withOrganization(cmd *cobra.Command, orgID string, fn func(*cma.Organization) error) error {
	client, _, err := CreateClient()
	if err != nil {
		return err
	}

	org, err := client.GetOrganization(cmd.Context(), orgID)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}

	return fn(org)
}

func newTeamsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list ORG_ID",
		Short: "List the teams of an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganization(cmd, args[0], func(org *cma.Organization) error {
				teams, err := cma.FetchAll(cmd.Context(), org.GetTeams, cma.NewQueryParams())
				if err != nil {
					return fmt.Errorf("failed to list teams: %w", err)
				}

				plain := make([]cma.TeamProps, 0, len(teams))
				for _, team := range teams {
					plain = append(plain, team.ToPlainObject())
				}

				return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
					table.Header("ID", "Name", "Description")

					for _, team := range teams {
						_ = table.Append(team.ID(), team.Name, Truncate(OrNA(team.Description)))
					}
				})
			})
		},
	}
}

func newTeamsMembersCommand() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "members ORG_ID",
		Short: "List team memberships",
		Long:  "List the memberships of one team, or of every team in the organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganization(cmd, args[0], func(org *cma.Organization) error {
				memberships, err := org.GetTeamMemberships(cmd.Context(), cma.TeamMembershipOptions{TeamID: teamID})
				if err != nil {
					return fmt.Errorf("failed to list team memberships: %w", err)
				}

				plain := make([]cma.TeamMembershipProps, 0, len(memberships.Items))
				for _, membership := range memberships.Items {
					plain = append(plain, membership.ToPlainObject())
				}

				return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
					table.Header("ID", "Team", "Admin", "Organization Membership")

					for _, membership := range memberships.Items {
						_ = table.Append(
							membership.ID(),
							OrNA(membership.Sys().Team.ID()),
							strconv.FormatBool(membership.Admin),
							OrNA(membership.OrganizationMembershipID),
						)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "only list members of this team")

	return cmd
}

func newTeamsSpacesCommand() *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "spaces ORG_ID",
		Short: "List team space memberships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOrganization(cmd, args[0], func(org *cma.Organization) error {
				memberships, err := org.GetTeamSpaceMemberships(cmd.Context(), cma.TeamSpaceMembershipOptions{TeamID: teamID})
				if err != nil {
					return fmt.Errorf("failed to list team space memberships: %w", err)
				}

				plain := make([]cma.TeamSpaceMembershipProps, 0, len(memberships.Items))
				for _, membership := range memberships.Items {
					plain = append(plain, membership.ToPlainObject())
				}

				return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
					table.Header("ID", "Team", "Space", "Admin", "Roles")

					for _, membership := range memberships.Items {
						sys := membership.Sys()
						_ = table.Append(
							membership.ID(),
							OrNA(sys.Team.ID()),
							OrNA(sys.Space.ID()),
							strconv.FormatBool(membership.Admin),
							strconv.Itoa(len(membership.Roles)),
						)
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "only list memberships of this team")

	return cmd
}
