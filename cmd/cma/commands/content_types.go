package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewContentTypesCommand creates the content-types command group.
func NewContentTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "content-types",
		Aliases: []string{"ct"},
		Short:   "Manage content types",
		Long:    "List and inspect the content model of the selected environment",
	}

	cmd.AddCommand(newContentTypesListCommand())
	cmd.AddCommand(newContentTypesGetCommand())
	cmd.AddCommand(newContentTypesPublishCommand())

	return cmd
}

func newContentTypesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List content types",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			contentTypes, err := cma.FetchAll(cmd.Context(), env.GetContentTypes, cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list content types: %w", err)
			}

			plain := make([]cma.ContentTypeProps, 0, len(contentTypes))
			for _, ct := range contentTypes {
				plain = append(plain, ct.ToPlainObject())
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
				table.Header("ID", "Name", "Fields", "Status")

				for _, ct := range contentTypes {
					_ = table.Append(ct.ID(), ct.Name, strconv.Itoa(len(ct.Fields)), TitleCase(EntityStatus(ct)))
				}
			})
		},
	}
}

func newContentTypesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTENT_TYPE_ID",
		Short: "Show the fields of a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			ct, err := env.GetContentType(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), ct.ToPlainObject(), func(table *tablewriter.Table) {
				table.Header("Field", "Name", "Type", "Localized", "Required")

				for _, field := range ct.Fields {
					_ = table.Append(field.ID, field.Name, fieldType(field), strconv.FormatBool(field.Localized), strconv.FormatBool(field.Required))
				}
			})
		},
	}
}

// fieldType renders Link and Array field types with their targets.
func fieldType(field cma.ContentTypeField) string {
	switch {
	case field.Type == "Link" && field.LinkType != "":
		return "Link<" + field.LinkType + ">"
	case field.Type == "Array" && field.Items != nil:
		inner := field.Items.Type
		if field.Items.LinkType != "" {
			inner = "Link<" + field.Items.LinkType + ">"
		}

		return "Array<" + inner + ">"
	default:
		return field.Type
	}
}

func newContentTypesPublishCommand() *cobra.Command {
	var unpublish bool

	cmd := &cobra.Command{
		Use:   "publish CONTENT_TYPE_ID",
		Short: "Publish or unpublish a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			ct, err := env.GetContentType(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get content type: %w", err)
			}

			action := ct.Publish
			if unpublish {
				action = ct.Unpublish
			}

			result, err := action(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to change content type: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Content type %s is now %s\n", result.ID(), strings.ToLower(EntityStatus(result)))

			return nil
		},
	}

	cmd.Flags().BoolVar(&unpublish, "unpublish", false, "unpublish instead of publishing")

	return cmd
}
