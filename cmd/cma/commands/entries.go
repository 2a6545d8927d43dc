package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewEntriesCommand creates the entries command group.
func NewEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage entries",
		Long:    "List, inspect and change the publication state of entries",
	}

	cmd.AddCommand(newEntriesListCommand())
	cmd.AddCommand(newEntriesGetCommand())
	cmd.AddCommand(newEntriesTransitionCommand("publish", "Publish an entry", (*cma.Entry).Publish))
	cmd.AddCommand(newEntriesTransitionCommand("unpublish", "Unpublish an entry", (*cma.Entry).Unpublish))
	cmd.AddCommand(newEntriesTransitionCommand("archive", "Archive an entry", (*cma.Entry).Archive))
	cmd.AddCommand(newEntriesTransitionCommand("unarchive", "Unarchive an entry", (*cma.Entry).Unarchive))

	return cmd
}

// EntryTitle returns the value of field in locale as text, or N/A.
func EntryTitle(entry *cma.Entry, field, locale string) string {
	if field == "" {
		return constants.NotAvailable
	}

	value, err := entry.GetField(field, locale)
	if err != nil {
		return constants.NotAvailable
	}

	return Truncate(fmt.Sprint(value))
}

func newEntriesListCommand() *cobra.Command {
	var (
		contentType string
		search      string
		titleField  string
		locale      string
		limit       int
		allPages    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			query := cma.NewQueryParams().WithLimit(limit).WithOrder("-sys.updatedAt").WithQuery(search)
			if contentType != "" {
				query.WithFilter("content_type", contentType)
			}

			var entries []*cma.Entry
			if allPages {
				entries, err = cma.FetchAll(cmd.Context(), env.GetEntries, query)
			} else {
				var page *cma.Collection[*cma.Entry]

				page, err = env.GetEntries(cmd.Context(), query)
				if page != nil {
					entries = page.Items
				}
			}

			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			plain := make([]cma.EntryProps, 0, len(entries))
			for _, entry := range entries {
				plain = append(plain, entry.ToPlainObject())
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), plain, func(table *tablewriter.Table) {
				table.Header("ID", "Content Type", "Title", "Status", "Updated")

				for _, entry := range entries {
					sys := entry.Sys()
					_ = table.Append(
						entry.ID(),
						OrNA(sys.ContentType.ID()),
						EntryTitle(entry, titleField, locale),
						TitleCase(EntityStatus(entry)),
						OrNA(sys.UpdatedAt),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "only list entries of this content type")
	cmd.Flags().StringVar(&search, "query", "", "full-text search term")
	cmd.Flags().StringVar(&titleField, "title-field", "title", "field shown in the Title column")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale of the title field")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageLimit, "results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newEntriesGetCommand() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "get ENTRY_ID",
		Short: "Show the fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := env.GetEntry(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			return Render(cmd.OutOrStdout(), OutputFormat(), entry.ToPlainObject(), func(table *tablewriter.Table) {
				table.Header("Field", "Value")
				_ = table.Append("sys.id", entry.ID())
				_ = table.Append("sys.status", TitleCase(EntityStatus(entry)))

				for _, fieldID := range slices.Sorted(maps.Keys(entry.Fields)) {
					_ = table.Append(fieldID, EntryTitle(entry, fieldID, locale))
				}
			})
		},
	}

	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale of the shown values")

	return cmd
}

func newEntriesTransitionCommand(use, short string, transition func(*cma.Entry, context.Context) (*cma.Entry, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ENTRY_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := env.GetEntry(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get entry: %w", err)
			}

			result, err := transition(entry, cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to %s entry: %w", use, err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is now %s\n", result.ID(), strings.ToLower(EntityStatus(result)))

			return nil
		},
	}
}
