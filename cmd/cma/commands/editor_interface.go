package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/fivetwenty-io/cma/pkg/cma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewEditorInterfaceCommand creates the editor-interface command group.
func NewEditorInterfaceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "editor-interface",
		Aliases: []string{"ei"},
		Short:   "Manage editor interfaces",
		Long:    "Inspect and change the widgets used to edit the fields of a content type",
	}

	cmd.AddCommand(newEditorInterfaceGetCommand())
	cmd.AddCommand(newEditorInterfaceControlCommand())
	cmd.AddCommand(newEditorInterfaceSetControlCommand())

	return cmd
}

func renderControls(cmd *cobra.Command, data any, controls []cma.Control) error {
	return Render(cmd.OutOrStdout(), OutputFormat(), data, func(table *tablewriter.Table) {
		table.Header("Field", "Widget Namespace", "Widget", "Settings")

		for _, control := range controls {
			_ = table.Append(control.FieldID, OrNA(control.WidgetNamespace), OrNA(control.WidgetID), FormatSettings(control.Settings))
		}
	})
}

func newEditorInterfaceGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CONTENT_TYPE_ID",
		Short: "Show the editor interface of a content type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			ei, err := env.GetEditorInterfaceForContentType(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get editor interface: %w", err)
			}

			return renderControls(cmd, ei.ToPlainObject(), ei.Controls)
		},
	}
}

func newEditorInterfaceControlCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "control CONTENT_TYPE_ID FIELD_ID",
		Short: "Show the control of one field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			ei, err := env.GetEditorInterfaceForContentType(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get editor interface: %w", err)
			}

			control := ei.GetControlForField(args[1])
			if control == nil {
				return fmt.Errorf("%w %s", constants.ErrControlNotFound, args[1])
			}

			return renderControls(cmd, control, []cma.Control{*control})
		},
	}
}

func newEditorInterfaceSetControlCommand() *cobra.Command {
	var (
		widgetID        string
		widgetNamespace string
		settings        []string
	)

	cmd := &cobra.Command{
		Use:   "set-control CONTENT_TYPE_ID FIELD_ID",
		Short: "Change the widget of one field",
		Long:  "Change the widget and settings of a field control and save the editor interface",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := ParseSettings(settings)
			if err != nil {
				return err
			}

			env, err := CurrentEnvironment(cmd.Context())
			if err != nil {
				return err
			}

			ei, err := env.GetEditorInterfaceForContentType(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get editor interface: %w", err)
			}

			control := ei.GetControlForField(args[1])
			if control == nil {
				return fmt.Errorf("%w %s", constants.ErrControlNotFound, args[1])
			}

			if widgetID != "" {
				control.WidgetID = widgetID
			}

			if widgetNamespace != "" {
				control.WidgetNamespace = widgetNamespace
			}

			if len(parsed) > 0 {
				if control.Settings == nil {
					control.Settings = cma.WidgetSettings{}
				}

				for key, value := range parsed {
					control.Settings[key] = value
				}
			}

			updated, err := ei.Update(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to update editor interface: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated control of %s (version %d)\n", args[1], updated.Version())

			return nil
		},
	}

	cmd.Flags().StringVar(&widgetID, "widget-id", "", "widget to use for the field")
	cmd.Flags().StringVar(&widgetNamespace, "widget-namespace", "", "namespace of the widget, e.g. builtin or app")
	cmd.Flags().StringArrayVar(&settings, "setting", nil, "widget setting as key=value (repeatable)")

	return cmd
}

// ParseSettings parses key=value pairs. Booleans and numbers are decoded,
// everything else is kept as a string.
func ParseSettings(pairs []string) (cma.WidgetSettings, error) {
	settings := cma.WidgetSettings{}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidSettingValue, pair)
		}

		switch value {
		case "true", "false":
			settings[key] = value == "true"
		default:
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				settings[key] = n
			} else {
				settings[key] = value
			}
		}
	}

	return settings, nil
}

// FormatSettings renders settings as sorted key=value pairs.
func FormatSettings(settings cma.WidgetSettings) string {
	if len(settings) == 0 {
		return constants.None
	}

	pairs := make([]string, 0, len(settings))
	for key, value := range settings {
		pairs = append(pairs, fmt.Sprintf("%s=%v", key, value))
	}

	slices.Sort(pairs)

	return Truncate(strings.Join(pairs, ", "))
}
