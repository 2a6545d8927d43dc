package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fivetwenty-io/cma/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// StatusReporter is implemented by publishable entities.
type StatusReporter interface {
	IsDraft() bool
	IsPublished() bool
	IsUpdated() bool
}

type archivable interface {
	IsArchived() bool
}

// EntityStatus reports the lifecycle state of a publishable entity.
func EntityStatus(entity StatusReporter) string {
	if a, ok := entity.(archivable); ok && a.IsArchived() {
		return constants.StatusArchived
	}

	switch {
	case entity.IsUpdated():
		return constants.StatusChanged
	case entity.IsPublished():
		return constants.StatusPublished
	default:
		return constants.StatusDraft
	}
}

// TitleCase capitalizes a status or label for table output.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Truncate shortens s to the table column limit.
func Truncate(s string) string {
	if len(s) <= constants.StringTruncationLength {
		return s
	}

	return s[:constants.StringTruncationLength-3] + "..."
}

// MaskToken hides all but the first few characters of a token.
func MaskToken(token string) string {
	if token == "" {
		return constants.None
	}

	if len(token) <= constants.TokenPrefixLength {
		return constants.MaskedSecret
	}

	return token[:constants.TokenPrefixLength] + constants.MaskedSecret
}

// OrNA substitutes N/A for empty values.
func OrNA(s string) string {
	if s == "" {
		return constants.NotAvailable
	}

	return s
}

// OutputFormat returns the selected output format.
func OutputFormat() string {
	format := strings.ToLower(viper.GetString("output"))
	if format == "" {
		return constants.FormatTable
	}

	return format
}

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// Render writes data in format, calling table to fill in table output.
func Render[T any](w io.Writer, format string, data T, table func(*tablewriter.Table)) error {
	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, data)
	case constants.FormatTable:
		t := tablewriter.NewWriter(w)
		table(t)

		if err := t.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}
