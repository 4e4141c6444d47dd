// Package formatting renders reconciliation plans for the CLI.
//
// The same plan can be printed as a rich table for people, or as JSON or
// YAML for scripts and CI checks.
package formatting

import (
	"fmt"
	"io"

	"alertstate/internal/reconciler"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output

	// Details adds diffs and payloads below the table.
	Details bool
}

// Formatter writes a plan in one output format.
type Formatter interface {
	FormatPlan(w io.Writer, plan reconciler.Plan) error
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return OutputFormat(s), nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// New creates the formatter for options.Format.
func New(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		fallthrough
	default:
		return &TableFormatter{options: options}
	}
}
