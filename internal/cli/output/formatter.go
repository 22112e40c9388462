package output

import (
	"fmt"
	"io"
)

// Format represents the output format.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text|table|json|yaml)", s)
}

// Options tune human-readable formatters. JSON and YAML ignore them.
type Options struct {
	// Wide adds secondary columns to tables.
	Wide bool
	// Color wraps verdict words in ANSI color codes.
	Color bool
	// Detail lists the states behind every violation.
	Detail bool
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format, opts Options) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{Wide: opts.Wide, Color: opts.Color, Detail: opts.Detail}
	default:
		return &TextFormatter{Color: opts.Color, Detail: opts.Detail, Wide: opts.Wide}
	}
}
