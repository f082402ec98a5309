// Package export renders a merge result to JSON, CSV, or XLSX.
package export

import (
	"fmt"
	"io"
	"strings"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, csv, or xlsx)", s)
}

// Exporter writes a merge result in one format.
type Exporter interface {
	Export(w io.Writer, res *Payload) error
}

// New returns the exporter for the given format.
func New(f Format) (Exporter, error) {
	switch f {
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatCSV:
		return &CSVExporter{}, nil
	case FormatXLSX:
		return &ExcelExporter{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}
