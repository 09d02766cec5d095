package exports

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrNoPlan            = errors.New("No motion plan to export.")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FileName is the default download name for the format.
func (f Format) FileName() string {
	return "motion_plan." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/x-yaml"
	}
	return "application/json"
}
