package types

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// OutputFormat specifies the response output format.
type OutputFormat string

const (
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatCompact OutputFormat = "compact"
)

// GlobalOutputFormat controls the output format of tool and CLI responses.
// It can be preset with SEARCHX_OUTPUT_FORMAT (or MCP_OUTPUT_FORMAT).
var GlobalOutputFormat = OutputFormatCompact

func init() {
	for _, env := range []string{"SEARCHX_OUTPUT_FORMAT", "MCP_OUTPUT_FORMAT"} {
		if f, err := ParseOutputFormat(os.Getenv(env)); err == nil && f != "" {
			GlobalOutputFormat = f
			return
		}
	}
}

// ParseOutputFormat validates a format name. An empty name returns "".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", OutputFormatJSON, OutputFormatCompact:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (valid: %s, %s)", ErrInvalidValue, s, OutputFormatJSON, OutputFormatCompact)
}

// CompactMarshaler is implemented by types that support compact text output.
type CompactMarshaler interface {
	MarshalCompact() string
}

// MarshalResponse renders v in the global output format, falling back to
// JSON for values without a compact form.
func MarshalResponse(v any) (string, error) {
	if GlobalOutputFormat == OutputFormatCompact {
		if cm, ok := v.(CompactMarshaler); ok {
			return cm.MarshalCompact(), nil
		}
	}
	data, err := json.Marshal(v)
	return string(data), err
}
