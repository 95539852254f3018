package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// outputFmt defines the structured output format for CLI commands.
type outputFmt string

const (
	outputYAML outputFmt = "yaml"
	outputJSON outputFmt = "json"
)

// globalOutputFormat is set by the root command's --output flag.
var globalOutputFormat = outputYAML

// setOutputFormat sets the global output format.
func setOutputFormat(format string) {
	switch format {
	case "json":
		globalOutputFormat = outputJSON
	default:
		globalOutputFormat = outputYAML
	}
}

// output writes data to stdout in the configured format.
func output(data any) error {
	return outputTo(os.Stdout, globalOutputFormat, data)
}

// outputTo writes data to the given writer in the specified format.
func outputTo(w io.Writer, format outputFmt, data any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
