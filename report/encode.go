// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat reports an output format other than text, yaml or json.
var ErrUnknownFormat = errors.New("report: unknown format")

// WriteYAML encodes r as a YAML document.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: yaml: %w", err)
	}

	return enc.Close()
}

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("report: json: %w", err)
	}

	return nil
}

// Write dispatches on format: "text", "yaml" or "json".
func Write(w io.Writer, format string, r Report) error {
	switch format {
	case "", "text":
		return WriteText(w, r)
	case "yaml":
		return WriteYAML(w, r)
	case "json":
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}
