// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidoc/pkg/types"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath infers the output format from a file extension.
// Unknown extensions yield YAML.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Writer renders OpenAPI documents as YAML or JSON.
type Writer struct {
	// Indent is the indentation width for both formats (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// Write renders doc to out in the given format.
func (w *Writer) Write(doc *types.OpenAPI, out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FormatYAML, "yml", "":
		return w.WriteYAML(doc, out)
	case FormatJSON:
		return w.WriteJSON(doc, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteYAML writes an OpenAPI document as YAML to the given writer.
func (w *Writer) WriteYAML(doc *types.OpenAPI, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(w.Indent)
	defer encoder.Close()

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes an OpenAPI document as JSON to the given writer.
func (w *Writer) WriteJSON(doc *types.OpenAPI, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// Render returns doc encoded in the given format.
func (w *Writer) Render(doc *types.OpenAPI, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(doc, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes an OpenAPI document to a file.
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(doc *types.OpenAPI, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	data, err := w.Render(doc, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ToYAML returns the YAML representation of an OpenAPI document as a string.
func (w *Writer) ToYAML(doc *types.OpenAPI) (string, error) {
	data, err := w.Render(doc, FormatYAML)
	return string(data), err
}

// ToJSON returns the JSON representation of an OpenAPI document as a string.
func (w *Writer) ToJSON(doc *types.OpenAPI) (string, error) {
	data, err := w.Render(doc, FormatJSON)
	return string(data), err
}

// ReadFile reads an OpenAPI document from a file.
// The format is inferred from the file extension.
func ReadFile(path string) (*types.OpenAPI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes a document. YAML input also accepts JSON.
func Parse(data []byte, format string) (*types.OpenAPI, error) {
	var doc types.OpenAPI
	if format == FormatJSON {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return &doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}
