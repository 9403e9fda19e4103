// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"

	"github.com/erraggy/oastools/parser"
	"github.com/erraggy/oastools/validator"

	"github.com/api2spec/apidoc/pkg/types"
)

// Report summarizes a validation run.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateBytes validates a rendered document. In strict mode warnings are
// reported as errors.
func ValidateBytes(data []byte, strict bool) (*Report, error) {
	parsed, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithSourceName("apidoc"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	result, err := validator.ValidateWithOptions(
		validator.WithParsed(*parsed),
		validator.WithStrictMode(strict),
		validator.WithIncludeWarnings(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}

	report := &Report{Valid: result.Valid}
	for _, e := range result.Errors {
		report.Errors = append(report.Errors, e.String())
	}
	for _, w := range result.Warnings {
		report.Warnings = append(report.Warnings, w.String())
	}
	return report, nil
}

// Validate renders doc as JSON and validates it.
func (w *Writer) Validate(doc *types.OpenAPI, strict bool) (*Report, error) {
	data, err := w.Render(doc, FormatJSON)
	if err != nil {
		return nil, err
	}
	return ValidateBytes(data, strict)
}
