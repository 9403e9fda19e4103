// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/internal/openapi"
)

var (
	generateDryRun   bool
	generateValidate bool
	generateStrict   bool
	generateInclude  []string
	generateExclude  []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate the OpenAPI document from source code",
	Long: `Generate an OpenAPI document by scanning annotated handlers.

The generate command scans Go and Java sources, discovers handlers declared
with @Route (Go) or Spring mapping annotations (Java), enriches them with
their @Summary/@Success/@Error or @Api annotations, and writes the resulting
OpenAPI 3.0 document.

Example:
  apidoc generate                           # Generate from configured paths
  apidoc generate ./internal/api            # Generate from specific paths
  apidoc generate -o openapi.json           # Write JSON
  apidoc generate --validate                # Validate before writing
  apidoc generate --dry-run                 # Print instead of writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the document instead of writing it")
	generateCmd.Flags().BoolVar(&generateValidate, "validate", false, "validate the document before writing it")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "fail on malformed annotations and validation warnings")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "glob patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceFlags(cfg, generateInclude, generateExclude, generateStrict)

	printVerbose("Configuration:")
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	printVerbose("  Paths: %s", strings.Join(pathsOrDefault(args, cfg), ", "))

	doc, err := generateDocument(cfg, baseDir(), args, logrus.StandardLogger())
	if err != nil {
		return err
	}

	writer := openapi.NewWriter()

	if generateValidate {
		report, err := writer.Validate(doc, cfg.Generation.StrictMode)
		if err != nil {
			return err
		}
		if !printReport(report) {
			return &ExitError{Code: 1, Err: fmt.Errorf("generated document is invalid")}
		}
	}

	if generateDryRun {
		return writer.Write(doc, cmd.OutOrStdout(), cfg.Format)
	}

	path := resolvePath(cfg.Output)
	if err := writer.WriteFile(doc, path, cfg.Format); err != nil {
		return err
	}
	printInfo("Wrote %s (%d paths)", cfg.Output, len(doc.Paths))

	return nil
}

// applySourceFlags applies the scan and strictness overrides shared by
// the generating commands.
func applySourceFlags(cfg *config.Config, include, exclude []string, strict bool) {
	if len(include) > 0 {
		cfg.Source.Include = include
	}
	if len(exclude) > 0 {
		cfg.Source.Exclude = exclude
	}
	if strict {
		cfg.Generation.StrictMode = true
	}
}

// pathsOrDefault returns args, or the configured source paths.
func pathsOrDefault(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Source.Paths
}

// printReport prints validation errors and warnings and reports validity.
func printReport(report *openapi.Report) bool {
	for _, w := range report.Warnings {
		printInfo("warning: %s", w)
	}
	for _, e := range report.Errors {
		printError("%s", e)
	}
	if report.Valid {
		printVerbose("Document is valid")
	}
	return report.Valid
}
