// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches implementation
	ExitCodeDifference = 1 // Document differs from implementation
	ExitCodeCheckError = 2 // Error during analysis
)

var (
	checkIgnore       []string
	checkBreakingOnly bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the document matches the current implementation",
	Long: `Check validates that your OpenAPI document matches your current code.

This command generates a document from your source code and compares it with
the existing output file. It's useful for CI pipelines to ensure the document
is always in sync with the implementation.

Exit codes:
  0  Document matches implementation
  1  Document differs from implementation
  2  Error during analysis

Example:
  apidoc check                        # Fail on any difference
  apidoc check --breaking-only        # Fail only on breaking changes
  apidoc check --ignore '/internal/**' --ignore 'Legacy*'`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "glob patterns of paths or schema names to ignore")
	checkCmd.Flags().BoolVar(&checkBreakingOnly, "breaking-only", false, "fail only on breaking changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	specPath := resolvePath(cfg.Output)

	printVerbose("Check configuration:")
	printVerbose("  Breaking only: %t", checkBreakingOnly)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Paths: %s", strings.Join(pathsOrDefault(args, cfg), ", "))
	printVerbose("  Document: %s", cfg.Output)

	if _, err := os.Stat(specPath); errors.Is(err, os.ErrNotExist) {
		printInfo("Run 'apidoc generate' first to create the document")
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("document not found: %s", cfg.Output)}
	}

	existing, err := openapi.ReadFile(specPath)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: fmt.Errorf("failed to read existing document: %w", err)}
	}

	generated, err := generateDocument(cfg, baseDir(), args, logrus.StandardLogger())
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	result := applyIgnorePatterns(openapi.NewDiffer().Diff(existing, generated), checkIgnore)

	if result.IsEmpty() {
		printInfo("Document is in sync with implementation")
		return nil
	}

	printInfo("Document differs from implementation:\n")
	printInfo("%s", openapi.FormatDiff(result))

	if result.HasBreakingChanges {
		printError("Breaking changes detected!")
	}
	printInfo("Run 'apidoc generate' to update the document")

	if checkBreakingOnly && !result.HasBreakingChanges {
		return nil
	}
	return &ExitError{Code: ExitCodeDifference, Err: errors.New("document differs from implementation")}
}

// applyIgnorePatterns drops changes whose path or schema name matches one of
// the patterns and recomputes the breaking flag.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) *openapi.DiffResult {
	if len(patterns) == 0 {
		return result
	}

	filtered := &openapi.DiffResult{}
	for _, change := range result.Changes {
		if matchesAnyPattern(changeSubject(change), patterns) {
			continue
		}
		filtered.Changes = append(filtered.Changes, change)
		if change.Breaking {
			filtered.HasBreakingChanges = true
		}
	}
	filtered.Summary = generateFilteredSummary(filtered)

	return filtered
}

// changeSubject returns the path of an operation target ("GET /users" or
// "GET /users 404") or the name of a schema or security scheme.
func changeSubject(c openapi.Change) string {
	switch c.Section {
	case openapi.SectionOperation, openapi.SectionResponse:
		fields := strings.Fields(c.Target)
		if len(fields) >= 2 {
			return fields[1]
		}
	}
	return c.Target
}

// matchesAnyPattern checks if a string matches any of the given glob patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == s {
			return true
		}
		if matched, _ := doublestar.Match(pattern, s); matched {
			return true
		}
	}
	return false
}

// generateFilteredSummary generates a summary for filtered results.
func generateFilteredSummary(result *openapi.DiffResult) string {
	if result.IsEmpty() {
		return "No changes detected (after applying filters)"
	}
	return openapi.Summarize(result)
}
