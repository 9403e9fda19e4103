// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/openapi"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an OpenAPI document",
	Long: `Validate an OpenAPI document against the OpenAPI 3.0 specification.

If a file is provided, it is validated as is. Otherwise the document is
generated from the current source code and validated without being written.

Example:
  apidoc validate                     # Validate the generated document
  apidoc validate openapi.yaml        # Validate an existing file
  apidoc validate --strict            # Treat warnings as errors`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		report *openapi.Report
		err    error
	)

	if len(args) == 1 {
		data, readErr := os.ReadFile(resolvePath(args[0]))
		if readErr != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		report, err = openapi.ValidateBytes(data, validateStrict)
	} else {
		cfg, cfgErr := loadConfig()
		if cfgErr != nil {
			return cfgErr
		}
		strict := validateStrict || cfg.Generation.StrictMode
		doc, genErr := generateDocument(cfg, baseDir(), nil, logrus.StandardLogger())
		if genErr != nil {
			return genErr
		}
		report, err = openapi.NewWriter().Validate(doc, strict)
	}
	if err != nil {
		return err
	}

	if !printReport(report) {
		return &ExitError{Code: 1, Err: errors.New("document is invalid")}
	}
	printInfo("Document is valid")
	return nil
}
