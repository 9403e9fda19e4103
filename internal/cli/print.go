// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/openapi"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document to stdout",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, it is read and printed in the requested format, which
also converts between YAML and JSON. Otherwise the document is generated from
the current source code.

Example:
  apidoc print                      # Generate and print
  apidoc print openapi.yaml -f json # Convert an existing file to JSON
  apidoc print -f json | jq '.paths'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout ignores the configured output file format
	outputFormat := openapi.FormatYAML
	if format != "" {
		outputFormat = cfg.Format
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", outputFormat)

	writer := openapi.NewWriter()

	if len(args) > 0 {
		doc, err := openapi.ReadFile(resolvePath(args[0]))
		if err != nil {
			return err
		}
		return writer.Write(doc, cmd.OutOrStdout(), outputFormat)
	}

	doc, err := generateDocument(cfg, baseDir(), nil, logrus.StandardLogger())
	if err != nil {
		return err
	}
	return writer.Write(doc, cmd.OutOrStdout(), outputFormat)
}
