// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/api2spec/apidoc/internal/openapi"
	"github.com/api2spec/apidoc/pkg/types"
)

var diffExitCode bool

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the differences.

If only one file is provided, it is compared against the document generated
from the current source code.

If no files are provided, the configured output file is compared against
what would be generated from the current source code.

Example:
  apidoc diff                           # Compare current vs generated
  apidoc diff openapi.yaml              # Compare file vs generated
  apidoc diff old.yaml new.yaml         # Compare two files
  apidoc diff --exit-code old.yaml new.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with 1 when the documents differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var oldDoc, newDoc *types.OpenAPI
	var err error

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s...", args[0], args[1])
		if oldDoc, err = openapi.ReadFile(resolvePath(args[0])); err != nil {
			return err
		}
		if newDoc, err = openapi.ReadFile(resolvePath(args[1])); err != nil {
			return err
		}
	default:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		file := cfg.Output
		if len(args) == 1 {
			file = args[0]
		}
		printVerbose("Comparing %s against generated...", file)
		if oldDoc, err = openapi.ReadFile(resolvePath(file)); err != nil {
			return err
		}
		if newDoc, err = generateDocument(cfg, baseDir(), nil, logrus.StandardLogger()); err != nil {
			return err
		}
	}

	result := openapi.NewDiffer().Diff(oldDoc, newDoc)
	fmt.Fprintln(cmd.OutOrStdout(), openapi.FormatDiff(result))

	if diffExitCode && !result.IsEmpty() {
		return &ExitError{Code: 1, Err: errors.New("documents differ")}
	}
	return nil
}
