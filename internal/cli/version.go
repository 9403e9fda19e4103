// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build metadata, overridden with -ldflags "-X github.com/api2spec/apidoc/internal/cli.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show apidoc build information",
	Long: `Show which apidoc build is running: release version, source commit,
build date, and the Go toolchain and platform it was compiled for.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("apidoc %s\n", Version)
		cmd.Printf("  Commit:     %s\n", Commit)
		cmd.Printf("  Build Date: %s\n", BuildDate)
		cmd.Printf("  Go Version: %s\n", runtime.Version())
		cmd.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

// GetVersionInfo returns a one-line build summary for logs.
func GetVersionInfo() string {
	return fmt.Sprintf("apidoc %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
