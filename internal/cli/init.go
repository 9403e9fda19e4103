// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/apidoc/internal/config"
)

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
	initBasePackage string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new apidoc configuration file",
	Long: `Initialize a new apidoc configuration file in the project directory.

This command creates an apidoc.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Infers the API title from go.mod or pom.xml
  - Detects common source directories
  - Sets up appropriate exclude patterns

Example:
  apidoc init                                 # Create config with detected defaults
  apidoc init --force                         # Overwrite existing config
  apidoc init --interactive                   # Interactive mode with prompts
  apidoc init --title "My API"                # Set custom API title
  apidoc init --base-package com.acme.orders  # Restrict discovery to a package`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for OpenAPI info")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for OpenAPI info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for OpenAPI info")
	initCmd.Flags().StringVar(&initBasePackage, "base-package", "", "only document handlers under this package")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectRoot := baseDir()
	configFile := filepath.Join(projectRoot, "apidoc.yaml")

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	cfg := config.Default()

	info := detectProjectInfo(projectRoot)
	switch {
	case initTitle != "":
		cfg.Swagger.Title = initTitle
	case info.Title != "":
		cfg.Swagger.Title = info.Title
	}

	switch {
	case initVersion != "":
		cfg.Swagger.Version = initVersion
	case info.Version != "":
		cfg.Swagger.Version = info.Version
	}

	switch {
	case initDescription != "":
		cfg.Swagger.Description = initDescription
	case info.Description != "":
		cfg.Swagger.Description = info.Description
	}

	if initBasePackage != "" {
		cfg.Swagger.BasePackage = initBasePackage
	}

	entryPoints := detectEntryPoints(projectRoot)
	cfg.Source.Paths = entryPoints
	printVerbose("Detected source paths: %s", strings.Join(entryPoints, ", "))

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = strings.ToLower(format)
	}

	if initInteractive && isTerminal() {
		var err error
		cfg, err = interactiveInit(cfg)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Title: %s", cfg.Swagger.Title)
	printVerbose("Output: %s", cfg.Output)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title       string
	Module      string
	Version     string
	Description string
}

// detectProjectInfo detects project information from go.mod, falling back
// to a Maven pom.xml.
func detectProjectInfo(projectRoot string) projectInfo {
	if info, ok := goModInfo(filepath.Join(projectRoot, "go.mod")); ok {
		return info
	}
	if info, ok := pomInfo(filepath.Join(projectRoot, "pom.xml")); ok {
		return info
	}
	return projectInfo{}
}

func goModInfo(path string) (projectInfo, bool) {
	file, err := os.Open(path)
	if err != nil {
		return projectInfo{}, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if module, ok := strings.CutPrefix(line, "module "); ok {
			module = strings.Trim(strings.TrimSpace(module), `"`)
			return projectInfo{
				Title:  titleFromName(module[strings.LastIndex(module, "/")+1:]),
				Module: module,
			}, true
		}
	}
	return projectInfo{}, false
}

// pomProject is the subset of a Maven POM read by init.
type pomProject struct {
	ArtifactID  string `xml:"artifactId"`
	Name        string `xml:"name"`
	Version     string `xml:"version"`
	Description string `xml:"description"`
}

func pomInfo(path string) (projectInfo, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return projectInfo{}, false
	}
	var pom pomProject
	if err := xml.Unmarshal(data, &pom); err != nil || pom.ArtifactID == "" {
		return projectInfo{}, false
	}

	info := projectInfo{
		Module:      pom.ArtifactID,
		Description: strings.TrimSpace(pom.Description),
	}
	if name := strings.TrimSpace(pom.Name); name != "" {
		info.Title = name
	} else {
		info.Title = titleFromName(pom.ArtifactID)
	}
	// Maven snapshot suffixes are not API versions
	info.Version = strings.TrimSuffix(strings.TrimSpace(pom.Version), "-SNAPSHOT")
	return info, true
}

// titleFromName turns "my-awesome_api" into "My Awesome Api API".
func titleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return cases.Title(language.English).String(name) + " API"
}

// detectEntryPoints detects common source directories in the project.
func detectEntryPoints(projectRoot string) []string {
	var paths []string

	candidates := []string{
		"./cmd",
		"./internal",
		"./pkg",
		"./api",
		"./handlers",
		"./routes",
		"./server",
		"./src/main/java",
	}

	for _, p := range candidates {
		fullPath := filepath.Join(projectRoot, p)
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			paths = append(paths, p)
		}
	}

	// If no common directories found, use current directory
	if len(paths) == 0 {
		paths = []string{"."}
	}

	return paths
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(os.Stdin)

	prompts := []struct {
		label  string
		target *string
	}{
		{"API Title", &cfg.Swagger.Title},
		{"API Version", &cfg.Swagger.Version},
		{"API Description", &cfg.Swagger.Description},
		{"Base package", &cfg.Swagger.BasePackage},
		{"Output file", &cfg.Output},
		{"Output format (yaml/json)", &cfg.Format},
	}

	for _, p := range prompts {
		fmt.Printf("%s [%s]: ", p.label, *p.target)
		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			*p.target = answer
		}
	}

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# apidoc configuration file
# Values can be overridden with APIDOC_* environment variables,
# e.g. APIDOC_SWAGGER_TITLE.

`
	return append([]byte(header), data...), nil
}
