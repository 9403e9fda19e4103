// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/internal/discovery"
	"github.com/api2spec/apidoc/internal/openapi"
	"github.com/api2spec/apidoc/internal/scanner"
	"github.com/api2spec/apidoc/internal/schema"
	"github.com/api2spec/apidoc/pkg/types"
)

// newScanner creates a scanner rooted at base using the source settings.
func newScanner(cfg *config.Config, base string) *scanner.Scanner {
	return scanner.New(scanner.Config{
		BasePath:        base,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
}

// generateDocument scans paths under base, discovers endpoints and struct
// schemas, and assembles the document. Empty paths fall back to the
// configured source paths.
func generateDocument(cfg *config.Config, base string, paths []string, log logrus.FieldLogger) (*types.OpenAPI, error) {
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	files, err := newScanner(cfg, base).ScanPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}
	log.WithField("files", len(files)).Debug("scanned source files")

	found, err := discovery.NewDiscoverer(nil, log, cfg.Generation.StrictMode).Discover(files)
	if err != nil {
		return nil, fmt.Errorf("failed to discover endpoints: %w", err)
	}

	extractor := schema.NewGoSchemaExtractor(nil)
	extractor.ExtractAll(found.Structs)

	doc := openapi.NewGenerator(cfg, log).Generate(found.Endpoints, extractor.Registry().Schemas())
	log.WithFields(logrus.Fields{
		"paths":   len(doc.Paths),
		"schemas": extractor.Registry().Count(),
	}).Debug("document assembled")

	return doc, nil
}
