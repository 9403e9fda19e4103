// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"github.com/api2spec/apidoc/internal/scanner"
)

// Discoverer runs the registered sources over scanned files.
type Discoverer struct {
	registry *Registry
	log      logrus.FieldLogger

	// strict turns unreadable files and malformed annotations into errors
	strict bool
}

// NewDiscoverer creates a discoverer. A nil registry uses DefaultRegistry and
// a nil logger the standard logger.
func NewDiscoverer(registry *Registry, log logrus.FieldLogger, strict bool) *Discoverer {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Discoverer{
		registry: registry,
		log:      log,
		strict:   strict,
	}
}

// Discover extracts endpoints and structs from files, in order.
//
// Outside strict mode a file that fails to parse is skipped and malformed
// annotations are dropped, both with a warning. In strict mode the first
// such problem is returned; it satisfies errors.Is(err, errors.NotValid)
// when it comes from an annotation.
func (d *Discoverer) Discover(files []scanner.SourceFile) (*Result, error) {
	result := &Result{}

	for _, file := range files {
		log := d.log.WithField("file", file.RelPath)

		sources := d.registry.ForLanguage(file.Language)
		if len(sources) == 0 {
			log.Debug("no discovery source for language")
			continue
		}

		for _, source := range sources {
			found, err := source.Discover(file)
			if err != nil {
				err = errors.Annotatef(err, "discovering %s with %s", file.RelPath, source.Name())
				if d.strict {
					return nil, err
				}
				log.WithError(err).Warn("skipping unparsable file")
				continue
			}

			for _, issue := range found.Issues {
				if d.strict {
					return nil, issue
				}
				log.WithError(issue).Warn("dropping malformed annotation")
			}
			result.Merge(found)
		}
	}

	d.log.WithFields(logrus.Fields{
		"files":     len(files),
		"endpoints": len(result.Endpoints),
		"structs":   len(result.Structs),
	}).Debug("discovery finished")

	return result, nil
}
