// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/pkg/types"
)

// Generator runs the full pipeline: skeleton, filtering, default operations,
// enrichment and component schemas.
type Generator struct {
	config   *config.Config
	filter   *Filter
	enricher *Enricher
	log      logrus.FieldLogger
}

// NewGenerator creates a generator. A nil logger uses the standard logger.
func NewGenerator(cfg *config.Config, log logrus.FieldLogger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		config:   cfg,
		filter:   NewFilter(&cfg.Swagger),
		enricher: NewEnricher(log),
		log:      log,
	}
}

// Generate assembles a document from endpoints, in order. Of schemas, which
// may be nil, only those reachable by $ref from an operation become component
// schemas.
func (g *Generator) Generate(endpoints []types.Endpoint, schemas map[string]*types.Schema) *types.OpenAPI {
	doc := NewBuilder(&g.config.Swagger).Build()
	operationIDs := make(map[string]int)

	for _, ep := range endpoints {
		log := g.log.WithFields(logrus.Fields{
			"method":  ep.Handler.Verb,
			"path":    ep.Path,
			"handler": ep.Handler.Name,
		})

		verb, ok := types.ParseVerb(string(ep.Handler.Verb))
		if !ok {
			log.Warn("skipping endpoint with unsupported HTTP method")
			continue
		}
		ep.Handler.Verb = verb
		if !g.filter.Allows(ep) {
			log.Debug("endpoint filtered out")
			continue
		}

		item, exists := doc.Paths[ep.Path]
		if !exists {
			item = &types.PathItem{}
			doc.Paths[ep.Path] = item
		}
		if item.Operation(ep.Handler.Verb) != nil {
			log.Warn("duplicate route, replacing earlier operation")
		}

		op := DefaultOperation(ep, g.config.Generation.DefaultResponses)
		op.OperationID = uniqueOperationID(operationIDs, op.OperationID)
		op = g.enricher.Enrich(op, ep.Handler, ep.Annotation)
		item.SetOperation(ep.Handler.Verb, op)
	}

	if used := referencedSchemas(doc.Paths, schemas); len(used) > 0 {
		if doc.Components == nil {
			doc.Components = &types.Components{}
		}
		doc.Components.Schemas = used
	}

	return doc
}

// uniqueOperationID suffixes repeated ids with "_<n>".
func uniqueOperationID(seen map[string]int, id string) string {
	n := seen[id]
	seen[id] = n + 1
	if n == 0 {
		return id
	}
	return fmt.Sprintf("%s_%d", id, n)
}

// referencedSchemas returns the schemas reachable from operation responses
// and parameters, following references between schemas.
func referencedSchemas(paths map[string]*types.PathItem, schemas map[string]*types.Schema) map[string]*types.Schema {
	if len(schemas) == 0 {
		return nil
	}

	used := make(map[string]*types.Schema)
	var visit func(s *types.Schema)
	visit = func(s *types.Schema) {
		if s == nil {
			return
		}
		if name, ok := strings.CutPrefix(s.Ref, types.ComponentSchemaPrefix); ok {
			if _, seen := used[name]; !seen {
				if target, found := schemas[name]; found {
					used[name] = target
					visit(target)
				}
			}
		}
		visit(s.Items)
		visit(s.AdditionalProperties)
		for _, prop := range s.Properties {
			visit(prop)
		}
	}

	for _, item := range paths {
		for _, verb := range types.Verbs {
			op := item.Operation(verb)
			if op == nil {
				continue
			}
			for _, p := range op.Parameters {
				visit(p.Schema)
			}
			if op.Responses == nil {
				continue
			}
			for _, resp := range op.Responses.All() {
				for _, media := range resp.Content {
					visit(media.Schema)
				}
			}
		}
	}

	return used
}
