// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi assembles OpenAPI documents from configuration and
// annotated endpoints.
package openapi

import (
	"strings"

	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/pkg/types"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.3"

// Builder constructs the document skeleton from the service configuration.
type Builder struct {
	config *config.ServiceConfig
}

// NewBuilder creates a new OpenAPI builder with the given configuration.
func NewBuilder(cfg *config.ServiceConfig) *Builder {
	return &Builder{
		config: cfg,
	}
}

// Build creates the document skeleton: info, servers, external docs, tags
// and, when at least one scheme is enabled, the security section. Paths are
// left empty for the enricher to fill.
func (b *Builder) Build() *types.OpenAPI {
	doc := &types.OpenAPI{
		OpenAPI:      Version,
		Info:         b.buildInfo(),
		Servers:      b.buildServers(),
		Paths:        make(map[string]*types.PathItem),
		ExternalDocs: b.buildExternalDocs(),
		Tags:         b.buildTags(),
	}

	schemes, requirements := AssembleSecurity(b.config.Security)
	if schemes.Len() > 0 {
		doc.Components = &types.Components{
			SecuritySchemes: schemes,
		}
		doc.Security = requirements
	}

	return doc
}

// buildInfo constructs the Info object from configuration.
func (b *Builder) buildInfo() types.Info {
	info := types.Info{
		Title:       b.config.Title,
		Description: b.config.Description,
		Version:     b.config.Version,
	}

	if !b.config.Contact.IsZero() {
		info.Contact = &types.Contact{
			Name:  b.config.Contact.Name,
			URL:   b.config.Contact.URL,
			Email: b.config.Contact.Email,
		}
	}

	if !b.config.License.IsZero() {
		info.License = &types.License{
			Name: b.config.License.Name,
			URL:  b.config.License.URL,
		}
	}

	return info
}

// buildServers constructs the servers list from configuration.
func (b *Builder) buildServers() []types.Server {
	servers := make([]types.Server, 0, len(b.config.Servers))
	for _, s := range b.config.Servers {
		servers = append(servers, types.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return servers
}

// buildExternalDocs returns nil unless a non-blank URL is configured.
func (b *Builder) buildExternalDocs() *types.ExternalDocs {
	if strings.TrimSpace(b.config.ExternalDocs.URL) == "" {
		return nil
	}
	return &types.ExternalDocs{
		Description: b.config.ExternalDocs.Description,
		URL:         b.config.ExternalDocs.URL,
	}
}

// buildTags constructs the tags list from configuration; nil when none.
func (b *Builder) buildTags() []types.Tag {
	if len(b.config.Tags) == 0 {
		return nil
	}
	tags := make([]types.Tag, 0, len(b.config.Tags))
	for _, t := range b.config.Tags {
		tags = append(tags, types.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return tags
}
