// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/pkg/types"
)

// AssembleSecurity converts the enabled schemes into security scheme
// components and requirements. Schemes appear in the order basic, bearer,
// apiKey, oauth2, and each becomes its own requirement entry, so any one of
// them satisfies the document's security.
func AssembleSecurity(sec config.SecurityConfig) (*types.OrderedMap[*types.SecurityScheme], []types.SecurityRequirement) {
	schemes := types.NewOrderedMap[*types.SecurityScheme]()
	var requirements []types.SecurityRequirement

	for _, s := range sec.Enabled() {
		name := s.SchemeName()
		schemes.Set(name, securityScheme(s))
		requirements = append(requirements, types.SecurityRequirement{name: {}})
	}

	return schemes, requirements
}

// securityScheme builds the component for a single scheme. The description
// is the canonical scheme name.
func securityScheme(s config.SecurityScheme) *types.SecurityScheme {
	description := s.SchemeName()

	switch s := s.(type) {
	case config.BasicAuth:
		return &types.SecurityScheme{
			Type:        "http",
			Scheme:      "basic",
			Description: description,
		}
	case config.BearerAuth:
		return &types.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: s.BearerFormat,
			Description:  description,
		}
	case config.APIKeyAuth:
		return &types.SecurityScheme{
			Type:        "apiKey",
			In:          string(s.In),
			Name:        s.KeyName,
			Description: description,
		}
	case config.OAuth2Auth:
		// Configured scopes are not carried into the flow.
		return &types.SecurityScheme{
			Type:        "oauth2",
			Description: description,
			Flows: &types.OAuthFlows{
				AuthorizationCode: &types.OAuthFlow{
					AuthorizationURL: s.AuthorizationURL,
					TokenURL:         s.TokenURL,
					RefreshURL:       s.RefreshURL,
					Scopes:           map[string]string{},
				},
			},
		}
	}
	panic("openapi: unknown security scheme " + s.SchemeName())
}
