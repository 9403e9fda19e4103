// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidoc/internal/config"
)

func testServiceConfig() *config.ServiceConfig {
	cfg := config.Default().Swagger
	cfg.Title = "Test API"
	cfg.Description = "A test API"
	cfg.Version = "2.1.0"
	return &cfg
}

func TestNewBuilder(t *testing.T) {
	cfg := testServiceConfig()
	builder := NewBuilder(cfg)

	assert.NotNil(t, builder)
	assert.Equal(t, cfg, builder.config)
}

func TestBuilder_Build_Defaults(t *testing.T) {
	doc := NewBuilder(testServiceConfig()).Build()

	require.NotNil(t, doc)
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Test API", doc.Info.Title)
	assert.Equal(t, "A test API", doc.Info.Description)
	assert.Equal(t, "2.1.0", doc.Info.Version)
	assert.Nil(t, doc.Info.Contact)
	assert.Nil(t, doc.Info.License)
	assert.NotNil(t, doc.Paths)
	assert.Empty(t, doc.Paths)
	assert.Empty(t, doc.Servers)
}

func TestBuilder_Build_ContactAndLicense(t *testing.T) {
	cfg := testServiceConfig()
	cfg.Contact = config.ContactConfig{Email: "api@acme.test"}
	cfg.License = config.LicenseConfig{Name: "MIT", URL: "https://opensource.org/licenses/MIT"}

	doc := NewBuilder(cfg).Build()

	require.NotNil(t, doc.Info.Contact)
	assert.Equal(t, "api@acme.test", doc.Info.Contact.Email)
	require.NotNil(t, doc.Info.License)
	assert.Equal(t, "MIT", doc.Info.License.Name)
	assert.Equal(t, "https://opensource.org/licenses/MIT", doc.Info.License.URL)
}

func TestBuilder_Build_LicenseURLOnly(t *testing.T) {
	cfg := testServiceConfig()
	cfg.License = config.LicenseConfig{URL: "https://acme.test/terms"}

	doc := NewBuilder(cfg).Build()

	require.NotNil(t, doc.Info.License)
	assert.Empty(t, doc.Info.License.Name)
	assert.Equal(t, "https://acme.test/terms", doc.Info.License.URL)
}

func TestBuilder_Build_ServersPreserveOrder(t *testing.T) {
	cfg := testServiceConfig()
	cfg.Servers = []config.ServerConfig{
		{URL: "https://c.test", Description: "third alphabetically"},
		{URL: "https://a.test", Description: "first alphabetically"},
		{URL: "https://b.test"},
	}

	doc := NewBuilder(cfg).Build()

	require.Len(t, doc.Servers, 3)
	assert.Equal(t, "https://c.test", doc.Servers[0].URL)
	assert.Equal(t, "third alphabetically", doc.Servers[0].Description)
	assert.Equal(t, "https://a.test", doc.Servers[1].URL)
	assert.Equal(t, "https://b.test", doc.Servers[2].URL)
}

func TestBuilder_Build_ExternalDocs(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		present bool
	}{
		{"empty url", "", false},
		{"whitespace url", "   \t", false},
		{"set url", "https://docs.acme.test", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServiceConfig()
			cfg.ExternalDocs = config.ExternalDocsConfig{Description: "Guide", URL: tt.url}

			doc := NewBuilder(cfg).Build()

			if !tt.present {
				assert.Nil(t, doc.ExternalDocs)
				return
			}
			require.NotNil(t, doc.ExternalDocs)
			assert.Equal(t, tt.url, doc.ExternalDocs.URL)
			assert.Equal(t, "Guide", doc.ExternalDocs.Description)
		})
	}
}

func TestBuilder_Build_Tags(t *testing.T) {
	cfg := testServiceConfig()
	doc := NewBuilder(cfg).Build()
	assert.Nil(t, doc.Tags)

	cfg.Tags = []config.TagConfig{
		{Name: "users", Description: "User operations"},
		{Name: "admin"},
		{Name: "billing", Description: "Invoices"},
	}
	doc = NewBuilder(cfg).Build()

	require.Len(t, doc.Tags, 3)
	assert.Equal(t, "users", doc.Tags[0].Name)
	assert.Equal(t, "User operations", doc.Tags[0].Description)
	assert.Equal(t, "admin", doc.Tags[1].Name)
	assert.Equal(t, "billing", doc.Tags[2].Name)
}

func TestBuilder_Build_NoSecurityWhenAllDisabled(t *testing.T) {
	doc := NewBuilder(testServiceConfig()).Build()

	assert.Nil(t, doc.Components)
	assert.Nil(t, doc.Security)

	out, err := NewWriter().ToJSON(doc)
	require.NoError(t, err)
	assert.NotContains(t, out, "components")
	assert.NotContains(t, out, "security")
	assert.NotContains(t, out, "externalDocs")
	assert.NotContains(t, out, "tags")
}

func TestBuilder_Build_SingleScheme(t *testing.T) {
	enable := map[string]func(*config.SecurityConfig){
		"basicAuth":  func(s *config.SecurityConfig) { s.Basic.Enabled = true },
		"bearerAuth": func(s *config.SecurityConfig) { s.Bearer.Enabled = true },
		"apiKey":     func(s *config.SecurityConfig) { s.APIKey.Enabled = true },
		"oauth2":     func(s *config.SecurityConfig) { s.OAuth2.Enabled = true },
	}

	for name, fn := range enable {
		t.Run(name, func(t *testing.T) {
			cfg := testServiceConfig()
			fn(&cfg.Security)

			doc := NewBuilder(cfg).Build()

			require.NotNil(t, doc.Components)
			assert.Equal(t, []string{name}, doc.Components.SecuritySchemes.Keys())
			require.Len(t, doc.Security, 1)
			require.Len(t, doc.Security[0], 1)
			assert.Contains(t, doc.Security[0], name)
		})
	}
}

func TestBuilder_Build_Idempotent(t *testing.T) {
	cfg := testServiceConfig()
	cfg.Servers = []config.ServerConfig{{URL: "https://a.test"}, {URL: "https://b.test"}}
	cfg.Tags = []config.TagConfig{{Name: "x"}, {Name: "y"}}
	cfg.ExternalDocs.URL = "https://docs.test"
	cfg.Security.Basic.Enabled = true
	cfg.Security.Bearer.Enabled = true
	cfg.Security.APIKey.Enabled = true
	cfg.Security.OAuth2.Enabled = true

	writer := NewWriter()
	for _, format := range []string{FormatYAML, FormatJSON} {
		first, err := writer.Render(NewBuilder(cfg).Build(), format)
		require.NoError(t, err)
		second, err := writer.Render(NewBuilder(cfg).Build(), format)
		require.NoError(t, err)
		assert.Equal(t, first, second, format)
	}
}
