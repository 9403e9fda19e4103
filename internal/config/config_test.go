// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(originalDir) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "default", cfg.Swagger.Group)
	assert.Equal(t, "API Documentation", cfg.Swagger.Title)
	assert.Equal(t, "1.0.0", cfg.Swagger.Version)
	assert.Empty(t, cfg.Swagger.PathsToMatch)
	assert.Empty(t, cfg.Swagger.PathsToExclude)
	assert.False(t, cfg.Swagger.Cache.Enabled)
	assert.Equal(t, 3600, cfg.Swagger.Cache.Timeout)
	assert.False(t, cfg.Swagger.RateLimit.Enabled)
	assert.Equal(t, 10, cfg.Swagger.RateLimit.RequestsPerSecond)
	assert.Equal(t, "openapi.yaml", cfg.Output)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, []string{"200"}, cfg.Generation.DefaultResponses)
	assert.Equal(t, 500, cfg.Watch.Debounce)
}

func TestDefaultSecurity(t *testing.T) {
	sec := DefaultSecurity()

	assert.Empty(t, sec.Enabled())
	assert.Equal(t, "JWT", sec.Bearer.BearerFormat)
	assert.Equal(t, "X-API-KEY", sec.APIKey.KeyName)
	assert.Equal(t, InHeader, sec.APIKey.In)
	assert.Equal(t, []string{"read", "write"}, sec.OAuth2.Scopes)
	assert.Equal(t, "Basic authentication", sec.Basic.Description)
	assert.Equal(t, "Bearer token authentication", sec.Bearer.Description)
	assert.Equal(t, "API key authentication", sec.APIKey.Description)
	assert.Equal(t, "OAuth2 authentication", sec.OAuth2.Description)
}

func TestSecurityConfig_SchemesOrder(t *testing.T) {
	sec := DefaultSecurity()
	sec.OAuth2.Enabled = true
	sec.Basic.Enabled = true

	var names []string
	for _, s := range sec.Schemes() {
		names = append(names, s.SchemeName())
	}
	assert.Equal(t, []string{"basicAuth", "bearerAuth", "apiKey", "oauth2"}, names)

	enabled := sec.Enabled()
	require.Len(t, enabled, 2)
	assert.Equal(t, "basicAuth", enabled[0].SchemeName())
	assert.Equal(t, "oauth2", enabled[1].SchemeName())
}

func TestLoad_NoConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "API Documentation", cfg.Swagger.Title)
	assert.Equal(t, "1.0.0", cfg.Swagger.Version)
	assert.Equal(t, "openapi.yaml", cfg.Output)
	assert.Equal(t, InHeader, cfg.Swagger.Security.APIKey.In)
	assert.Equal(t, "JWT", cfg.Swagger.Security.Bearer.BearerFormat)
	assert.Equal(t, 500, cfg.Watch.Debounce)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `
output: api.yaml
format: yaml
swagger:
  title: "Orders API"
  description: "Order management"
  version: "2.0.0"
  basePackage: com.acme.orders
  servers:
    - url: https://api.acme.test
      description: Production
    - url: https://staging.acme.test
  pathsToMatch:
    - /api/**
  contact:
    name: Platform Team
    email: platform@acme.test
  tags:
    - name: orders
      description: Order operations
  security:
    bearer:
      enabled: true
    apiKey:
      enabled: true
      keyName: X-TOKEN
      in: QUERY
generation:
  defaultResponses: ["200", "500"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apidoc.yaml"), []byte(configContent), 0644))
	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "api.yaml", cfg.Output)
	assert.Equal(t, "Orders API", cfg.Swagger.Title)
	assert.Equal(t, "Order management", cfg.Swagger.Description)
	assert.Equal(t, "2.0.0", cfg.Swagger.Version)
	assert.Equal(t, "com.acme.orders", cfg.Swagger.BasePackage)
	require.Len(t, cfg.Swagger.Servers, 2)
	assert.Equal(t, "https://api.acme.test", cfg.Swagger.Servers[0].URL)
	assert.Equal(t, "Production", cfg.Swagger.Servers[0].Description)
	assert.Equal(t, "https://staging.acme.test", cfg.Swagger.Servers[1].URL)
	assert.Equal(t, []string{"/api/**"}, cfg.Swagger.PathsToMatch)
	assert.Equal(t, "Platform Team", cfg.Swagger.Contact.Name)
	require.Len(t, cfg.Swagger.Tags, 1)
	assert.Equal(t, "orders", cfg.Swagger.Tags[0].Name)
	assert.Equal(t, []string{"200", "500"}, cfg.Generation.DefaultResponses)

	sec := cfg.Swagger.Security
	assert.True(t, sec.Bearer.Enabled)
	assert.Equal(t, "JWT", sec.Bearer.BearerFormat)
	assert.Equal(t, "Bearer token authentication", sec.Bearer.Description)
	assert.True(t, sec.APIKey.Enabled)
	assert.Equal(t, "X-TOKEN", sec.APIKey.KeyName)
	assert.Equal(t, InQuery, sec.APIKey.In)
	assert.False(t, sec.Basic.Enabled)
}

func TestLoad_JSONConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	configContent := `{
  "output": "openapi.json",
  "format": "json",
  "swagger": {
    "title": "Echo API",
    "version": "1.2.0"
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apidoc.json"), []byte(configContent), 0644))
	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openapi.json", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "Echo API", cfg.Swagger.Title)
	assert.Equal(t, "1.2.0", cfg.Swagger.Version)
}

func TestLoad_DotPrefixedConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".apidoc.yaml"), []byte("output: spec.yaml\n"), 0644))
	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "spec.yaml", cfg.Output)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "custom-config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output: custom.yaml\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", cfg.Output)
}

func TestLoad_ExplicitConfigPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ConfigFilePriority(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apidoc.yaml"), []byte("output: first.yaml\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".apidoc.yaml"), []byte("output: second.yaml\n"), 0644))
	chdir(t, tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "first.yaml", cfg.Output)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apidoc.yaml"), []byte("swagger:\n  title: From File\n"), 0644))
	chdir(t, tmpDir)
	t.Setenv("APIDOC_SWAGGER_TITLE", "From Env")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.Swagger.Title)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"invalid format", func(c *Config) { c.Format = "xml" }, "format"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"missing title", func(c *Config) { c.Swagger.Title = "  " }, "swagger.title"},
		{"missing version", func(c *Config) { c.Swagger.Version = "" }, "swagger.version"},
		{"server without url", func(c *Config) {
			c.Swagger.Servers = []ServerConfig{{URL: "https://a.test"}, {Description: "broken"}}
		}, "swagger.servers[1].url"},
		{"tag without name", func(c *Config) {
			c.Swagger.Tags = []TagConfig{{Description: "nameless"}}
		}, "swagger.tags[0].name"},
		{"bad api key location", func(c *Config) {
			c.Swagger.Security.APIKey.Enabled = true
			c.Swagger.Security.APIKey.In = "body"
		}, "swagger.security.apiKey.in"},
		{"oauth2 without token url", func(c *Config) {
			c.Swagger.Security.OAuth2.Enabled = true
			c.Swagger.Security.OAuth2.AuthorizationURL = "https://auth.test/authorize"
		}, "swagger.security.oauth2.tokenUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var valErrs ValidationErrors
			require.ErrorAs(t, err, &valErrs)
			require.Len(t, valErrs, 1)
			assert.Equal(t, tt.field, valErrs[0].Field)
		})
	}
}

func TestValidate_DisabledSchemesNotChecked(t *testing.T) {
	cfg := Default()
	cfg.Swagger.Security.APIKey.In = "body"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	cfg.Swagger.Title = ""
	cfg.Watch.Debounce = -5

	err := cfg.Validate()
	require.Error(t, err)

	var valErrs ValidationErrors
	require.ErrorAs(t, err, &valErrs)
	assert.Len(t, valErrs, 3)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Field:   "format",
		Message: "unsupported format",
	}
	assert.Contains(t, err.Error(), "format")
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
		{Field: "field2", Message: "error2"},
	}
	errStr := errs.Error()
	assert.Contains(t, errStr, "field1")
	assert.Contains(t, errStr, "error1")
	assert.Contains(t, errStr, "field2")
	assert.Contains(t, errStr, "error2")
}

func TestValidationErrors_ErrorEmpty(t *testing.T) {
	errs := ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
}

func TestValidationErrors_ErrorSingle(t *testing.T) {
	errs := ValidationErrors{
		{Field: "field1", Message: "error1"},
	}
	assert.Contains(t, errs.Error(), "config validation error")
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "apidoc.yaml"), []byte("output: svc.yaml\n"), 0644))

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "svc.yaml", cfg.Output)
}

func TestLoadFromPath_NoConfig(t *testing.T) {
	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "openapi.yaml", cfg.Output)
	assert.Equal(t, "API Documentation", cfg.Swagger.Title)
}
