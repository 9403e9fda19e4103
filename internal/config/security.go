// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Canonical security scheme names, used as component keys.
const (
	BasicSchemeName  = "basicAuth"
	BearerSchemeName = "bearerAuth"
	APIKeySchemeName = "apiKey"
	OAuth2SchemeName = "oauth2"
)

// KeyLocation is where an API key is carried.
type KeyLocation string

// API key locations.
const (
	InHeader KeyLocation = "header"
	InQuery  KeyLocation = "query"
	InCookie KeyLocation = "cookie"
)

// Valid reports whether l is a known location.
func (l KeyLocation) Valid() bool {
	switch l {
	case InHeader, InQuery, InCookie:
		return true
	}
	return false
}

// SecurityScheme is one of BasicAuth, BearerAuth, APIKeyAuth or OAuth2Auth.
type SecurityScheme interface {
	// SchemeName returns the canonical component key.
	SchemeName() string

	// IsEnabled reports whether the scheme is advertised.
	IsEnabled() bool

	securityScheme()
}

// SecurityConfig holds the four supported schemes. Each is enabled
// independently. Scheme descriptions are accepted but the emitted
// description is always the canonical scheme name.
type SecurityConfig struct {
	Basic  BasicAuth  `mapstructure:"basic" yaml:"basic" json:"basic"`
	Bearer BearerAuth `mapstructure:"bearer" yaml:"bearer" json:"bearer"`
	APIKey APIKeyAuth `mapstructure:"apiKey" yaml:"apiKey" json:"apiKey"`
	OAuth2 OAuth2Auth `mapstructure:"oauth2" yaml:"oauth2" json:"oauth2"`
}

// BasicAuth is HTTP basic authentication.
type BasicAuth struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// BearerAuth is HTTP bearer token authentication.
type BearerAuth struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Description  string `mapstructure:"description" yaml:"description" json:"description"`
	BearerFormat string `mapstructure:"bearerFormat" yaml:"bearerFormat" json:"bearerFormat"`
}

// APIKeyAuth is an API key passed in a header, query parameter or cookie.
type APIKeyAuth struct {
	Enabled     bool        `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Description string      `mapstructure:"description" yaml:"description" json:"description"`
	KeyName     string      `mapstructure:"keyName" yaml:"keyName" json:"keyName"`
	In          KeyLocation `mapstructure:"in" yaml:"in" json:"in"`
}

// OAuth2Auth is OAuth2 with the authorization code flow.
type OAuth2Auth struct {
	Enabled          bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Description      string `mapstructure:"description" yaml:"description" json:"description"`
	AuthorizationURL string `mapstructure:"authorizationUrl" yaml:"authorizationUrl" json:"authorizationUrl"`
	TokenURL         string `mapstructure:"tokenUrl" yaml:"tokenUrl" json:"tokenUrl"`
	RefreshURL       string `mapstructure:"refreshUrl" yaml:"refreshUrl" json:"refreshUrl"`

	// Scopes are accepted but not emitted.
	Scopes []string `mapstructure:"scopes" yaml:"scopes" json:"scopes"`
}

func (BasicAuth) SchemeName() string  { return BasicSchemeName }
func (BearerAuth) SchemeName() string { return BearerSchemeName }
func (APIKeyAuth) SchemeName() string { return APIKeySchemeName }
func (OAuth2Auth) SchemeName() string { return OAuth2SchemeName }

func (s BasicAuth) IsEnabled() bool  { return s.Enabled }
func (s BearerAuth) IsEnabled() bool { return s.Enabled }
func (s APIKeyAuth) IsEnabled() bool { return s.Enabled }
func (s OAuth2Auth) IsEnabled() bool { return s.Enabled }

func (BasicAuth) securityScheme()  {}
func (BearerAuth) securityScheme() {}
func (APIKeyAuth) securityScheme() {}
func (OAuth2Auth) securityScheme() {}

// DefaultSecurity returns the security block with every scheme disabled and
// its defaults filled in.
func DefaultSecurity() SecurityConfig {
	return SecurityConfig{
		Basic: BasicAuth{
			Description: "Basic authentication",
		},
		Bearer: BearerAuth{
			Description:  "Bearer token authentication",
			BearerFormat: "JWT",
		},
		APIKey: APIKeyAuth{
			Description: "API key authentication",
			KeyName:     "X-API-KEY",
			In:          InHeader,
		},
		OAuth2: OAuth2Auth{
			Description: "OAuth2 authentication",
			Scopes:      []string{"read", "write"},
		},
	}
}

// Schemes returns every scheme in the fixed order basic, bearer, apiKey,
// oauth2.
func (c SecurityConfig) Schemes() []SecurityScheme {
	return []SecurityScheme{c.Basic, c.Bearer, c.APIKey, c.OAuth2}
}

// Enabled returns the enabled schemes in the same order as Schemes.
func (c SecurityConfig) Enabled() []SecurityScheme {
	var enabled []SecurityScheme
	for _, s := range c.Schemes() {
		if s.IsEnabled() {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

func setSecurityDefaults(v *viper.Viper, prefix string) {
	d := DefaultSecurity()
	v.SetDefault(prefix+".basic.enabled", false)
	v.SetDefault(prefix+".basic.description", d.Basic.Description)
	v.SetDefault(prefix+".bearer.enabled", false)
	v.SetDefault(prefix+".bearer.description", d.Bearer.Description)
	v.SetDefault(prefix+".bearer.bearerFormat", d.Bearer.BearerFormat)
	v.SetDefault(prefix+".apiKey.enabled", false)
	v.SetDefault(prefix+".apiKey.description", d.APIKey.Description)
	v.SetDefault(prefix+".apiKey.keyName", d.APIKey.KeyName)
	v.SetDefault(prefix+".apiKey.in", string(d.APIKey.In))
	v.SetDefault(prefix+".oauth2.enabled", false)
	v.SetDefault(prefix+".oauth2.description", d.OAuth2.Description)
	v.SetDefault(prefix+".oauth2.authorizationUrl", "")
	v.SetDefault(prefix+".oauth2.tokenUrl", "")
	v.SetDefault(prefix+".oauth2.refreshUrl", "")
	v.SetDefault(prefix+".oauth2.scopes", d.OAuth2.Scopes)
}

func (c SecurityConfig) validate(prefix string) ValidationErrors {
	var errs ValidationErrors

	if c.APIKey.Enabled {
		if !c.APIKey.In.Valid() {
			errs = append(errs, ValidationError{
				Field:   prefix + ".apiKey.in",
				Message: fmt.Sprintf("unsupported location %q, must be one of: header, query, cookie", c.APIKey.In),
			})
		}
		if strings.TrimSpace(c.APIKey.KeyName) == "" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".apiKey.keyName",
				Message: "keyName is required",
			})
		}
	}

	if c.OAuth2.Enabled {
		if strings.TrimSpace(c.OAuth2.AuthorizationURL) == "" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".oauth2.authorizationUrl",
				Message: "authorizationUrl is required",
			})
		}
		if strings.TrimSpace(c.OAuth2.TokenURL) == "" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".oauth2.tokenUrl",
				Message: "tokenUrl is required",
			})
		}
	}

	return errs
}
