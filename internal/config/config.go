// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for apidoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "APIDOC"

// Config represents the apidoc configuration.
type Config struct {
	// Swagger is the service documentation block
	Swagger ServiceConfig `mapstructure:"swagger" yaml:"swagger" json:"swagger"`

	// Output is the output file path for the generated OpenAPI document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Source contains source code scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Generation contains generation behavior configuration
	Generation GenerationConfig `mapstructure:"generation" yaml:"generation" json:"generation"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// ServiceConfig describes the documented service.
type ServiceConfig struct {
	// Group is the documentation group name
	Group string `mapstructure:"group" yaml:"group" json:"group"`

	Title       string `mapstructure:"title" yaml:"title" json:"title"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
	Version     string `mapstructure:"version" yaml:"version" json:"version"`

	// BasePackage restricts discovery to handlers under this package
	BasePackage string `mapstructure:"basePackage" yaml:"basePackage" json:"basePackage"`

	Servers []ServerConfig `mapstructure:"servers" yaml:"servers" json:"servers"`

	// PathsToMatch and PathsToExclude are glob patterns over endpoint paths.
	// When both are empty every path matches.
	PathsToMatch   []string `mapstructure:"pathsToMatch" yaml:"pathsToMatch" json:"pathsToMatch"`
	PathsToExclude []string `mapstructure:"pathsToExclude" yaml:"pathsToExclude" json:"pathsToExclude"`

	Security SecurityConfig `mapstructure:"security" yaml:"security" json:"security"`

	Contact      ContactConfig      `mapstructure:"contact" yaml:"contact" json:"contact"`
	License      LicenseConfig      `mapstructure:"license" yaml:"license" json:"license"`
	ExternalDocs ExternalDocsConfig `mapstructure:"externalDocs" yaml:"externalDocs" json:"externalDocs"`

	Tags []TagConfig `mapstructure:"tags" yaml:"tags" json:"tags"`

	// Cache, CORS and RateLimit are accepted and carried but not processed.
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache" json:"cache"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors" json:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit" json:"rateLimit"`
}

// ContactConfig contains contact information.
type ContactConfig struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	URL   string `mapstructure:"url" yaml:"url" json:"url"`
	Email string `mapstructure:"email" yaml:"email" json:"email"`
}

// IsZero reports whether no contact field is set.
func (c ContactConfig) IsZero() bool {
	return c.Name == "" && c.URL == "" && c.Email == ""
}

// LicenseConfig contains license information.
type LicenseConfig struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	URL  string `mapstructure:"url" yaml:"url" json:"url"`
}

// IsZero reports whether no license field is set.
func (l LicenseConfig) IsZero() bool {
	return l.Name == "" && l.URL == ""
}

// ExternalDocsConfig links to documentation outside the document.
type ExternalDocsConfig struct {
	Description string `mapstructure:"description" yaml:"description" json:"description"`
	URL         string `mapstructure:"url" yaml:"url" json:"url"`
}

// ServerConfig contains server configuration.
type ServerConfig struct {
	URL         string `mapstructure:"url" yaml:"url" json:"url"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// TagConfig contains tag configuration.
type TagConfig struct {
	Name        string `mapstructure:"name" yaml:"name" json:"name"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// CacheConfig is a pass-through document cache setting.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Timeout is in seconds
	Timeout int `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// CORSConfig is a pass-through CORS setting.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" yaml:"allowedOrigins" json:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowedMethods" yaml:"allowedMethods" json:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowedHeaders" yaml:"allowedHeaders" json:"allowedHeaders"`
}

// RateLimitConfig is a pass-through rate limit setting.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	RequestsPerSecond int  `mapstructure:"requestsPerSecond" yaml:"requestsPerSecond" json:"requestsPerSecond"`
}

// SourceConfig contains source code scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// GenerationConfig contains generation behavior configuration.
type GenerationConfig struct {
	// StrictMode turns validation warnings into failures
	StrictMode bool `mapstructure:"strictMode" yaml:"strictMode" json:"strictMode"`

	// DefaultResponses are the response codes given to operations that
	// carry no annotation
	DefaultResponses []string `mapstructure:"defaultResponses" yaml:"defaultResponses" json:"defaultResponses"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"apidoc.yaml",
	"apidoc.json",
	".apidoc.yaml",
	".apidoc.json",
}

// supportedFormats is the list of supported output formats.
var supportedFormats = []string{
	"yaml",
	"json",
}

var defaultExclude = []string{
	"vendor/**",
	"**/*_test.go",
	"**/testdata/**",
	".git/**",
	"target/**",
	"build/**",
	"**/*.pb.go",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Swagger: ServiceConfig{
			Group:    "default",
			Title:    "API Documentation",
			Version:  "1.0.0",
			Security: DefaultSecurity(),
			Cache: CacheConfig{
				Timeout: 3600,
			},
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
			},
		},
		Output: "openapi.yaml",
		Format: "yaml",
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: []string{"**/*.go", "**/*.java"},
			Exclude: slices.Clone(defaultExclude),
		},
		Generation: GenerationConfig{
			DefaultResponses: []string{"200"},
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches the working directory for config files in the following order:
// 1. apidoc.yaml
// 2. apidoc.json
// 3. .apidoc.yaml
// 4. .apidoc.json
//
// If configPath is provided, it will use that path instead. Environment
// variables prefixed with APIDOC_ override file values
// (APIDOC_SWAGGER_TITLE overrides swagger.title).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = ConfigFilePath()
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize()

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("swagger.group", "default")
	v.SetDefault("swagger.title", "API Documentation")
	v.SetDefault("swagger.description", "")
	v.SetDefault("swagger.version", "1.0.0")
	v.SetDefault("swagger.basePackage", "")
	v.SetDefault("swagger.cache.enabled", false)
	v.SetDefault("swagger.cache.timeout", 3600)
	v.SetDefault("swagger.cors.enabled", false)
	v.SetDefault("swagger.rateLimit.enabled", false)
	v.SetDefault("swagger.rateLimit.requestsPerSecond", 10)
	setSecurityDefaults(v, "swagger.security")

	v.SetDefault("output", "openapi.yaml")
	v.SetDefault("format", "yaml")
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", []string{"**/*.go", "**/*.java"})
	v.SetDefault("source.exclude", defaultExclude)
	v.SetDefault("generation.strictMode", false)
	v.SetDefault("generation.defaultResponses", []string{"200"})
	v.SetDefault("watch.debounce", 500)
}

// normalize canonicalizes values that may be written in several forms.
func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Swagger.Security.APIKey.In = KeyLocation(strings.ToLower(strings.TrimSpace(string(c.Swagger.Security.APIKey.In))))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Format != "" && !slices.Contains(supportedFormats, c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", ")),
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if strings.TrimSpace(c.Swagger.Title) == "" {
		errs = append(errs, ValidationError{
			Field:   "swagger.title",
			Message: "title is required",
		})
	}

	if strings.TrimSpace(c.Swagger.Version) == "" {
		errs = append(errs, ValidationError{
			Field:   "swagger.version",
			Message: "version is required",
		})
	}

	for i, server := range c.Swagger.Servers {
		if strings.TrimSpace(server.URL) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("swagger.servers[%d].url", i),
				Message: "url is required",
			})
		}
	}

	for i, tag := range c.Swagger.Tags {
		if strings.TrimSpace(tag.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("swagger.tags[%d].name", i),
				Message: "name is required",
			})
		}
	}

	errs = append(errs, c.Swagger.Security.validate("swagger.security")...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ConfigFilePath returns the path of the config file in the working
// directory, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}
