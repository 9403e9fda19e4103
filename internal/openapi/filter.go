// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/api2spec/apidoc/internal/config"
	"github.com/api2spec/apidoc/pkg/types"
)

// MatchAll is the path pattern used when no path patterns are configured.
const MatchAll = "/**"

// Filter decides which endpoints are documented.
type Filter struct {
	match       []string
	exclude     []string
	basePackage string
}

// NewFilter creates a filter from the path patterns and base package of cfg.
func NewFilter(cfg *config.ServiceConfig) *Filter {
	f := &Filter{
		match:       cfg.PathsToMatch,
		exclude:     cfg.PathsToExclude,
		basePackage: strings.TrimSpace(cfg.BasePackage),
	}
	if len(f.match) == 0 && len(f.exclude) == 0 {
		f.match = []string{MatchAll}
	}
	return f
}

// Allows reports whether ep passes the package and path filters. Endpoints
// without a known package are not subject to the package filter.
func (f *Filter) Allows(ep types.Endpoint) bool {
	if f.basePackage != "" && ep.Package != "" && !withinPackage(ep.Package, f.basePackage) {
		return false
	}
	return f.MatchPath(ep.Path)
}

// MatchPath reports whether path matches a match pattern and no exclude
// pattern. With only exclude patterns, every other path matches.
func (f *Filter) MatchPath(path string) bool {
	matched := len(f.match) == 0
	for _, pattern := range f.match {
		if ok, _ := doublestar.Match(pattern, path); ok {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return false
		}
	}
	return true
}

// withinPackage reports whether pkg is base or nested below it, using either
// Java (".") or Go ("/") separators.
func withinPackage(pkg, base string) bool {
	if pkg == base {
		return true
	}
	return strings.HasPrefix(pkg, base+".") || strings.HasPrefix(pkg, base+"/")
}
