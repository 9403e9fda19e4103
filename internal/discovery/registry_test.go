// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidoc/internal/scanner"
)

// stubSource is a Source returning canned results.
type stubSource struct {
	name     string
	language string
	discover func(scanner.SourceFile) (*Result, error)
}

func (s *stubSource) Name() string     { return s.name }
func (s *stubSource) Language() string { return s.language }

func (s *stubSource) Discover(file scanner.SourceFile) (*Result, error) {
	if s.discover == nil {
		return &Result{}, nil
	}
	return s.discover(file)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&stubSource{name: "a", language: "go"}))
	assert.True(t, r.Has("a"))
	assert.NotNil(t, r.Get("a"))
	assert.Nil(t, r.Get("missing"))

	err := r.Register(&stubSource{name: "a", language: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&stubSource{}))
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&stubSource{name: "a"})
	assert.Panics(t, func() { r.MustRegister(&stubSource{name: "a"}) })
}

func TestRegistry_ForLanguage(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&stubSource{name: "zeta", language: "go"})
	r.MustRegister(&stubSource{name: "alpha", language: "go"})
	r.MustRegister(&stubSource{name: "spring", language: "java"})

	var names []string
	for _, s := range r.ForLanguage("go") {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
	assert.Empty(t, r.ForLanguage("rust"))
}

func TestRegistry_ListAndUnregister(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"go", "spring"}, r.List())

	require.NoError(t, r.Unregister("go"))
	assert.Equal(t, []string{"spring"}, r.List())
	assert.Error(t, r.Unregister("go"))
}
