// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidoc/pkg/types"
)

func object(props ...string) *types.Schema {
	s := &types.Schema{Type: "object", Properties: map[string]*types.Schema{}}
	for _, p := range props {
		s.Properties[p] = &types.Schema{Type: "string"}
	}
	return s
}

func TestRegistry_AddAndGet(t *testing.T) {
	reg := NewRegistry()
	reg.Add("User", &types.Schema{Type: "object", Title: "User"})

	got, ok := reg.Get("User")
	require.True(t, ok)
	assert.Equal(t, "User", got.Title)
	assert.True(t, reg.Has("User"))

	got, ok = reg.Get("Missing")
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.False(t, reg.Has("Missing"))
}

func TestRegistry_AddReplaces(t *testing.T) {
	reg := NewRegistry()
	reg.Add("User", &types.Schema{Title: "first"})
	reg.Add("User", &types.Schema{Title: "second"})

	got, _ := reg.Get("User")
	assert.Equal(t, "second", got.Title)
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Add("Zebra", object())
	reg.Add("Apple", object())
	reg.Add("Mango", object())

	assert.Equal(t, []string{"Apple", "Mango", "Zebra"}, reg.Names())
}

func TestRegistry_RemoveAndClear(t *testing.T) {
	reg := NewRegistry()
	reg.Add("User", object())
	reg.Add("Post", object())

	assert.True(t, reg.Remove("User"))
	assert.False(t, reg.Remove("User"))
	assert.Equal(t, 1, reg.Count())

	reg.Clear()
	assert.Zero(t, reg.Count())
	assert.Nil(t, reg.Schemas())
}

func TestRegistry_Merge(t *testing.T) {
	reg := NewRegistry()
	reg.Add("User", &types.Schema{Title: "mine"})

	other := NewRegistry()
	other.Add("User", &types.Schema{Title: "theirs"})
	other.Add("Post", object())

	reg.Merge(other)
	reg.Merge(nil)
	reg.Merge(reg)

	assert.Equal(t, []string{"Post", "User"}, reg.Names())
	got, _ := reg.Get("User")
	assert.Equal(t, "theirs", got.Title)
}

func TestRegistry_Schemas_FoldsEmbedded(t *testing.T) {
	reg := NewRegistry()

	base := object("id", "name")
	base.Required = []string{"id"}
	reg.Add("Base", base)

	audit := object("created_at")
	reg.Add("Audit", audit)
	reg.Embed("Audit", []string{"Base"})

	user := object("name", "email")
	user.Properties["name"] = &types.Schema{Type: "string", Description: "own"}
	reg.Add("User", user)
	reg.Embed("User", []string{"Audit", "Unknown"})

	schemas := reg.Schemas()
	require.Len(t, schemas, 3)

	got := schemas["User"]
	assert.ElementsMatch(t, []string{"id", "name", "email", "created_at"}, keys(got.Properties))
	assert.Equal(t, "own", got.Properties["name"].Description, "own fields win")
	assert.Equal(t, []string{"id"}, got.Required)

	// The stored schema is untouched.
	stored, _ := reg.Get("User")
	assert.Len(t, stored.Properties, 2)
	assert.Same(t, base, schemas["Base"])
}

func TestRegistry_Schemas_EmbedCycle(t *testing.T) {
	reg := NewRegistry()
	reg.Add("A", object("a"))
	reg.Add("B", object("b"))
	reg.Embed("A", []string{"B"})
	reg.Embed("B", []string{"A"})

	schemas := reg.Schemas()
	assert.ElementsMatch(t, []string{"a", "b"}, keys(schemas["A"].Properties))
	assert.ElementsMatch(t, []string{"a", "b"}, keys(schemas["B"].Properties))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("S%d", i)
			reg.Add(name, object())
			reg.Has(name)
			reg.Schemas()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, reg.Count())
}

func keys(m map[string]*types.Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
