// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidoc/pkg/types"
)

func TestOperationID(t *testing.T) {
	tests := []struct {
		verb    types.Verb
		path    string
		handler string
		want    string
	}{
		{types.VerbGet, "/users", "ListUsers", "listUsers"},
		{types.VerbGet, "/users", "users.ListUsers", "listUsers"},
		{types.VerbPost, "/users", "createUser", "createUser"},
		{types.VerbGet, "/users/{id}", "", "getUsersById"},
		{types.VerbDelete, "/api/user-groups/{groupId}", "", "deleteApiUserGroupsByGroupid"},
		{types.VerbGet, "/", "", "get"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationID(tt.verb, tt.path, tt.handler))
		})
	}
}

func TestInferTags(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"/users", []string{"users"}},
		{"/users/{id}", []string{"users"}},
		{"/api/v1/orders/{id}", []string{"orders"}},
		{"/api/v2", nil},
		{"/{tenant}/invoices", []string{"invoices"}},
		{"/", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, InferTags(tt.path))
		})
	}
}

func TestDefaultResponses(t *testing.T) {
	responses := DefaultResponses([]string{"200", "400", "599"})

	assert.Equal(t, []string{"200", "400", "599"}, responses.Keys())
	ok, _ := responses.Get("200")
	assert.Equal(t, "OK", ok.Description)
	bad, _ := responses.Get("400")
	assert.Equal(t, "Bad Request", bad.Description)
	unknown, _ := responses.Get("599")
	assert.Equal(t, "Response 599", unknown.Description)
}

func TestDefaultResponses_Empty(t *testing.T) {
	responses := DefaultResponses(nil)

	require.Equal(t, 1, responses.Len())
	ok, _ := responses.Get("200")
	assert.Equal(t, "OK", ok.Description)
}

func TestDefaultOperation(t *testing.T) {
	op := DefaultOperation(types.Endpoint{
		Path:    "/users/{id}",
		Handler: types.HandlerSignature{Name: "GetUser", Verb: types.VerbGet},
	}, []string{"200"})

	assert.Equal(t, "getUser", op.OperationID)
	assert.Equal(t, []string{"users"}, op.Tags)
	assert.Empty(t, op.Summary)
	assert.Equal(t, []string{"200"}, op.Responses.Keys())
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Name)
}

func TestPathParameters(t *testing.T) {
	params := PathParameters("/orgs/{org}/users/{userId}")

	require.Len(t, params, 2)
	assert.Equal(t, types.Parameter{Name: "org", In: "path", Required: true, Schema: &types.Schema{Type: "string"}}, params[0])
	assert.Equal(t, "userId", params[1].Name)
	assert.Nil(t, PathParameters("/users"))
}
