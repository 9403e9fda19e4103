// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/apidoc/internal/scanner"
	"github.com/api2spec/apidoc/pkg/types"
)

func javaFile(rel, src string) scanner.SourceFile {
	return scanner.SourceFile{
		Path:     "/project/" + rel,
		RelPath:  rel,
		Language: scanner.LanguageJava,
		Content:  []byte(src),
	}
}

const orderController = `package com.acme.orders;

import org.springframework.web.bind.annotation.*;

@RestController
@RequestMapping("/api/orders/")
public class OrderController {

    @GetMapping
    @Api(summary = "List orders", success = OrderPage.class)
    public OrderPage list() { return null; }

    @GetMapping("/{id}")
    @Api(summary = "Get order", success = com.acme.orders.OrderDto.class,
         errors = {"404:Order not found", "500"})
    public OrderDto get(@PathVariable String id) { return null; }

    @PostMapping(path = "")
    @Api(summary = "Create order", success = OrderDto.class, errors = "400:Invalid order")
    public OrderDto create(@RequestBody OrderDto body) { return null; }

    @DeleteMapping("/{id}")
    @Api(summary = "Cancel order", success = Void.class)
    public void cancel(@PathVariable String id) {}

    @RequestMapping(value = "/{id}/items", method = {RequestMethod.PUT, RequestMethod.PATCH})
    public void replaceItems() {}

    @PatchMapping({"/{id}/note", "/{id}/memo"})
    public void note() {}

    public void notAHandler() {}
}
`

func TestJavaSource_Discover(t *testing.T) {
	res, err := NewJavaSource().Discover(javaFile("src/main/java/com/acme/orders/OrderController.java", orderController))
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.Structs)

	type route struct {
		verb types.Verb
		path string
	}
	var routes []route
	for _, ep := range res.Endpoints {
		routes = append(routes, route{ep.Handler.Verb, ep.Path})
	}
	assert.Equal(t, []route{
		{types.VerbGet, "/api/orders"},
		{types.VerbGet, "/api/orders/{id}"},
		{types.VerbPost, "/api/orders"},
		{types.VerbDelete, "/api/orders/{id}"},
		{types.VerbPut, "/api/orders/{id}/items"},
		{types.VerbPatch, "/api/orders/{id}/items"},
		{types.VerbPatch, "/api/orders/{id}/note"},
		{types.VerbPatch, "/api/orders/{id}/memo"},
	}, routes)

	list := res.Endpoints[0]
	assert.Equal(t, "OrderController.list", list.Handler.Name)
	assert.Equal(t, "com.acme.orders", list.Package)
	assert.Equal(t, "src/main/java/com/acme/orders/OrderController.java", list.SourceFile)
	assert.Equal(t, 11, list.SourceLine)
	assert.Equal(t, &types.Annotation{Summary: "List orders", Success: types.Ref("OrderPage")}, list.Annotation)

	get := res.Endpoints[1]
	assert.Equal(t, "OrderDto", get.Annotation.Success.Name)
	assert.Equal(t, []string{"404:Order not found", "500"}, get.Annotation.Errors)

	create := res.Endpoints[2]
	assert.Equal(t, []string{"400:Invalid order"}, create.Annotation.Errors)

	cancel := res.Endpoints[3]
	assert.True(t, cancel.Annotation.Success.IsNoBody())

	assert.Nil(t, res.Endpoints[4].Annotation)
	assert.Nil(t, res.Endpoints[6].Annotation)
}

func TestJavaSource_Discover_NoClassPrefix(t *testing.T) {
	src := `@RestController
class Ping {
    @GetMapping("ping")
    @Api(summary = "Ping")
    String ping() { return "pong"; }
}
`
	res, err := NewJavaSource().Discover(javaFile("Ping.java", src))
	require.NoError(t, err)
	require.Len(t, res.Endpoints, 1)
	assert.Equal(t, "/ping", res.Endpoints[0].Path)
	assert.Equal(t, "", res.Endpoints[0].Package)
	assert.Nil(t, res.Endpoints[0].Annotation.Success)
}

func TestJavaSource_Discover_Malformed(t *testing.T) {
	src := `package com.acme;

@RequestMapping("/x")
class Bad {
    @GetMapping("/a")
    @Api(success = Thing.class, errors = {"404"})
    void missingSummary() {}

    @GetMapping("/b")
    @Api
    void bareApi() {}

    @Api(summary = "Unmapped")
    void unmapped() {}

    @RequestMapping("/c")
    void noMethod() {}
}
`
	res, err := NewJavaSource().Discover(javaFile("Bad.java", src))
	require.NoError(t, err)

	require.Len(t, res.Endpoints, 2)
	assert.Equal(t, "/x/a", res.Endpoints[0].Path)
	assert.Nil(t, res.Endpoints[0].Annotation)
	assert.Equal(t, "/x/b", res.Endpoints[1].Path)
	assert.Nil(t, res.Endpoints[1].Annotation)

	require.Len(t, res.Issues, 4)
	for _, issue := range res.Issues {
		assert.True(t, errors.Is(issue, errors.NotValid), "issue: %v", issue)
		assert.Contains(t, issue.Error(), "Bad.java:")
	}
	assert.True(t, errors.Is(res.Issues[0], types.ErrMissingSummary))
	assert.Contains(t, res.Issues[0].Error(), "Bad.missingSummary")
	assert.True(t, errors.Is(res.Issues[1], types.ErrMissingSummary))
	assert.Contains(t, res.Issues[2].Error(), "@Api without a request mapping on Bad.unmapped")
	assert.Contains(t, res.Issues[3].Error(), "request mapping without a supported method on Bad.noMethod")
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		prefix, path, want string
	}{
		{"", "", "/"},
		{"/api", "", "/api"},
		{"/api/", "/users", "/api/users"},
		{"api", "users/", "/api/users"},
		{"", "/{id}", "/{id}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, joinPath(tt.prefix, tt.path), "%q + %q", tt.prefix, tt.path)
	}
}

func TestJavaSource_Identity(t *testing.T) {
	s := NewJavaSource()
	assert.Equal(t, "spring", s.Name())
	assert.Equal(t, scanner.LanguageJava, s.Language())
}
