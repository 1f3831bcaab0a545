// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package docs

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"

	"github.com/MKhiriev/hello-auth/internal/app"
	"github.com/MKhiriev/hello-auth/models"
)

const defaultContentType = "application/json"

func operation(route app.Route) (*openapi3.Operation, error) {
	op := openapi3.NewOperation()
	op.Summary = route.Summary
	op.Description = route.Description
	op.Tags = route.Tags

	for _, name := range pathParams(route.Path) {
		op.AddParameter(openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()))
	}

	if route.RequestBody != nil {
		schema, err := schemaFor(route.RequestBody)
		if err != nil {
			return nil, err
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(schema),
		}
	}

	success, err := successResponse(route)
	if err != nil {
		return nil, err
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: success}))

	if route.Auth {
		unauthorized, err := schemaFor(models.MessageResponse{})
		if err != nil {
			return nil, err
		}
		op.Responses.Set("401", &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription("Unauthorized").
			WithContent(openapi3.NewContentWithSchemaRef(unauthorized, []string{defaultContentType}))})

		op.Security = openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate(BearerAuth)).
			With(openapi3.NewSecurityRequirement().Authenticate(CookieAuth))
	}

	return op, nil
}

func successResponse(route app.Route) (*openapi3.Response, error) {
	contentType := route.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	var schema *openapi3.SchemaRef
	switch {
	case route.ResponseBody != nil:
		var err error
		if schema, err = schemaFor(route.ResponseBody); err != nil {
			return nil, err
		}
	case strings.HasPrefix(contentType, "text/"):
		schema = openapi3.NewStringSchema().NewRef()
	default:
		schema = openapi3.NewObjectSchema().NewRef()
	}

	return openapi3.NewResponse().
		WithDescription("OK").
		WithContent(openapi3.NewContentWithSchemaRef(schema, []string{contentType})), nil
}

func schemaFor(example any) (*openapi3.SchemaRef, error) {
	return openapi3gen.NewSchemaRefForValue(example, openapi3.Schemas{})
}

// openAPIPath strips chi regexp constraints: "/users/{id:[0-9]+}" becomes
// "/users/{id}".
func openAPIPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if name, ok := paramName(s); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

func pathParams(path string) []string {
	var names []string
	for _, s := range strings.Split(path, "/") {
		if name, ok := paramName(s); ok {
			names = append(names, name)
		}
	}
	return names
}

func paramName(segment string) (string, bool) {
	if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(segment, "{"), "}")
	name, _, _ = strings.Cut(name, ":")
	return name, true
}
