// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"net/http"
	"slices"
	"strings"
)

// Middleware wraps a handler. It is the same shape chi uses.
type Middleware = func(http.Handler) http.Handler

// Route is a single route registration. After [Builder.Build] routes are
// read-only; [Config.Routes] hands out copies.
type Route struct {
	Method  string
	Path    string
	Handler http.Handler

	// Auth marks the route as requiring an authenticated caller. The
	// installed guard runs before Handler and short-circuits when the
	// caller is not authenticated.
	Auth bool

	// Documentation metadata, read by finalizer plugins.
	Summary     string
	Description string
	Tags        []string
	ContentType string
	// RequestBody is an example value describing the JSON request body.
	RequestBody any
	// ResponseBody is an example value describing the success response.
	ResponseBody any
}

// key identifies the route for duplicate detection. Path parameter names do
// not matter to the router, so "/users/{id}" and "/users/{name}" collide.
func (r Route) key() string {
	segments := strings.Split(r.Path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			segments[i] = "{}"
		}
	}
	return strings.ToUpper(r.Method) + " " + strings.Join(segments, "/")
}

func (r Route) clone() Route {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// RouteOption configures a route at registration.
type RouteOption func(*Route)

// WithAuth marks the route as requiring authentication.
func WithAuth() RouteOption {
	return func(r *Route) { r.Auth = true }
}

// WithSummary sets the one-line documentation summary.
func WithSummary(summary string) RouteOption {
	return func(r *Route) { r.Summary = summary }
}

// WithDescription sets the long documentation description.
func WithDescription(description string) RouteOption {
	return func(r *Route) { r.Description = description }
}

// WithTags groups the route in the documentation.
func WithTags(tags ...string) RouteOption {
	return func(r *Route) { r.Tags = append(r.Tags, tags...) }
}

// WithContentType sets the documented success response content type.
// Routes default to "application/json".
func WithContentType(contentType string) RouteOption {
	return func(r *Route) { r.ContentType = contentType }
}

// WithRequestBody documents the JSON request body with an example value.
func WithRequestBody(example any) RouteOption {
	return func(r *Route) { r.RequestBody = example }
}

// WithResponseBody documents the success response with an example value.
func WithResponseBody(example any) RouteOption {
	return func(r *Route) { r.ResponseBody = example }
}
