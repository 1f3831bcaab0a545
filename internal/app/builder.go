// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// supportedMethods are the methods chi can route.
var supportedMethods = map[string]bool{
	http.MethodConnect: true,
	http.MethodDelete:  true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodPatch:   true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodTrace:   true,
}

// Plugin extends the application at composition time. Install may add
// middleware, routes or the authentication guard.
type Plugin interface {
	Install(b *Builder) error
}

// Finalizer is implemented by plugins that need the complete route table.
// Finalize runs during Build, after every route is registered, and receives
// a copy of the table. The returned routes are added to the application and
// are checked for duplicates like any other.
type Finalizer interface {
	Finalize(routes []Route) ([]Route, error)
}

// Builder collects the application configuration. It is not safe for
// concurrent use; composition happens once, in main.
type Builder struct {
	middlewares []Middleware
	routes      []Route
	guard       Middleware
	finalizers  []Finalizer

	methodNotAllowed http.Handler
	notFound         http.Handler

	errs  []error
	built bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Use appends global middleware. Middleware runs in registration order for
// every request, matched or not.
func (b *Builder) Use(middlewares ...Middleware) *Builder {
	if b.checkBuilt() {
		return b
	}
	b.middlewares = append(b.middlewares, middlewares...)
	return b
}

// Handle registers a route.
func (b *Builder) Handle(method, path string, handler http.Handler, opts ...RouteOption) *Builder {
	if b.checkBuilt() {
		return b
	}

	route := Route{
		Method:  strings.ToUpper(method),
		Path:    path,
		Handler: handler,
	}
	for _, opt := range opts {
		opt(&route)
	}

	b.routes = append(b.routes, route)
	return b
}

// Get registers a GET route.
func (b *Builder) Get(path string, handler http.HandlerFunc, opts ...RouteOption) *Builder {
	return b.Handle(http.MethodGet, path, nilSafe(handler), opts...)
}

// Post registers a POST route.
func (b *Builder) Post(path string, handler http.HandlerFunc, opts ...RouteOption) *Builder {
	return b.Handle(http.MethodPost, path, nilSafe(handler), opts...)
}

// Install runs each plugin's Install. Plugins that implement [Finalizer] are
// also scheduled to run during Build, in installation order.
func (b *Builder) Install(plugins ...Plugin) *Builder {
	for _, p := range plugins {
		if b.checkBuilt() {
			return b
		}

		if err := p.Install(b); err != nil {
			b.errs = append(b.errs, fmt.Errorf("plugin %T: %w", p, err))
			continue
		}
		if f, ok := p.(Finalizer); ok {
			b.finalizers = append(b.finalizers, f)
		}
	}
	return b
}

// SetGuard installs the middleware that protects routes registered with
// [WithAuth]. Only one guard may be installed.
func (b *Builder) SetGuard(guard Middleware) *Builder {
	if b.checkBuilt() {
		return b
	}
	if b.guard != nil {
		b.errs = append(b.errs, ErrGuardAlreadySet)
		return b
	}
	b.guard = guard
	return b
}

// MethodNotAllowed sets the handler for requests whose path matches a route
// but whose method does not.
func (b *Builder) MethodNotAllowed(h http.HandlerFunc) *Builder {
	b.methodNotAllowed = h
	return b
}

// NotFound sets the handler for unmatched paths.
func (b *Builder) NotFound(h http.HandlerFunc) *Builder {
	b.notFound = h
	return b
}

// Build validates the collected configuration, runs finalizer plugins and
// returns the frozen [Config]. The builder cannot be used afterwards.
func (b *Builder) Build() (*Config, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	b.built = true

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(b.routes))
	routes := make([]Route, 0, len(b.routes))
	if err := b.addRoutes(&routes, seen, b.routes); err != nil {
		return nil, err
	}

	for _, f := range b.finalizers {
		snapshot := cloneRoutes(routes)
		extra, err := f.Finalize(snapshot)
		if err != nil {
			return nil, fmt.Errorf("finalizer %T: %w", f, err)
		}
		if err = b.addRoutes(&routes, seen, extra); err != nil {
			return nil, fmt.Errorf("finalizer %T: %w", f, err)
		}
	}

	return &Config{
		middlewares:      append([]Middleware(nil), b.middlewares...),
		routes:           routes,
		guard:            b.guard,
		methodNotAllowed: b.methodNotAllowed,
		notFound:         b.notFound,
	}, nil
}

func (b *Builder) addRoutes(dst *[]Route, seen map[string]struct{}, routes []Route) error {
	for _, r := range routes {
		if err := b.validate(r); err != nil {
			return err
		}

		key := r.key()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, r.Method, r.Path)
		}
		seen[key] = struct{}{}

		*dst = append(*dst, r.clone())
	}
	return nil
}

func (b *Builder) validate(r Route) error {
	switch {
	case !supportedMethods[r.Method], !strings.HasPrefix(r.Path, "/"):
		return fmt.Errorf("%w: %q %q", ErrInvalidRoute, r.Method, r.Path)
	case r.Handler == nil:
		return fmt.Errorf("%w: %s %s has no handler", ErrInvalidRoute, r.Method, r.Path)
	case r.Auth && b.guard == nil:
		return fmt.Errorf("%w: %s %s", ErrNoAuthGuard, r.Method, r.Path)
	}
	return nil
}

func (b *Builder) checkBuilt() bool {
	if b.built {
		b.errs = append(b.errs, ErrAlreadyBuilt)
	}
	return b.built
}

// nilSafe keeps a nil HandlerFunc nil when it is converted to http.Handler,
// so that validation can catch it.
func nilSafe(h http.HandlerFunc) http.Handler {
	if h == nil {
		return nil
	}
	return h
}

func cloneRoutes(routes []Route) []Route {
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = r.clone()
	}
	return out
}
