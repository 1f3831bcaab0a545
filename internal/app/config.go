// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Config is the frozen application produced by [Builder.Build].
type Config struct {
	middlewares []Middleware
	routes      []Route
	guard       Middleware

	methodNotAllowed http.Handler
	notFound         http.Handler
}

// Routes returns a copy of the route table in registration order.
func (c *Config) Routes() []Route {
	return cloneRoutes(c.routes)
}

// Handler builds the chi router serving the application. Every call returns
// a new, independent router.
func (c *Config) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(c.middlewares...)

	for _, route := range c.routes {
		h := route.Handler
		if route.Auth {
			h = c.guard(h)
		}
		router.Method(route.Method, route.Path, h)
	}

	if c.methodNotAllowed != nil {
		router.MethodNotAllowed(c.methodNotAllowed.ServeHTTP)
	}
	if c.notFound != nil {
		router.NotFound(c.notFound.ServeHTTP)
	}

	return router
}
